package ssml

import (
	"strconv"
	"strings"
)

// lenientZero is returned for any time marker that cannot be parsed.
// Upstream transcripts are irregular, so a bad marker means "no pause"
// rather than a rejected upload.
const lenientZero = 0

// NormalizeTimestamp converts an "M:SS" or "MM:SS" time marker into seconds.
func NormalizeTimestamp(marker string) int {
	parts := strings.Split(strings.TrimSpace(marker), ":")
	if len(parts) != 2 {
		return lenientZero
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return lenientZero
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return lenientZero
	}

	total := minutes*60 + seconds
	if total < 0 {
		return lenientZero
	}
	return total
}
