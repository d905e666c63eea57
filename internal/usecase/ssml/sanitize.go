package ssml

import "regexp"

// bracketed matches annotations such as "[PH 0:01:06]"
var bracketed = regexp.MustCompile(`\[.*?\]`)

// SanitizeText removes bracketed annotations that must not be spoken
func SanitizeText(text string) string {
	return bracketed.ReplaceAllString(text, "")
}
