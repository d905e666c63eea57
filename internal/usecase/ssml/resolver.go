package ssml

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

// SelectVoices picks the first male and the first female voice of locale
// from catalog. Gender tags are matched case-sensitively, so "Female" never
// satisfies the "Male" lookup.
func SelectVoices(catalog []entities.Voice, locale string) (entities.VoiceAssignment, error) {
	var (
		assignment entities.VoiceAssignment
		found      bool
	)

	for _, v := range catalog {
		if v.Locale != locale {
			continue
		}
		found = true
		if assignment.Male == "" && strings.Contains(v.Gender, "Male") {
			assignment.Male = v.ShortName
		}
		if assignment.Female == "" && strings.Contains(v.Gender, "Female") {
			assignment.Female = v.ShortName
		}
	}

	if !found {
		return entities.VoiceAssignment{}, fmt.Errorf("%w: %s", entities.ErrUnsupportedLocale, locale)
	}
	if assignment.Male == "" || assignment.Female == "" {
		return entities.VoiceAssignment{}, fmt.Errorf("%w: %s", entities.ErrIncompleteVoiceCoverage, locale)
	}
	return assignment, nil
}

// LocaleCode returns the segment after the last hyphen, e.g. "FR" for "fr-FR"
func LocaleCode(locale string) string {
	if i := strings.LastIndex(locale, "-"); i >= 0 {
		return locale[i+1:]
	}
	return locale
}

// ResolveTranscriptionColumn finds the transcription column for a locale code.
// When several columns qualify the first one in header order wins.
func ResolveTranscriptionColumn(columns []string, code string) (string, error) {
	for _, column := range columns {
		if strings.Contains(column, code) && strings.HasSuffix(column, entities.TranscriptionSuffix) {
			return column, nil
		}
	}
	return "", fmt.Errorf("%w: %s%s", entities.ErrMissingTranscriptionColumn, code, entities.TranscriptionSuffix)
}
