package entities

import "errors"

// Pipeline error kinds. Every failure surfaced by the dubbing pipeline wraps
// exactly one of these.
var (
	ErrInvalidTable               = errors.New("invalid table")
	ErrMalformedEncoding          = errors.New("malformed encoding")
	ErrStorageUnavailable         = errors.New("storage unavailable")
	ErrUnsupportedLocale          = errors.New("unsupported locale")
	ErrIncompleteVoiceCoverage    = errors.New("incomplete voice coverage")
	ErrMissingTranscriptionColumn = errors.New("missing transcription column")
	ErrEmptyTranscriptionColumn   = errors.New("empty transcription column")
	ErrProviderUnavailable        = errors.New("speech provider unavailable")
	ErrSynthesisFailed            = errors.New("synthesis failed")
)
