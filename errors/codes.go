package errors

// ErrorCode classifies an AppError
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED                  ErrorCode = 0
	ErrorCode_INTERNAL                     ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT             ErrorCode = 1001
	ErrorCode_NOT_FOUND                    ErrorCode = 1002
	ErrorCode_INVALID_TABLE                ErrorCode = 2000
	ErrorCode_MALFORMED_ENCODING           ErrorCode = 2001
	ErrorCode_UNSUPPORTED_LOCALE           ErrorCode = 2002
	ErrorCode_INCOMPLETE_VOICE_COVERAGE    ErrorCode = 2003
	ErrorCode_MISSING_TRANSCRIPTION_COLUMN ErrorCode = 2004
	ErrorCode_EMPTY_TRANSCRIPTION_COLUMN   ErrorCode = 2005
	ErrorCode_STORAGE_UNAVAILABLE          ErrorCode = 3000
	ErrorCode_PROVIDER_UNAVAILABLE         ErrorCode = 3001
	ErrorCode_SYNTHESIS_FAILED             ErrorCode = 3002
	ErrorCode_PROCESSING_FAILED            ErrorCode = 3003
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                  "UNSPECIFIED",
	ErrorCode_INTERNAL:                     "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:             "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                    "NOT_FOUND",
	ErrorCode_INVALID_TABLE:                "INVALID_TABLE",
	ErrorCode_MALFORMED_ENCODING:           "MALFORMED_ENCODING",
	ErrorCode_UNSUPPORTED_LOCALE:           "UNSUPPORTED_LOCALE",
	ErrorCode_INCOMPLETE_VOICE_COVERAGE:    "INCOMPLETE_VOICE_COVERAGE",
	ErrorCode_MISSING_TRANSCRIPTION_COLUMN: "MISSING_TRANSCRIPTION_COLUMN",
	ErrorCode_EMPTY_TRANSCRIPTION_COLUMN:   "EMPTY_TRANSCRIPTION_COLUMN",
	ErrorCode_STORAGE_UNAVAILABLE:          "STORAGE_UNAVAILABLE",
	ErrorCode_PROVIDER_UNAVAILABLE:         "PROVIDER_UNAVAILABLE",
	ErrorCode_SYNTHESIS_FAILED:             "SYNTHESIS_FAILED",
	ErrorCode_PROCESSING_FAILED:            "PROCESSING_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNSPECIFIED"
}

// MarshalText renders the code by name in JSON bodies and logs
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
