package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the error shape the HTTP layer renders
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the raw cause
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithRaw attaches the underlying cause
func (e AppError) WithRaw(err error) AppError {
	e.Raw = err
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// ErrRequestRejected covers failures raised by the HTTP stack itself, such
// as an oversized body or a request timeout
func ErrRequestRejected(status int, reason string) AppError {
	code := ErrorCode_INVALID_ARGUMENT
	if status >= http.StatusInternalServerError {
		code = ErrorCode_INTERNAL
	}
	return AppError{
		HTTPCode: status,
		Code:     code,
		Message:  processingPrefix + " " + reason,
	}
}

// Transcript Errors
func ErrEmptyCSV() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_TABLE,
		Message:  "The uploaded CSV is empty.",
	}
}

func ErrInvalidCSV(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_TABLE,
		Message:  ProcessingMessage(err),
	}
}

func ErrUnsupportedEncoding() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MALFORMED_ENCODING,
		Message:  "File encoding is not supported. Please ensure the file is UTF-8 encoded.",
	}
}

func ErrMissingTranscriptionColumn(column string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_MISSING_TRANSCRIPTION_COLUMN,
		Message:  fmt.Sprintf("CSV must contain a column with '%s' for the specified language.", column),
	}
}

func ErrEmptyTranscriptionColumn(column string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EMPTY_TRANSCRIPTION_COLUMN,
		Message:  fmt.Sprintf("The transcription column '%s' is empty.", column),
	}
}

// Voice Errors
func ErrUnsupportedLocale(locale string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_UNSUPPORTED_LOCALE,
		Message:  "Invalid locale specified or locale not supported.",
	}.WithDetail("locale", locale)
}

func ErrIncompleteVoiceCoverage(locale string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INCOMPLETE_VOICE_COVERAGE,
		Message:  fmt.Sprintf("Male or female voice not found for %s.", locale),
	}
}

// Integration Errors
func ErrStorageFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_STORAGE_UNAVAILABLE,
		Message:  ProcessingMessage(err),
	}
}

func ErrProviderUnavailable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_PROVIDER_UNAVAILABLE,
		Message:  ProcessingMessage(err),
	}
}

func ErrSynthesisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_SYNTHESIS_FAILED,
		Message:  ProcessingMessage(err),
	}
}

func ErrProcessingFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PROCESSING_FAILED,
		Message:  ProcessingMessage(err),
	}
}

// ProcessingMessage is the catch-all user message for failures without a
// dedicated wording
func ProcessingMessage(err error) string {
	if err == nil {
		return processingPrefix
	}
	return processingPrefix + " " + err.Error()
}

const processingPrefix = "Error processing file."
