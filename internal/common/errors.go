package common

import (
	"errors"
	"fmt"
)

// Error codes for the pipeline taxonomy. Every per-request failure carries
// exactly one of these; CodeConfiguration is fatal at startup only.
const (
	CodeConfiguration     = "CONFIG_ERROR"
	CodeUnsupportedInput  = "UNSUPPORTED_INPUT"
	CodeExtraction        = "EXTRACTION_ERROR"
	CodeAnalysisParse     = "ANALYSIS_PARSE_ERROR"
	CodeAnalysisTransport = "ANALYSIS_TRANSPORT_ERROR"
	CodePersistence       = "PERSISTENCE_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// UserMessage is the single user-facing line for a failed request. It keeps
// the triggering cause visible but drops the internal code prefix.
func (e *AppError) UserMessage() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// NewAppError constructs an AppError with an arbitrary code.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Taxonomy constructors.
func ConfigurationError(message string) *AppError {
	return NewAppError(CodeConfiguration, message, nil)
}

func UnsupportedInputError(message string) *AppError {
	return NewAppError(CodeUnsupportedInput, message, nil)
}

func ExtractionError(message string, cause error) *AppError {
	return NewAppError(CodeExtraction, message, cause)
}

func AnalysisParseError(message string, cause error) *AppError {
	return NewAppError(CodeAnalysisParse, message, cause)
}

func AnalysisTransportError(message string, cause error) *AppError {
	return NewAppError(CodeAnalysisTransport, message, cause)
}

func PersistenceError(message string, cause error) *AppError {
	return NewAppError(CodePersistence, message, cause)
}

// IsCode reports whether err (or anything it wraps) is an AppError with the
// given code.
func IsCode(err error, code string) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
