package domain

import "fmt"

// ErrorType classifies pipeline errors for operator-facing reporting.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeExtraction ErrorType = "extraction"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeConfig     ErrorType = "config"
)

// Error is the error type used throughout the splitter. It carries a
// classification, an operator-facing message, and the underlying cause.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ValidationError reports invalid input (bad paths, unsupported files).
func ValidationError(message string, cause error) *Error {
	return &Error{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// ExtractionError reports a failure inside the document engine.
func ExtractionError(message string, cause error) *Error {
	return &Error{Type: ErrorTypeExtraction, Message: message, Cause: cause}
}

// IOError reports a filesystem failure.
func IOError(message string, cause error) *Error {
	return &Error{Type: ErrorTypeIO, Message: message, Cause: cause}
}

// ConfigError reports invalid configuration.
func ConfigError(message string, cause error) *Error {
	return &Error{Type: ErrorTypeConfig, Message: message, Cause: cause}
}
