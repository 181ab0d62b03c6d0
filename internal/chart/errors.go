package chart

import "fmt"

const (
	CodeArgumentBinding = "ARGUMENT_BINDING"
	CodeInvalidRange    = "INVALID_RANGE"
	CodeUnknownType     = "UNKNOWN_TYPE"
	CodeValidation      = "VALIDATION"
	CodeNotFound        = "NOT_FOUND"
	CodeFetchFailed     = "FETCH_FAILED"

	// Warning-only codes.
	CodeURLTooLong = "URL_TOO_LONG"
	CodeIgnored    = "IGNORED"
)

// CodedError is a typed error used for stable API mapping.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *CodedError) Unwrap() error { return e.Cause }

// NewError builds a CodedError.
func NewError(code, msg string, cause error) error {
	return &CodedError{Code: code, Message: msg, Cause: cause}
}

// Rangef builds an INVALID_RANGE error with a formatted message.
func Rangef(format string, args ...any) error {
	return &CodedError{Code: CodeInvalidRange, Message: fmt.Sprintf(format, args...)}
}

// Warning records a recoverable fallback taken while compiling.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string { return w.Code + ": " + w.Message }
