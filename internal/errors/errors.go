package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is a coded error. The code names the failure kind so callers can
// tell a missing file from a corrupt one without matching on message text.
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of an
// underlying AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// WithCode attaches code to err, wrapping it as the cause.
func WithCode(code string, err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// GetCode returns the code of the outermost AppError in err's chain, or
// "UNKNOWN".
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries code.
func HasCode(err error, code string) bool {
	return err != nil && GetCode(err) == code
}

const (
	CodeFileUnreadable      = "FILE_UNREADABLE"
	CodeFileUnwritable      = "FILE_UNWRITABLE"
	CodeUnsupportedFormat   = "UNSUPPORTED_FORMAT"
	CodeCorruptFormat       = "CORRUPT_FORMAT"
	CodeSerializationFailed = "SERIALIZATION_FAILED"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeInternalError       = "INTERNAL_ERROR"
)

func FileUnreadable(path string, cause error) *AppError {
	return &AppError{Code: CodeFileUnreadable, Message: fmt.Sprintf("cannot read %s", path), Cause: cause}
}

func FileUnwritable(path string, cause error) *AppError {
	return &AppError{Code: CodeFileUnwritable, Message: fmt.Sprintf("cannot write %s", path), Cause: cause}
}

func UnsupportedFormat(ext string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file type: %q", ext))
}

func CorruptFormat(path string, cause error) *AppError {
	return &AppError{Code: CodeCorruptFormat, Message: fmt.Sprintf("cannot parse %s", path), Cause: cause}
}

func SerializationFailed(cause error) *AppError {
	return &AppError{Code: CodeSerializationFailed, Message: "cannot encode sample", Cause: cause}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}
