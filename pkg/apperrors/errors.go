package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable classification of a failure.
type ErrorCode string

// AppError is the application error type. It carries the classification,
// a human-readable message, an optional wrapped cause and the HTTP status
// the API layer should answer with.
type AppError struct {
	Code     ErrorCode `json:"errorKind"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
	HTTPCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap builds an AppError that keeps the underlying cause in the chain.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithError returns a copy of e carrying err as the cause. Predeclared
// sentinel errors stay untouched so concurrent requests cannot race on them.
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// WithMessage returns a copy of e with the message replaced.
func (e *AppError) WithMessage(message string) *AppError {
	clone := *e
	clone.Message = message
	return &clone
}

// Is reports whether err matches target, following wrapped chains.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in the chain matching target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predeclared errors, one per taxonomy entry. Every classified create-path
// failure answers 400; only Internal answers 500.
var (
	ErrMissingFile          = New(CodeMissingFile, "No image file attached", http.StatusBadRequest)
	ErrUnsupportedMediaType = New(CodeUnsupportedMediaType, "Unsupported image type", http.StatusBadRequest)
	ErrPayloadTooLarge      = New(CodePayloadTooLarge, "Image exceeds the maximum allowed size", http.StatusBadRequest)
	ErrMissingCaption       = New(CodeMissingCaption, "Caption must not be empty", http.StatusBadRequest)
	ErrValidationFailed     = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	ErrUploadFailed      = New(CodeUploadFailed, "Failed to upload image to storage", http.StatusBadRequest)
	ErrPersistenceFailed = New(CodePersistenceFailed, "Failed to save post", http.StatusBadRequest)

	ErrInternal = New(CodeInternal, "Internal server error", http.StatusInternalServerError)
)

// UploadFailed classifies an object-store failure.
func UploadFailed(err error) *AppError {
	return ErrUploadFailed.WithError(err)
}

// PersistenceFailed classifies a repository failure on the create path.
func PersistenceFailed(err error) *AppError {
	return ErrPersistenceFailed.WithError(err)
}

// InternalError reclassifies an unanticipated error. The cause is kept for
// logging but never rendered to clients.
func InternalError(err error) *AppError {
	return ErrInternal.WithError(err)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
