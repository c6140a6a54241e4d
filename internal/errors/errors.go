package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorCategory defines the type of error for proper handling
type ErrorCategory string

const (
	// CategoryConfiguration errors are fatal at startup: the run must not
	// begin with an invalid weight vector, threshold set, or window.
	CategoryConfiguration ErrorCategory = "configuration"
	// CategoryValidation covers record-level integrity issues; they are
	// absorbed locally, counted, and never abort the run.
	CategoryValidation ErrorCategory = "validation"
	CategoryStorage    ErrorCategory = "storage"
	CategoryInternal   ErrorCategory = "internal"
)

// AppError wraps errbuilder error with engine-specific context
type AppError struct {
	*errbuilder.ErrBuilder
	Category   ErrorCategory `json:"category"`
	HTTPStatus int           `json:"http_status"`
	Timestamp  time.Time     `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	codeStr := "UNKNOWN_ERROR"
	switch e.ErrBuilder.ErrCode() {
	case errbuilder.CodeInvalidArgument:
		codeStr = "VALIDATION_ERROR"
	case errbuilder.CodeFailedPrecondition:
		codeStr = "CONFIGURATION_ERROR"
	case errbuilder.CodeUnavailable:
		codeStr = "STORAGE_ERROR"
	case errbuilder.CodeInternal:
		codeStr = "INTERNAL_ERROR"
	}
	return fmt.Sprintf("[%s] %s", codeStr, e.ErrBuilder.Msg)
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.ErrBuilder.Unwrap()
}

// NewAppError creates an AppError from errbuilder with additional context
func NewAppError(builder *errbuilder.ErrBuilder, category ErrorCategory, httpStatus int) *AppError {
	return &AppError{
		ErrBuilder: builder,
		Category:   category,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
	}
}

// NewConfigurationError creates a fatal configuration error identifying
// the offending setting.
func NewConfigurationError(setting, message string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("setting", errors.New(setting))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("invalid configuration for %s: %s", setting, message))

	builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryConfiguration, http.StatusInternalServerError)
}

// NewRecordError creates a record-level validation error. Callers skip the
// offending record and count it; the run continues.
func NewRecordError(recordID, message string) *AppError {
	errorMap := errbuilder.ErrorMap{}
	errorMap.Set("record_id", errors.New(recordID))

	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(message)

	builder = builder.WithDetails(errbuilder.NewErrDetails(errorMap))

	return NewAppError(builder, CategoryValidation, http.StatusBadRequest)
}

// NewStorageError creates an error for detection/evidence persistence
// failures.
func NewStorageError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryStorage, http.StatusInternalServerError)
}

// NewInternalError creates an internal error using errbuilder
func NewInternalError(message string, cause error) *AppError {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(message)

	if cause != nil {
		builder = builder.WithCause(cause)
	}

	return NewAppError(builder, CategoryInternal, http.StatusInternalServerError)
}

// IsConfiguration reports whether err is a fatal configuration error.
func IsConfiguration(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Category == CategoryConfiguration
	}
	return false
}

// ToAppError converts any error to an AppError
func ToAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(err.Error(), err)
}
