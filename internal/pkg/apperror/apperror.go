package apperror

import "fmt"

type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// AppError is the error type services return. The error handler
// middleware maps Kind to an HTTP status.
type AppError struct {
	Kind    Kind
	Message string
	// Details carries field-level validation failures, e.g.
	// {"password": ["too short", "entirely numeric"]}.
	Details map[string][]string
}

func (e *AppError) Error() string {
	return e.Message
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func ValidationWithDetails(message string, details map[string][]string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}
