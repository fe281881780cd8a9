package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthenticated indicates a missing, malformed or expired credential.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden indicates the caller is authenticated but not entitled to the
// action or record.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition indicates an approval state machine rule violation,
// including attempts to transition a record already in a terminal status.
var ErrInvalidTransition = errors.New("invalid status transition")

// AppError carries an HTTP status code alongside the underlying error so the
// transport layer can map service failures without inspecting sentinel types.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthenticated}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Message: message}
}
