package service

import (
	"errors"
	"fmt"
)

// Common service errors. Callers check for them with errors.Is; the API layer
// maps them to HTTP status codes.
var (
	// ErrDuplicateEmail indicates a registration for an email that already has an account.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	// Both causes return this same value.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountNotFound indicates an authenticated identity that no longer
	// maps to an account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTaskNotFound indicates the task does not exist or belongs to another account.
	ErrTaskNotFound = errors.New("task not found")
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewAuthServiceError creates a ServiceError for the auth service.
func NewAuthServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "auth", Operation: operation, Message: message, Err: err}
}

// NewTaskServiceError creates a ServiceError for the task service.
func NewTaskServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Service: "task", Operation: operation, Message: message, Err: err}
}
