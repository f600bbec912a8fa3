package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for expected failure conditions. Callers match them with
// errors.Is; the API layer maps each to a status code and error code.
var (
	// ErrTaskNotFound indicates no task with the given ID exists for the
	// requesting user. Tasks owned by other users are reported the same way.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates no user has the given username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates registration with a username already in use.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials indicates the password did not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// SubjectError is an expected failure that names the task or user it is
// about. It matches its sentinel with errors.Is, and Message is safe to
// show to clients.
type SubjectError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *SubjectError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel.
func (e *SubjectError) Unwrap() error {
	return e.Err
}

func taskNotFound(taskID uuid.UUID) error {
	return &SubjectError{Err: ErrTaskNotFound, Message: fmt.Sprintf("Task with ID %s not found", taskID)}
}

func userNotFound(username string) error {
	return &SubjectError{Err: ErrUserNotFound, Message: fmt.Sprintf("User with username '%s' not found", username)}
}

func usernameTaken(username string) error {
	return &SubjectError{Err: ErrUsernameTaken, Message: fmt.Sprintf("Username '%s' already exists", username)}
}

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
