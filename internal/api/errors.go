package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskflow-api/internal/api/shared"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/service"
	"github.com/phrazzld/taskflow-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Anything
// unrecognised is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the envelope error code for err.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return shared.CodeValidation
	case errors.Is(err, service.ErrInvalidCredentials):
		return shared.CodeInvalidCredentials
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return shared.CodeUnauthorized
	case errors.Is(err, service.ErrTaskNotFound):
		return shared.CodeTaskNotFound
	case errors.Is(err, service.ErrUserNotFound):
		return shared.CodeUserNotFound
	case errors.Is(err, service.ErrUsernameTaken):
		return shared.CodeUsernameExists
	default:
		return shared.CodeInternal
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var subjectErr *service.SubjectError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &subjectErr):
		return subjectErr.Message
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrUsernameTaken):
		return "Username already exists"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the error envelope for err and logs the redacted
// detail server-side. Failed logins are logged at WARN.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var opts []shared.ResponseOption
	if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrUserNotFound) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err),
		ErrorCode(err),
		GetSafeErrorMessage(err),
		err,
		opts...)
}
