package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Unknown
// errors map to 500 so internal failures never look like client mistakes.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, service.ErrAccountNotFound):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTaskStatus),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. It never
// includes the raw error text of unexpected failures.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		validationErrs validator.ValidationErrors
		domainErr      *domain.ValidationError
	)

	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid or expired token"

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, service.ErrAccountNotFound):
		return "Unauthorized"

	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrDuplicateEmail):
		return "Email already exists"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, domain.ErrInvalidTaskStatus):
		// Status errors list the allowed values and nothing internal.
		return err.Error()

	case errors.As(err, &domainErr):
		return capitalize(domainErr.Error())

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return "Validation failed"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator field errors into a short message
// naming the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation failed"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the mapped status and safe message for err and logs
// the redacted cause. A non-empty message overrides the mapped one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
