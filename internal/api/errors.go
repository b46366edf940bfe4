package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/velder/taskboard-api/internal/api/shared"
	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/service"
	"github.com/velder/taskboard-api/internal/service/auth"
)

// ErrPaginationOutOfRange indicates the caller supplied a start/end pair
// that does not describe at least one element (end - start < 1).
var ErrPaginationOutOfRange = errors.New("pagination range is out of range")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Note the deliberate quirk inherited from the API contract: missing
// resources answer 400, not 404.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Authorization errors, including a failed password check on login
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrIncorrectPassword):
		return http.StatusForbidden

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateUser):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, ErrPaginationOutOfRange):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return "You are not allowed to modify this resource!"

	case errors.Is(err, service.ErrIncorrectPassword):
		return "Incorrect password!"

	// Not found errors
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found."

	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found."

	case errors.Is(err, service.ErrCommentNotFound):
		return "Comment not found."

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateUser):
		return "Duplicate E-Mail."

	// Bad request errors
	case errors.Is(err, ErrPaginationOutOfRange):
		return "Out of range!"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError maps err to a status code and safe message and writes
// the failure envelope, logging the underlying error server-side.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
