package api

import (
	"errors"
	"net/http"

	"github.com/caseflow/caseflow-api/internal/api/shared"
	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/service"
	"github.com/caseflow/caseflow-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateCaseNumber):
		return http.StatusConflict

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. Validation, not-found and duplicate errors carry
// messages that are safe to return verbatim; everything else collapses to a
// generic message so internal details stay in the logs.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var notFoundErr *service.TaskNotFoundError

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.As(err, &notFoundErr):
		return notFoundErr.Error()

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrDuplicateCaseNumber):
		return "Could not allocate a unique case number"

	default:
		return "An unexpected error occurred"
	}
}

// ErrorCategory returns the envelope category for a status code produced by
// MapErrorToStatusCode.
func ErrorCategory(status int) string {
	switch status {
	case http.StatusBadRequest:
		return shared.CategoryInvalidRequest
	case http.StatusNotFound:
		return shared.CategoryTaskNotFound
	case http.StatusConflict:
		return shared.CategoryDuplicateCaseNumber
	default:
		return shared.CategoryInternalServerError
	}
}

// RespondWithServiceError writes the error envelope for an error returned by
// the task service, logging the underlying cause.
func RespondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, ErrorCategory(status), GetSafeErrorMessage(err), err)
}
