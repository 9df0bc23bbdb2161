package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/caseflow/caseflow-api/internal/redact"
)

// Error categories carried in the "error" field of ErrorResponse. The
// strings are part of the API contract and must not be reworded.
const (
	CategoryTaskNotFound        = "Task Not Found"
	CategoryDuplicateCaseNumber = "Duplicate Case Number"
	CategoryInvalidRequest      = "Invalid Request"
	CategoryValidationFailed    = "Validation Failed"
	CategoryBadRequest          = "Bad Request"
	CategoryUnsupportedMedia    = "Unsupported Media Type"
	CategoryMethodNotAllowed    = "Method Not Allowed"
	CategoryInternalServerError = "Internal Server Error"
)

// ErrorResponse is the uniform error body returned by every failing request.
// ValidationErrors is populated only for field-level request validation
// failures.
type ErrorResponse struct {
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	Timestamp        string            `json:"timestamp"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// NewErrorResponse builds an ErrorResponse with the timestamp stamped to the
// current time.
func NewErrorResponse(status int, category, message string) ErrorResponse {
	return ErrorResponse{
		Status:    status,
		Error:     category,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the error envelope with the given status code,
// category and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, category, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"error_category", category,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, NewErrorResponse(status, category, message))
}

// RespondWithErrorAndLog writes the error envelope and also logs the
// underlying error. The response carries only the safe message; the raw
// error is redacted and kept in the logs.
//
// Log level strategy: 5xx at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	category, userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("error_category", category),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, NewErrorResponse(status, category, userMessage))
}

// RespondWithValidationErrors writes the field-level validation envelope.
// fieldErrors maps request field names to their validation messages.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string) {
	slog.Debug("request validation failed",
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method,
		"field_count", len(fieldErrors))

	resp := NewErrorResponse(http.StatusBadRequest, CategoryValidationFailed, "Request validation failed")
	resp.ValidationErrors = fieldErrors
	RespondWithJSON(w, r, http.StatusBadRequest, resp)
}
