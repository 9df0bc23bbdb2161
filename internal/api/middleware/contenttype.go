package middleware

import (
	"mime"
	"net/http"
	"strings"

	"github.com/caseflow/caseflow-api/internal/api/shared"
)

// RequireJSON rejects body-carrying requests whose Content-Type is missing
// or not application/json, matching the contract message for 415 responses.
// Reads and deletes pass through untouched.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || !strings.EqualFold(mediaType, "application/json") {
				shared.RespondWithError(w, r, http.StatusUnsupportedMediaType,
					shared.CategoryUnsupportedMedia,
					"Content-Type header is missing or not supported. Expected: application/json")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
