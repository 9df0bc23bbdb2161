package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caseflow/caseflow-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		contentType    string
		expectedStatus int
	}{
		{
			name:           "POST with application/json",
			method:         http.MethodPost,
			contentType:    "application/json",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST with charset parameter",
			method:         http.MethodPost,
			contentType:    "application/json; charset=utf-8",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST with mixed case type",
			method:         http.MethodPost,
			contentType:    "Application/JSON",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "POST with text/plain",
			method:         http.MethodPost,
			contentType:    "text/plain",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "POST without Content-Type",
			method:         http.MethodPost,
			contentType:    "",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "PUT with form encoding",
			method:         http.MethodPut,
			contentType:    "application/x-www-form-urlencoded",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "PATCH without Content-Type",
			method:         http.MethodPatch,
			contentType:    "",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "GET without Content-Type",
			method:         http.MethodGet,
			contentType:    "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "DELETE without Content-Type",
			method:         http.MethodDelete,
			contentType:    "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tc.method, "/api/v1/tasks", nil)
			if tc.contentType != "" {
				req.Header.Set("Content-Type", tc.contentType)
			}
			w := httptest.NewRecorder()

			RequireJSON(next).ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestRequireJSON_ErrorBody(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", nil)
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	RequireJSON(next).ServeHTTP(w, req)

	require.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.Status)
	assert.Equal(t, "Unsupported Media Type", resp.Error)
	assert.Equal(t, "Content-Type header is missing or not supported. Expected: application/json", resp.Message)
	assert.NotEmpty(t, resp.Timestamp)
}
