package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/caseflow/caseflow-api/internal/api/shared"
	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn             func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error)
	GetTaskByIDFn            func(ctx context.Context, id int64) (*domain.Task, error)
	FindTaskByIDFn           func(ctx context.Context, id int64) (*domain.Task, error)
	GetTaskByCaseNumberFn    func(ctx context.Context, caseNumber string) (*domain.Task, error)
	GetAllTasksFn            func(ctx context.Context) ([]*domain.Task, error)
	GetAllTasksOrderedFn     func(ctx context.Context) ([]*domain.Task, error)
	GetTasksPaginatedFn      func(ctx context.Context, offset, limit int) ([]*domain.Task, error)
	GetTasksByStatusFn       func(ctx context.Context, status string) ([]*domain.Task, error)
	GetOverdueTasksFn        func(ctx context.Context) ([]*domain.Task, error)
	GetTasksDueBeforeFn      func(ctx context.Context, cutoff time.Time) ([]*domain.Task, error)
	GetTasksCreatedBetweenFn func(ctx context.Context, start, end time.Time) ([]*domain.Task, error)
	UpdateTaskStatusFn       func(ctx context.Context, id int64, status string) (*domain.Task, error)
	UpdateTaskFn             func(ctx context.Context, id int64, params service.UpdateTaskParams) (*domain.Task, error)
	DeleteTaskFn             func(ctx context.Context, id int64) error
	SearchTasksFn            func(ctx context.Context, term, status string, offset, limit int) ([]*domain.Task, error)
	SearchTasksByTermFn      func(ctx context.Context, term string) ([]*domain.Task, error)
	CountTasksFn             func(ctx context.Context) (int64, error)
	CountFilteredTasksFn     func(ctx context.Context, term, status string) (int64, error)
	GetTaskStatisticsFn      func(ctx context.Context) (map[string]int64, error)
	GetValidStatusesFn       func() []string
}

func (m *MockTaskService) CreateTask(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, params)
	}
	return nil, nil
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetTaskByIDFn != nil {
		return m.GetTaskByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) FindTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.FindTaskByIDFn != nil {
		return m.FindTaskByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) GetTaskByCaseNumber(ctx context.Context, caseNumber string) (*domain.Task, error) {
	if m.GetTaskByCaseNumberFn != nil {
		return m.GetTaskByCaseNumberFn(ctx, caseNumber)
	}
	return nil, nil
}

func (m *MockTaskService) GetAllTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.GetAllTasksFn != nil {
		return m.GetAllTasksFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) GetAllTasksOrderedByDueDate(ctx context.Context) ([]*domain.Task, error) {
	if m.GetAllTasksOrderedFn != nil {
		return m.GetAllTasksOrderedFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) GetTasksPaginated(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	if m.GetTasksPaginatedFn != nil {
		return m.GetTasksPaginatedFn(ctx, offset, limit)
	}
	return nil, nil
}

func (m *MockTaskService) GetTasksByStatus(ctx context.Context, status string) ([]*domain.Task, error) {
	if m.GetTasksByStatusFn != nil {
		return m.GetTasksByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *MockTaskService) GetOverdueTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.GetOverdueTasksFn != nil {
		return m.GetOverdueTasksFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) GetTasksDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error) {
	if m.GetTasksDueBeforeFn != nil {
		return m.GetTasksDueBeforeFn(ctx, cutoff)
	}
	return nil, nil
}

func (m *MockTaskService) GetTasksCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Task, error) {
	if m.GetTasksCreatedBetweenFn != nil {
		return m.GetTasksCreatedBetweenFn(ctx, start, end)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTaskStatus(ctx context.Context, id int64, status string) (*domain.Task, error) {
	if m.UpdateTaskStatusFn != nil {
		return m.UpdateTaskStatusFn(ctx, id, status)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, params service.UpdateTaskParams) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, params)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

func (m *MockTaskService) SearchTasks(ctx context.Context, term, status string, offset, limit int) ([]*domain.Task, error) {
	if m.SearchTasksFn != nil {
		return m.SearchTasksFn(ctx, term, status, offset, limit)
	}
	return nil, nil
}

func (m *MockTaskService) SearchTasksByTerm(ctx context.Context, term string) ([]*domain.Task, error) {
	if m.SearchTasksByTermFn != nil {
		return m.SearchTasksByTermFn(ctx, term)
	}
	return nil, nil
}

func (m *MockTaskService) CountTasks(ctx context.Context) (int64, error) {
	if m.CountTasksFn != nil {
		return m.CountTasksFn(ctx)
	}
	return 0, nil
}

func (m *MockTaskService) CountFilteredTasks(ctx context.Context, term, status string) (int64, error) {
	if m.CountFilteredTasksFn != nil {
		return m.CountFilteredTasksFn(ctx, term, status)
	}
	return 0, nil
}

func (m *MockTaskService) GetTaskStatistics(ctx context.Context) (map[string]int64, error) {
	if m.GetTaskStatisticsFn != nil {
		return m.GetTaskStatisticsFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskService) GetValidStatuses() []string {
	if m.GetValidStatusesFn != nil {
		return m.GetValidStatusesFn()
	}
	return domain.StatusNames()
}

func newTestHandler(svc service.TaskService) *TaskHandler {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTaskHandler(svc, testLogger)
}

// withPathParam injects a chi URL parameter so handlers can be called
// without a full router.
func withPathParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleTask(id int64) *domain.Task {
	desc := "Quarterly filing"
	return &domain.Task{
		ID:          id,
		CaseNumber:  "TASK000042",
		Title:       "Review case file",
		Description: &desc,
		Status:      domain.StatusPending,
		DueDate:     time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
		CreatedDate: time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC),
		UpdatedDate: time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC),
	}
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNewTaskHandler(t *testing.T) {
	t.Run("with logger", func(t *testing.T) {
		handler := newTestHandler(&MockTaskService{})
		assert.NotNil(t, handler)
		assert.NotNil(t, handler.logger)
	})

	t.Run("without logger", func(t *testing.T) {
		assert.Panics(t, func() {
			NewTaskHandler(&MockTaskService{}, nil)
		})
	})
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got service.CreateTaskParams
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
				got = params
				return sampleTask(7), nil
			},
		}
		handler := newTestHandler(svc)

		body := `{
			"title": "  Review case file  ",
			"description": "Quarterly filing",
			"status": "pending",
			"dueDate": "2025-06-01T12:00:00Z"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.CreateTask(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		// The handler passes raw values through; trimming happens in the
		// service.
		assert.Equal(t, "  Review case file  ", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Quarterly filing", *got.Description)
		require.NotNil(t, got.Status)
		assert.Equal(t, "pending", *got.Status)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC), got.DueDate.UTC())

		var respBody map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
		assert.Equal(t, float64(7), respBody["id"])
		assert.Equal(t, "TASK000042", respBody["caseNumber"])
		assert.Equal(t, "Review case file", respBody["title"])
		assert.Equal(t, "PENDING", respBody["status"])
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
				return sampleTask(7), nil
			},
		}
		handler := newTestHandler(svc)

		body := `{"title":"Task","dueDate":"2025-06-01T12:00:00Z","caseNumber":"SPOOFED"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.CreateTask(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("decode failures", func(t *testing.T) {
		tests := []struct {
			name            string
			body            string
			expectedMessage string
		}{
			{
				name:            "malformed JSON",
				body:            `{"title": unquoted}`,
				expectedMessage: "Malformed JSON request",
			},
			{
				name:            "missing body",
				body:            "",
				expectedMessage: "Request body is missing",
			},
			{
				name:            "wrong type for field",
				body:            `{"title": 42}`,
				expectedMessage: "Invalid value for field: title",
			},
			{
				name:            "unparseable due date",
				body:            `{"title":"Task","dueDate":"tomorrow"}`,
				expectedMessage: "Invalid value for field: dueDate",
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				called := false
				svc := &MockTaskService{
					CreateTaskFn: func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
						called = true
						return sampleTask(1), nil
					},
				}
				handler := newTestHandler(svc)

				req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(tc.body))
				w := httptest.NewRecorder()

				handler.CreateTask(w, req)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.False(t, called)

				resp := decodeErrorResponse(t, w)
				assert.Equal(t, "Bad Request", resp.Error)
				assert.Equal(t, tc.expectedMessage, resp.Message)
			})
		}
	})

	t.Run("field validation failures", func(t *testing.T) {
		called := false
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
				called = true
				return sampleTask(1), nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(`{"title":"   "}`))
		w := httptest.NewRecorder()

		handler.CreateTask(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Validation Failed", resp.Error)
		assert.Equal(t, "Request validation failed", resp.Message)
		assert.Equal(t, map[string]string{
			"title":   "Title is required",
			"dueDate": "Due date is required",
		}, resp.ValidationErrors)
	})

	t.Run("service validation error", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
				return nil, domain.ErrDueDateInPast
			},
		}
		handler := newTestHandler(svc)

		body := `{"title":"Task","dueDate":"2020-01-01T00:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.CreateTask(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Invalid Request", resp.Error)
		assert.Equal(t, "Due date cannot be in the past", resp.Message)
	})

	t.Run("case number exhaustion", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
				return nil, service.ErrDuplicateCaseNumber
			},
		}
		handler := newTestHandler(svc)

		body := `{"title":"Task","dueDate":"2025-06-01T12:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.CreateTask(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Duplicate Case Number", resp.Error)
		assert.Equal(t, "Could not allocate a unique case number", resp.Message)
	})

	t.Run("unexpected service error", func(t *testing.T) {
		svc := &MockTaskService{
			CreateTaskFn: func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
				return nil, errors.New("insert failed: disk full")
			},
		}
		handler := newTestHandler(svc)

		body := `{"title":"Task","dueDate":"2025-06-01T12:00:00Z"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.CreateTask(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Internal Server Error", resp.Error)
		assert.Equal(t, "An unexpected error occurred", resp.Message)
		assert.NotContains(t, w.Body.String(), "disk full")
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockTaskService{
			GetTaskByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				assert.Equal(t, int64(42), id)
				return sampleTask(42), nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/42", nil)
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.GetTask(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var respBody map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
		assert.Equal(t, float64(42), respBody["id"])
		assert.Equal(t, "TASK000042", respBody["caseNumber"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		handler := newTestHandler(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/abc", nil)
		req = withPathParam(req, "id", "abc")
		w := httptest.NewRecorder()

		handler.GetTask(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Invalid path parameter: id", resp.Error)
		assert.Equal(t, "Expected type: integer", resp.Message)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockTaskService{
			GetTaskByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
				return nil, service.NewTaskNotFoundByID(id)
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/99", nil)
		req = withPathParam(req, "id", "99")
		w := httptest.NewRecorder()

		handler.GetTask(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "Task Not Found", resp.Error)
		assert.Equal(t, "Task with ID 99 not found", resp.Message)
	})
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var gotTerm, gotStatus string
		var gotOffset, gotLimit int
		svc := &MockTaskService{
			SearchTasksFn: func(ctx context.Context, term, status string, offset, limit int) ([]*domain.Task, error) {
				gotTerm, gotStatus, gotOffset, gotLimit = term, status, offset, limit
				return []*domain.Task{sampleTask(1), sampleTask(2)}, nil
			},
			CountFilteredTasksFn: func(ctx context.Context, term, status string) (int64, error) {
				return 12, nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", gotTerm)
		assert.Equal(t, "", gotStatus)
		assert.Equal(t, 0, gotOffset)
		assert.Equal(t, 10, gotLimit)

		var page TaskPageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Tasks, 2)
		assert.Equal(t, int64(12), page.TotalTasks)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 10, page.PageSize)
	})

	t.Run("explicit page and filters", func(t *testing.T) {
		var gotTerm, gotStatus string
		var gotOffset, gotLimit int
		svc := &MockTaskService{
			SearchTasksFn: func(ctx context.Context, term, status string, offset, limit int) ([]*domain.Task, error) {
				gotTerm, gotStatus, gotOffset, gotLimit = term, status, offset, limit
				return []*domain.Task{sampleTask(11)}, nil
			},
			CountFilteredTasksFn: func(ctx context.Context, term, status string) (int64, error) {
				assert.Equal(t, "report", term)
				assert.Equal(t, "pending", status)
				return 11, nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/tasks?page=3&pageSize=5&search=report&status=pending", nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "report", gotTerm)
		assert.Equal(t, "pending", gotStatus)
		assert.Equal(t, 10, gotOffset)
		assert.Equal(t, 5, gotLimit)

		var page TaskPageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 3, page.CurrentPage)
		assert.Equal(t, 5, page.PageSize)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("out of range paging clamps to defaults", func(t *testing.T) {
		var gotOffset, gotLimit int
		svc := &MockTaskService{
			SearchTasksFn: func(ctx context.Context, term, status string, offset, limit int) ([]*domain.Task, error) {
				gotOffset, gotLimit = offset, limit
				return nil, nil
			},
			CountFilteredTasksFn: func(ctx context.Context, term, status string) (int64, error) {
				return 0, nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?page=0&pageSize=1000", nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, gotOffset)
		assert.Equal(t, 10, gotLimit)

		var page TaskPageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 10, page.PageSize)
	})

	t.Run("nil result serializes as empty array", func(t *testing.T) {
		svc := &MockTaskService{}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"tasks":[]`)
	})

	t.Run("non-numeric page", func(t *testing.T) {
		handler := newTestHandler(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?page=abc", nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Invalid path parameter: page", resp.Error)
		assert.Equal(t, "Expected type: integer", resp.Message)
	})

	t.Run("count failure", func(t *testing.T) {
		svc := &MockTaskService{
			CountFilteredTasksFn: func(ctx context.Context, term, status string) (int64, error) {
				return 0, errors.New("count failed")
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockTaskService{
			UpdateTaskStatusFn: func(ctx context.Context, id int64, status string) (*domain.Task, error) {
				assert.Equal(t, int64(42), id)
				assert.Equal(t, "completed", status)
				task := sampleTask(42)
				task.Status = domain.StatusCompleted
				return task, nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/42/status",
			bytes.NewBufferString(`{"status":"completed"}`))
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.UpdateTaskStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var respBody map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respBody))
		assert.Equal(t, "COMPLETED", respBody["status"])
	})

	t.Run("missing status", func(t *testing.T) {
		handler := newTestHandler(&MockTaskService{})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/42/status",
			bytes.NewBufferString(`{}`))
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.UpdateTaskStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Validation Failed", resp.Error)
		assert.Equal(t, map[string]string{"status": "Status is required"}, resp.ValidationErrors)
	})

	t.Run("whitespace status", func(t *testing.T) {
		handler := newTestHandler(&MockTaskService{})

		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/42/status",
			bytes.NewBufferString(`{"status":"   "}`))
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.UpdateTaskStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, map[string]string{"status": "Status is required"}, resp.ValidationErrors)
	})

	t.Run("unrecognized status", func(t *testing.T) {
		svc := &MockTaskService{
			UpdateTaskStatusFn: func(ctx context.Context, id int64, status string) (*domain.Task, error) {
				return nil, domain.NewInvalidStatusError(status)
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/42/status",
			bytes.NewBufferString(`{"status":"archived"}`))
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.UpdateTaskStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Invalid Request", resp.Error)
		assert.Equal(t,
			"Invalid status: archived. Valid statuses are: PENDING, IN_PROGRESS, COMPLETED, CANCELLED, ON_HOLD",
			resp.Message)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockTaskService{
			UpdateTaskStatusFn: func(ctx context.Context, id int64, status string) (*domain.Task, error) {
				return nil, service.NewTaskNotFoundByID(id)
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/99/status",
			bytes.NewBufferString(`{"status":"completed"}`))
		req = withPathParam(req, "id", "99")
		w := httptest.NewRecorder()

		handler.UpdateTaskStatus(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("partial payload keeps absent fields nil", func(t *testing.T) {
		var got service.UpdateTaskParams
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, params service.UpdateTaskParams) (*domain.Task, error) {
				got = params
				return sampleTask(42), nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/42",
			bytes.NewBufferString(`{"description":""}`))
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.UpdateTask(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		// Present-but-empty and absent must stay distinguishable.
		require.NotNil(t, got.Description)
		assert.Equal(t, "", *got.Description)
		assert.Nil(t, got.Title)
		assert.Nil(t, got.Status)
		assert.Nil(t, got.DueDate)
	})

	t.Run("full payload", func(t *testing.T) {
		var got service.UpdateTaskParams
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, params service.UpdateTaskParams) (*domain.Task, error) {
				got = params
				return sampleTask(42), nil
			},
		}
		handler := newTestHandler(svc)

		body := `{"title":"New title","description":"New desc","status":"on_hold","dueDate":"2025-07-01T00:00:00Z"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/42", bytes.NewBufferString(body))
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.UpdateTask(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.Title)
		assert.Equal(t, "New title", *got.Title)
		require.NotNil(t, got.Status)
		assert.Equal(t, "on_hold", *got.Status)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), got.DueDate.UTC())
	})

	t.Run("title too long", func(t *testing.T) {
		called := false
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, params service.UpdateTaskParams) (*domain.Task, error) {
				called = true
				return sampleTask(42), nil
			},
		}
		handler := newTestHandler(svc)

		body := `{"title":"` + strings.Repeat("x", 256) + `"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/42", bytes.NewBufferString(body))
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.UpdateTask(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, map[string]string{"title": "Title must not exceed 255 characters"}, resp.ValidationErrors)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockTaskService{
			UpdateTaskFn: func(ctx context.Context, id int64, params service.UpdateTaskParams) (*domain.Task, error) {
				return nil, service.NewTaskNotFoundByID(id)
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/99",
			bytes.NewBufferString(`{"title":"New"}`))
		req = withPathParam(req, "id", "99")
		w := httptest.NewRecorder()

		handler.UpdateTask(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) error {
				assert.Equal(t, int64(42), id)
				return nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/42", nil)
		req = withPathParam(req, "id", "42")
		w := httptest.NewRecorder()

		handler.DeleteTask(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		svc := &MockTaskService{
			DeleteTaskFn: func(ctx context.Context, id int64) error {
				return service.NewTaskNotFoundByID(id)
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/99", nil)
		req = withPathParam(req, "id", "99")
		w := httptest.NewRecorder()

		handler.DeleteTask(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Task with ID 99 not found", resp.Message)
	})
}

func TestTaskHandler_GetTasksByStatus(t *testing.T) {
	t.Run("passes raw path value to the service", func(t *testing.T) {
		svc := &MockTaskService{
			GetTasksByStatusFn: func(ctx context.Context, status string) ([]*domain.Task, error) {
				assert.Equal(t, "pending", status)
				return []*domain.Task{sampleTask(1)}, nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/status/pending", nil)
		req = withPathParam(req, "status", "pending")
		w := httptest.NewRecorder()

		handler.GetTasksByStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var tasks []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
		assert.Len(t, tasks, 1)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := &MockTaskService{
			GetTasksByStatusFn: func(ctx context.Context, status string) ([]*domain.Task, error) {
				return nil, domain.NewInvalidStatusError(status)
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/status/basket", nil)
		req = withPathParam(req, "status", "basket")
		w := httptest.NewRecorder()

		handler.GetTasksByStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Invalid Request", resp.Error)
		assert.Contains(t, resp.Message, "Invalid status: basket")
	})
}

func TestTaskHandler_GetOverdueTasks(t *testing.T) {
	svc := &MockTaskService{
		GetOverdueTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
			return []*domain.Task{sampleTask(1), sampleTask(2)}, nil
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/overdue", nil)
	w := httptest.NewRecorder()

	handler.GetOverdueTasks(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var tasks []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 2)
}

func TestTaskHandler_GetTaskStatistics(t *testing.T) {
	svc := &MockTaskService{
		GetTaskStatisticsFn: func(ctx context.Context) (map[string]int64, error) {
			return map[string]int64{"total": 5, "pending": 3, "completed": 2, "overdue": 1}, nil
		},
	}
	handler := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/statistics", nil)
	w := httptest.NewRecorder()

	handler.GetTaskStatistics(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(5), stats["total"])
	assert.Equal(t, int64(1), stats["overdue"])
}

func TestTaskHandler_GetValidStatuses(t *testing.T) {
	handler := newTestHandler(&MockTaskService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/statuses", nil)
	w := httptest.NewRecorder()

	handler.GetValidStatuses(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var statuses []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statuses))
	assert.Equal(t, []string{"PENDING", "IN_PROGRESS", "COMPLETED", "CANCELLED", "ON_HOLD"}, statuses)
}

func TestTaskHandler_GetTasksCreatedBetween(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotStart, gotEnd time.Time
		svc := &MockTaskService{
			GetTasksCreatedBetweenFn: func(ctx context.Context, start, end time.Time) ([]*domain.Task, error) {
				gotStart, gotEnd = start, end
				return nil, nil
			},
		}
		handler := newTestHandler(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/tasks/created-between?start=2025-01-01T00:00:00Z&end=2025-02-01T00:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetTasksCreatedBetween(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), gotStart.UTC())
		assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), gotEnd.UTC())
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("unparseable start", func(t *testing.T) {
		handler := newTestHandler(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/tasks/created-between?start=yesterday&end=2025-02-01T00:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetTasksCreatedBetween(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Invalid path parameter: start", resp.Error)
		assert.Equal(t, "Expected type: date-time", resp.Message)
	})

	t.Run("missing end", func(t *testing.T) {
		handler := newTestHandler(&MockTaskService{})

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/tasks/created-between?start=2025-01-01T00:00:00Z", nil)
		w := httptest.NewRecorder()

		handler.GetTasksCreatedBetween(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeErrorResponse(t, w)
		assert.Equal(t, "Invalid path parameter: end", resp.Error)
	})
}

// TestTaskHandlerRoutes drives requests through a real chi router to cover
// route registration, static-over-parameter precedence included.
func TestTaskHandlerRoutes(t *testing.T) {
	svc := &MockTaskService{
		GetTaskByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
			return sampleTask(id), nil
		},
		GetOverdueTasksFn: func(ctx context.Context) ([]*domain.Task, error) {
			return nil, nil
		},
		GetTaskStatisticsFn: func(ctx context.Context) (map[string]int64, error) {
			return map[string]int64{"total": 0, "overdue": 0}, nil
		},
		DeleteTaskFn: func(ctx context.Context, id int64) error {
			return nil
		},
		UpdateTaskStatusFn: func(ctx context.Context, id int64, status string) (*domain.Task, error) {
			return sampleTask(id), nil
		},
	}
	handler := newTestHandler(svc)

	router := chi.NewRouter()
	router.Route("/api/v1/tasks", handler.Routes)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"get by id", http.MethodGet, "/api/v1/tasks/42", "", http.StatusOK},
		{"overdue wins over id wildcard", http.MethodGet, "/api/v1/tasks/overdue", "", http.StatusOK},
		{"statistics", http.MethodGet, "/api/v1/tasks/statistics", "", http.StatusOK},
		{"statuses", http.MethodGet, "/api/v1/tasks/statuses", "", http.StatusOK},
		{"delete", http.MethodDelete, "/api/v1/tasks/42", "", http.StatusNoContent},
		{"status update", http.MethodPut, "/api/v1/tasks/42/status", `{"status":"completed"}`, http.StatusOK},
		{"non-numeric id through router", http.MethodGet, "/api/v1/tasks/abc", "", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = bytes.NewBufferString(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.path, body)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}
