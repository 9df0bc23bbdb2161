package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/caseflow/caseflow-api/internal/api/shared"
	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/platform/logger"
	"github.com/caseflow/caseflow-api/internal/redact"
	"github.com/caseflow/caseflow-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// Paging bounds for the task listing endpoint.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Routes registers the task endpoints on the given router.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateTask)
	r.Get("/", h.ListTasks)
	r.Get("/overdue", h.GetOverdueTasks)
	r.Get("/statistics", h.GetTaskStatistics)
	r.Get("/statuses", h.GetValidStatuses)
	r.Get("/created-between", h.GetTasksCreatedBetween)
	r.Get("/status/{status}", h.GetTasksByStatus)
	r.Get("/{id}", h.GetTask)
	r.Put("/{id}/status", h.UpdateTaskStatus)
	r.Put("/{id}", h.UpdateTask)
	r.Delete("/{id}", h.DeleteTask)
}

// CreateTask handles POST /api/v1/tasks requests
// It validates the payload, allocates a case number and persists the task.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode create task request", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.CategoryBadRequest, shared.DecodeErrorMessage(err))
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationMessages(err))
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.String("case_number", task.CaseNumber))
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// ListTasks handles GET /api/v1/tasks requests
// It returns one page of tasks, filtered by the optional search and status
// query parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, ok := queryInt(w, r, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := queryInt(w, r, "pageSize", defaultPageSize)
	if !ok {
		return
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")
	offset := (page - 1) * pageSize

	tasks, err := h.taskService.SearchTasks(r.Context(), search, status, offset, pageSize)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	total, err := h.taskService.CountFilteredTasks(r.Context(), search, status)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	log.Debug("listed tasks",
		slog.Int("page", page),
		slog.Int("page_size", pageSize),
		slog.Int64("total_tasks", total))
	shared.RespondWithJSON(w, r, http.StatusOK, TaskPageResponse{
		Tasks:       nonNilTasks(tasks),
		TotalTasks:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	})
}

// GetTask handles GET /api/v1/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTaskStatus handles PUT /api/v1/tasks/{id}/status requests
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode status update request", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.CategoryBadRequest, shared.DecodeErrorMessage(err))
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationMessages(err))
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), id, req.Status)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	log.Debug("task status updated",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /api/v1/tasks/{id} requests
// Only fields present in the payload are applied.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode update task request", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.CategoryBadRequest, shared.DecodeErrorMessage(err))
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithValidationErrors(w, r, validationMessages(err))
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, service.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/v1/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := taskIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// GetTasksByStatus handles GET /api/v1/tasks/status/{status} requests
func (h *TaskHandler) GetTasksByStatus(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")

	tasks, err := h.taskService.GetTasksByStatus(r.Context(), status)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nonNilTasks(tasks))
}

// GetOverdueTasks handles GET /api/v1/tasks/overdue requests
func (h *TaskHandler) GetOverdueTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetOverdueTasks(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nonNilTasks(tasks))
}

// GetTaskStatistics handles GET /api/v1/tasks/statistics requests
func (h *TaskHandler) GetTaskStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.taskService.GetTaskStatistics(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetValidStatuses handles GET /api/v1/tasks/statuses requests
func (h *TaskHandler) GetValidStatuses(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.taskService.GetValidStatuses())
}

// GetTasksCreatedBetween handles GET /api/v1/tasks/created-between requests
// Both start and end are required RFC 3339 timestamps.
func (h *TaskHandler) GetTasksCreatedBetween(w http.ResponseWriter, r *http.Request) {
	start, ok := queryTime(w, r, "start")
	if !ok {
		return
	}
	end, ok := queryTime(w, r, "end")
	if !ok {
		return
	}

	tasks, err := h.taskService.GetTasksCreatedBetween(r.Context(), start, end)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nonNilTasks(tasks))
}

// taskIDFromPath extracts the {id} path parameter. On failure it writes the
// type mismatch envelope and returns false.
func taskIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid path parameter: id", "Expected type: integer")
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter, falling back to def
// when absent. A present but non-numeric value writes the type mismatch
// envelope and returns false.
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid path parameter: "+name, "Expected type: integer")
		return 0, false
	}
	return val, true
}

// queryTime parses a required RFC 3339 query parameter. On failure it writes
// the type mismatch envelope and returns false.
func queryTime(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid path parameter: "+name, "Expected type: date-time")
		return time.Time{}, false
	}
	return t, true
}

// nonNilTasks normalizes a nil slice to an empty one so list endpoints
// serialize as [] rather than null.
func nonNilTasks(tasks []*domain.Task) []*domain.Task {
	if tasks == nil {
		return []*domain.Task{}
	}
	return tasks
}
