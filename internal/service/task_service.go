package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/caseflow/caseflow-api/internal/domain"
	"github.com/caseflow/caseflow-api/internal/platform/logger"
	"github.com/caseflow/caseflow-api/internal/store"
)

// defaultDueDateOffset is how far in the future a new task's due date lands
// when the create request does not provide one.
const defaultDueDateOffset = 7 * 24 * time.Hour

// createAttempts bounds how many times the create path retries after the
// storage unique constraint rejects a case number. The pre-insert existence
// check makes collisions rare; the bound keeps a pathological sequence from
// looping forever.
const createAttempts = 3

// TaskRepository defines the repository interface for the service layer.
// This is aligned with store.TaskStore to ensure proper separation of concerns.
type TaskRepository interface {
	// Create saves a new task and fills in its storage-assigned ID
	Create(ctx context.Context, task *domain.Task) error

	// Update saves changes to an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a task by its unique ID
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ExistsByID reports whether a task with the given ID exists
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// GetByCaseNumber retrieves a task by its case number
	GetByCaseNumber(ctx context.Context, caseNumber string) (*domain.Task, error)

	// ExistsByCaseNumber reports whether a task with the given case number exists
	ExistsByCaseNumber(ctx context.Context, caseNumber string) (bool, error)

	// FindAll retrieves every task in storage order
	FindAll(ctx context.Context) ([]*domain.Task, error)

	// FindAllByDueDateDesc retrieves every task ordered by due date, latest first
	FindAllByDueDateDesc(ctx context.Context) ([]*domain.Task, error)

	// FindAllPaginated retrieves a window of tasks ordered by due date, latest first
	FindAllPaginated(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// FindByStatus retrieves tasks whose status matches case-insensitively
	FindByStatus(ctx context.Context, status string) ([]*domain.Task, error)

	// FindDueBefore retrieves tasks due strictly before the cutoff
	FindDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error)

	// FindOverdue retrieves incomplete tasks due strictly before asOf
	FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.Task, error)

	// FindCreatedBetween retrieves tasks created within the inclusive range
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Task, error)

	// Search retrieves tasks matching the term in title, description or case number
	Search(ctx context.Context, term string) ([]*domain.Task, error)

	// FindFiltered retrieves a window of tasks matching the filter
	FindFiltered(
		ctx context.Context,
		filter store.TaskFilter,
		offset, limit int,
	) ([]*domain.Task, error)

	// CountFiltered counts tasks matching the filter
	CountFiltered(ctx context.Context, filter store.TaskFilter) (int64, error)

	// Count counts all tasks
	Count(ctx context.Context) (int64, error)

	// CountByStatus counts tasks grouped by their stored status value
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// WithTx returns a new repository instance that uses the provided transaction
	// This is used for transactional operations
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection, or nil when the
	// repository is not backed by database/sql
	DB() *sql.DB
}

// CreateTaskParams carries the caller-supplied fields for creating a task.
// Pointer fields distinguish absent from empty so that defaults only apply
// when a field was truly omitted.
type CreateTaskParams struct {
	Title       string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// UpdateTaskParams carries the caller-supplied fields for a partial update.
// Nil fields are left untouched. A provided blank title or status is
// ignored rather than rejected; a provided empty description is stored as
// empty, which is distinct from absent.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask validates params, allocates a unique case number and
	// persists a new task. Omitted status defaults to PENDING; omitted due
	// date defaults to seven days from now.
	CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error)

	// GetTaskByID retrieves a task, returning TaskNotFoundError when absent
	GetTaskByID(ctx context.Context, id int64) (*domain.Task, error)

	// FindTaskByID retrieves a task, returning (nil, nil) when absent
	FindTaskByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetTaskByCaseNumber retrieves a task by its case number, returning
	// TaskNotFoundError when absent
	GetTaskByCaseNumber(ctx context.Context, caseNumber string) (*domain.Task, error)

	// GetAllTasks lists every task in storage order
	GetAllTasks(ctx context.Context) ([]*domain.Task, error)

	// GetAllTasksOrderedByDueDate lists every task, latest due date first
	GetAllTasksOrderedByDueDate(ctx context.Context) ([]*domain.Task, error)

	// GetTasksPaginated lists a window of tasks ordered by due date
	GetTasksPaginated(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// GetTasksByStatus validates the status, then lists matching tasks
	GetTasksByStatus(ctx context.Context, status string) ([]*domain.Task, error)

	// GetOverdueTasks lists incomplete tasks whose due date has passed
	GetOverdueTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTasksDueBefore lists tasks due strictly before the cutoff
	GetTasksDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Task, error)

	// GetTasksCreatedBetween lists tasks created within the inclusive range
	GetTasksCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Task, error)

	// UpdateTaskStatus transitions a task to the given status
	UpdateTaskStatus(ctx context.Context, id int64, status string) (*domain.Task, error)

	// UpdateTask applies a partial update to a task
	UpdateTask(ctx context.Context, id int64, params UpdateTaskParams) (*domain.Task, error)

	// DeleteTask removes a task, returning TaskNotFoundError when absent
	DeleteTask(ctx context.Context, id int64) error

	// SearchTasks lists a window of tasks matching term and status; blank
	// criteria match everything
	SearchTasks(ctx context.Context, term, status string, offset, limit int) ([]*domain.Task, error)

	// SearchTasksByTerm lists every task matching the term, ordered by due
	// date; a blank term lists everything
	SearchTasksByTerm(ctx context.Context, term string) ([]*domain.Task, error)

	// CountTasks counts all tasks
	CountTasks(ctx context.Context) (int64, error)

	// CountFilteredTasks counts tasks matching term and status
	CountFilteredTasks(ctx context.Context, term, status string) (int64, error)

	// GetTaskStatistics summarizes task counts: "total", one lower-case key
	// per status present in storage, and "overdue"
	GetTaskStatistics(ctx context.Context) (map[string]int64, error)

	// GetValidStatuses returns the canonical status names in declaration order
	GetValidStatuses() []string
}

// taskService implements the TaskService interface
type taskService struct {
	repo      TaskRepository
	generator CaseNumberGenerator
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	repo TaskRepository,
	generator CaseNumberGenerator,
	logger *slog.Logger,
) (TaskService, error) {
	// Validate dependencies
	if repo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "repo cannot be nil",
		}
	}
	if generator == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "generator cannot be nil",
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		repo:      repo,
		generator: generator,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// inTransaction runs fn against a transaction-bound repository. When the
// repository exposes no *sql.DB (unit test fakes), fn runs against the
// repository directly.
func (s *taskService) inTransaction(ctx context.Context, fn func(repo TaskRepository) error) error {
	db := s.repo.DB()
	if db == nil {
		return fn(s.repo)
	}
	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(s.repo.WithTx(tx))
	})
}

// normalizeTitle trims the title and enforces the presence and length rules.
func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", domain.ErrTitleRequired
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxTitleLength {
		return "", domain.ErrTitleTooLong
	}
	return trimmed, nil
}

// normalizeDescription trims the description and enforces the length cap.
// Empty after trimming is allowed; it is distinct from an absent description.
func normalizeDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if utf8.RuneCountInString(trimmed) > domain.MaxDescriptionLength {
		return "", domain.ErrDescriptionTooLong
	}
	return trimmed, nil
}

// CreateTask implements TaskService.CreateTask.
func (s *taskService) CreateTask(
	ctx context.Context,
	params CreateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	title, err := normalizeTitle(params.Title)
	if err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if params.Status != nil {
		status, err = domain.ParseStatus(*params.Status)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	dueDate := now.Add(defaultDueDateOffset)
	if params.DueDate != nil {
		if params.DueDate.Before(now) {
			return nil, domain.ErrDueDateInPast
		}
		dueDate = params.DueDate.UTC()
	}

	var description *string
	if params.Description != nil {
		trimmed, err := normalizeDescription(*params.Description)
		if err != nil {
			return nil, err
		}
		description = &trimmed
	}

	// The pre-insert existence check filters out case numbers already taken,
	// but a concurrent create can still win the race to the same number. The
	// unique constraint catches that, and the loop re-rolls.
	for attempt := 1; attempt <= createAttempts; attempt++ {
		caseNumber, err := s.nextFreeCaseNumber(ctx)
		if err != nil {
			return nil, NewTaskServiceError("create_task", "failed to allocate case number", err)
		}

		task, err := domain.NewTask(caseNumber, title, description, status, dueDate)
		if err != nil {
			return nil, err
		}

		err = s.repo.Create(ctx, task)
		if err == nil {
			log.Info("task created",
				"task_id", task.ID,
				"case_number", task.CaseNumber,
				"status", task.Status)
			return task, nil
		}
		if errors.Is(err, store.ErrCaseNumberExists) {
			log.Warn("case number collided on insert, re-rolling",
				"case_number", caseNumber,
				"attempt", attempt)
			continue
		}

		log.Error("failed to create task",
			"error", err,
			"case_number", caseNumber)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Error("exhausted case number attempts", "attempts", createAttempts)
	return nil, ErrDuplicateCaseNumber
}

// nextFreeCaseNumber draws candidates from the generator until one is not
// already present in storage. The generator is monotonic, so the loop always
// makes progress.
func (s *taskService) nextFreeCaseNumber(ctx context.Context) (string, error) {
	for {
		caseNumber := s.generator.Next()
		exists, err := s.repo.ExistsByCaseNumber(ctx, caseNumber)
		if err != nil {
			return "", err
		}
		if !exists {
			return caseNumber, nil
		}
	}
}

// GetTaskByID implements TaskService.GetTaskByID.
func (s *taskService) GetTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewTaskNotFoundByID(id)
		}
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// FindTaskByID implements TaskService.FindTaskByID. Absence is not an error
// here; callers that want a 404 use GetTaskByID.
func (s *taskService) FindTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, NewTaskServiceError("find_task", "failed to retrieve task", err)
	}
	return task, nil
}

// GetTaskByCaseNumber implements TaskService.GetTaskByCaseNumber.
func (s *taskService) GetTaskByCaseNumber(
	ctx context.Context,
	caseNumber string,
) (*domain.Task, error) {
	task, err := s.repo.GetByCaseNumber(ctx, caseNumber)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewTaskNotFoundByCaseNumber(caseNumber)
		}
		return nil, NewTaskServiceError("get_task_by_case_number", "failed to retrieve task", err)
	}
	return task, nil
}

// GetAllTasks implements TaskService.GetAllTasks.
func (s *taskService) GetAllTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, NewTaskServiceError("get_all_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetAllTasksOrderedByDueDate implements TaskService.GetAllTasksOrderedByDueDate.
func (s *taskService) GetAllTasksOrderedByDueDate(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.repo.FindAllByDueDateDesc(ctx)
	if err != nil {
		return nil, NewTaskServiceError("get_all_tasks_ordered", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTasksPaginated implements TaskService.GetTasksPaginated.
func (s *taskService) GetTasksPaginated(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Task, error) {
	tasks, err := s.repo.FindAllPaginated(ctx, offset, limit)
	if err != nil {
		return nil, NewTaskServiceError("get_tasks_paginated", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTasksByStatus implements TaskService.GetTasksByStatus.
func (s *taskService) GetTasksByStatus(
	ctx context.Context,
	status string,
) ([]*domain.Task, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.FindByStatus(ctx, string(parsed))
	if err != nil {
		return nil, NewTaskServiceError("get_tasks_by_status", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetOverdueTasks implements TaskService.GetOverdueTasks.
func (s *taskService) GetOverdueTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.repo.FindOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, NewTaskServiceError("get_overdue_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTasksDueBefore implements TaskService.GetTasksDueBefore.
func (s *taskService) GetTasksDueBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*domain.Task, error) {
	tasks, err := s.repo.FindDueBefore(ctx, cutoff)
	if err != nil {
		return nil, NewTaskServiceError("get_tasks_due_before", "failed to list tasks", err)
	}
	return tasks, nil
}

// GetTasksCreatedBetween implements TaskService.GetTasksCreatedBetween.
func (s *taskService) GetTasksCreatedBetween(
	ctx context.Context,
	start, end time.Time,
) ([]*domain.Task, error) {
	tasks, err := s.repo.FindCreatedBetween(ctx, start, end)
	if err != nil {
		return nil, NewTaskServiceError("get_tasks_created_between", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus.
// The read-modify-write runs in a transaction so concurrent status updates
// serialize instead of clobbering each other.
func (s *taskService) UpdateTaskStatus(
	ctx context.Context,
	id int64,
	status string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.inTransaction(ctx, func(repo TaskRepository) error {
		task, err := repo.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewTaskNotFoundByID(id)
			}
			return NewTaskServiceError("update_task_status", "failed to retrieve task", err)
		}

		parsed, err := domain.ParseStatus(status)
		if err != nil {
			return err
		}

		if err := task.UpdateStatus(parsed); err != nil {
			return err
		}

		if err := repo.Update(ctx, task); err != nil {
			if store.IsNotFoundError(err) {
				return NewTaskNotFoundByID(id)
			}
			return NewTaskServiceError("update_task_status", "failed to save task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task status updated",
		"task_id", updated.ID,
		"status", updated.Status)
	return updated, nil
}

// UpdateTask implements TaskService.UpdateTask.
// Only provided fields change; the update timestamp bumps regardless. Unlike
// create, a provided due date in the past is accepted here.
func (s *taskService) UpdateTask(
	ctx context.Context,
	id int64,
	params UpdateTaskParams,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := s.inTransaction(ctx, func(repo TaskRepository) error {
		task, err := repo.GetByID(ctx, id)
		if err != nil {
			if store.IsNotFoundError(err) {
				return NewTaskNotFoundByID(id)
			}
			return NewTaskServiceError("update_task", "failed to retrieve task", err)
		}

		if params.Title != nil && strings.TrimSpace(*params.Title) != "" {
			title, err := normalizeTitle(*params.Title)
			if err != nil {
				return err
			}
			task.Title = title
		}

		if params.Description != nil {
			trimmed, err := normalizeDescription(*params.Description)
			if err != nil {
				return err
			}
			task.Description = &trimmed
		}

		if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
			parsed, err := domain.ParseStatus(*params.Status)
			if err != nil {
				return err
			}
			task.Status = parsed
		}

		if params.DueDate != nil {
			task.DueDate = params.DueDate.UTC()
		}

		task.UpdatedDate = time.Now().UTC()

		if err := repo.Update(ctx, task); err != nil {
			if store.IsNotFoundError(err) {
				return NewTaskNotFoundByID(id)
			}
			return NewTaskServiceError("update_task", "failed to save task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("task updated", "task_id", updated.ID)
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return NewTaskServiceError("delete_task", "failed to check task existence", err)
	}
	if !exists {
		return NewTaskNotFoundByID(id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewTaskNotFoundByID(id)
		}
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted", "task_id", id)
	return nil
}

// SearchTasks implements TaskService.SearchTasks.
func (s *taskService) SearchTasks(
	ctx context.Context,
	term, status string,
	offset, limit int,
) ([]*domain.Task, error) {
	filter := store.TaskFilter{
		Search: strings.TrimSpace(term),
		Status: strings.TrimSpace(status),
	}

	tasks, err := s.repo.FindFiltered(ctx, filter, offset, limit)
	if err != nil {
		return nil, NewTaskServiceError("search_tasks", "failed to search tasks", err)
	}
	return tasks, nil
}

// SearchTasksByTerm implements TaskService.SearchTasksByTerm.
func (s *taskService) SearchTasksByTerm(
	ctx context.Context,
	term string,
) ([]*domain.Task, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return s.GetAllTasksOrderedByDueDate(ctx)
	}

	tasks, err := s.repo.Search(ctx, trimmed)
	if err != nil {
		return nil, NewTaskServiceError("search_tasks_by_term", "failed to search tasks", err)
	}
	return tasks, nil
}

// CountTasks implements TaskService.CountTasks.
func (s *taskService) CountTasks(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, NewTaskServiceError("count_tasks", "failed to count tasks", err)
	}
	return count, nil
}

// CountFilteredTasks implements TaskService.CountFilteredTasks.
func (s *taskService) CountFilteredTasks(
	ctx context.Context,
	term, status string,
) (int64, error) {
	filter := store.TaskFilter{
		Search: strings.TrimSpace(term),
		Status: strings.TrimSpace(status),
	}
	if filter.Search == "" && filter.Status == "" {
		return s.CountTasks(ctx)
	}

	count, err := s.repo.CountFiltered(ctx, filter)
	if err != nil {
		return 0, NewTaskServiceError("count_filtered_tasks", "failed to count tasks", err)
	}
	return count, nil
}

// GetTaskStatistics implements TaskService.GetTaskStatistics.
func (s *taskService) GetTaskStatistics(ctx context.Context) (map[string]int64, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, NewTaskServiceError("get_task_statistics", "failed to count tasks", err)
	}

	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, NewTaskServiceError("get_task_statistics", "failed to count by status", err)
	}

	overdue, err := s.repo.FindOverdue(ctx, time.Now().UTC())
	if err != nil {
		return nil, NewTaskServiceError("get_task_statistics", "failed to find overdue tasks", err)
	}

	stats := make(map[string]int64, len(byStatus)+2)
	stats["total"] = total
	for status, count := range byStatus {
		stats[strings.ToLower(status)] = count
	}
	stats["overdue"] = int64(len(overdue))

	return stats, nil
}

// GetValidStatuses implements TaskService.GetValidStatuses.
func (s *taskService) GetValidStatuses() []string {
	return domain.StatusNames()
}
