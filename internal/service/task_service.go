package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/phrazzld/taskflow-api/internal/store"
)

// TaskInput carries the writable fields of a task. A nil Status means the
// caller did not supply one.
type TaskInput struct {
	Title       string
	Description *string
	Status      *domain.TaskStatus
}

// TaskService manages a user's tasks. Every operation is scoped to userID;
// a task belonging to anyone else behaves exactly like a missing one.
type TaskService interface {
	// ListTasks returns the user's tasks, newest first.
	ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetTask returns ErrTaskNotFound if the user has no such task.
	GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// CreateTask creates a task owned by userID. Status defaults to TODO.
	CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error)

	// UpdateTask overwrites title and description, and status only when
	// input.Status is set.
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, input TaskInput) (*domain.Task, error)

	// UpdateTaskStatus changes only the status.
	UpdateTaskStatus(ctx context.Context, userID, taskID uuid.UUID, status domain.TaskStatus) (*domain.Task, error)

	// DeleteTask permanently removes the task.
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error

	// GetStats counts the user's tasks per status and in total.
	GetStats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error)
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}, nil
}

func storeError(operation, message string, taskID uuid.UUID, err error) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return taskNotFound(taskID)
	}
	return NewServiceError("task", operation, message, err)
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list", "failed to list tasks", uuid.Nil, err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask implements TaskService.
func (s *taskServiceImpl) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByIDAndUser(ctx, taskID, userID)
	if err != nil {
		return nil, storeError("get", "failed to retrieve task", taskID, err)
	}
	return task, nil
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*domain.Task, error) {
	status := domain.TaskStatusTodo
	if input.Status != nil {
		status = *input.Status
	}

	task, err := domain.NewTask(userID, input.Title, input.Description, status)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, storeError("create", "failed to save task", task.ID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task created",
		"task_id", task.ID,
		"user_id", userID,
		"status", task.Status)
	return task, nil
}

// UpdateTask implements TaskService.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input TaskInput,
) (*domain.Task, error) {
	task, err := s.tasks.GetByIDAndUser(ctx, taskID, userID)
	if err != nil {
		return nil, storeError("update", "failed to retrieve task", taskID, err)
	}

	if err := task.Update(input.Title, input.Description, input.Status); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, storeError("update", "failed to save task", taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		"task_id", task.ID,
		"user_id", userID)
	return task, nil
}

// UpdateTaskStatus implements TaskService.
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	userID, taskID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidTaskStatus
	}

	task, err := s.tasks.GetByIDAndUser(ctx, taskID, userID)
	if err != nil {
		return nil, storeError("update_status", "failed to retrieve task", taskID, err)
	}

	previous := task.Status
	if err := task.UpdateStatus(status); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, storeError("update_status", "failed to save task", taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task status updated",
		"task_id", task.ID,
		"user_id", userID,
		"from", previous,
		"to", status)
	return task, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, taskID, userID); err != nil {
		return storeError("delete", "failed to delete task", taskID, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted",
		"task_id", taskID,
		"user_id", userID)
	return nil
}

// GetStats implements TaskService.
func (s *taskServiceImpl) GetStats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error) {
	var stats domain.TaskStats

	counts := []struct {
		status domain.TaskStatus
		dest   *int64
	}{
		{domain.TaskStatusTodo, &stats.Todo},
		{domain.TaskStatusInProgress, &stats.InProgress},
		{domain.TaskStatusCompleted, &stats.Completed},
	}
	for _, c := range counts {
		n, err := s.tasks.CountByUserAndStatus(ctx, userID, c.status)
		if err != nil {
			return nil, storeError("stats", "failed to count tasks", uuid.Nil, err)
		}
		*c.dest = n
	}

	total, err := s.tasks.CountByUser(ctx, userID)
	if err != nil {
		return nil, storeError("stats", "failed to count tasks", uuid.Nil, err)
	}
	stats.Total = total

	return &stats, nil
}
