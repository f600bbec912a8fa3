package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/phrazzld/taskflow-api/internal/store"
)

const taskColumns = `id, user_id, title, description, status, created_at, updated_at`

// TaskStore implements store.TaskStore on SQLite.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	opts   options
}

// NewTaskStore creates a TaskStore. If logger is nil the default logger is used.
func NewTaskStore(db store.DBTX, logger *slog.Logger, opts ...Option) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		opts:   buildOptions(opts),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task                 domain.Task
		description          sql.NullString
		status               string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&task.ID, &task.UserID, &task.Title, &description, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	task.Status = domain.TaskStatus(status)
	task.CreatedAt = fromMillis(createdAt)
	task.UpdatedAt = fromMillis(updatedAt)
	return &task, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// ListByUser implements store.TaskStore.ListByUser
func (s *TaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID)
	if err != nil {
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", "list", "failed to scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", "failed to iterate tasks", err)
	}
	return tasks, nil
}

// GetByIDAndUser implements store.TaskStore.GetByIDAndUser
func (s *TaskStore) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}
	return task, nil
}

// CountByUserAndStatus implements store.TaskStore.CountByUserAndStatus
func (s *TaskStore) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status = ?`, userID, string(status)).Scan(&count)
	if err != nil {
		return 0, store.NewStoreError("task", "count", "failed to count tasks by status", MapError(err))
	}
	return count, nil
}

// CountByUser implements store.TaskStore.CountByUser
func (s *TaskStore) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, store.NewStoreError("task", "count", "failed to count tasks", MapError(err))
	}
	return count, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := timestamp(s.opts.now)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.UserID, task.Title, nullableString(task.Description), string(task.Status), toMillis(now), toMillis(now))
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	task.CreatedAt = now
	task.UpdatedAt = now

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := timestamp(s.opts.now)
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, task.Title, nullableString(task.Description), string(task.Status), toMillis(now), task.ID, task.UserID)
	if err != nil {
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	task.UpdatedAt = now
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}
