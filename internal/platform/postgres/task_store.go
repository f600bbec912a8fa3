package postgres

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

// PostgresTaskStore implements store.TaskStore on PostgreSQL.
// Every statement touching an existing row filters on both id and user_id.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	opts   options
}

// NewPostgresTaskStore creates a PostgresTaskStore. If logger is nil the
// default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger, opts ...Option) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
		opts:   buildOptions(opts),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
	)
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	task.Status = domain.TaskStatus(status)
	return &task, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()), slog.String("user_id", userID.String()))
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

	log.Debug("listed tasks", slog.String("user_id", userID.String()), slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetByIDAndUser implements store.TaskStore.GetByIDAndUser
func (s *PostgresTaskStore) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}
	return task, nil
}

// CountByUserAndStatus implements store.TaskStore.CountByUserAndStatus
func (s *PostgresTaskStore) CountByUserAndStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status = $2`,
		userID, string(status)).Scan(&count)
	if err != nil {
		return 0, store.NewStoreError("task", "count", "failed to count tasks by status", MapError(err))
	}
	return count, nil
}

// CountByUser implements store.TaskStore.CountByUser
func (s *PostgresTaskStore) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, store.NewStoreError("task", "count", "failed to count tasks", MapError(err))
	}
	return count, nil
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := timestamp(s.opts.now)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, task.ID, task.UserID, task.Title, task.Description, string(task.Status), now, now)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("task owner does not exist", slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found", store.ErrInvalidEntity, task.UserID)
		}
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	task.CreatedAt = now
	task.UpdatedAt = now

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	now := timestamp(s.opts.now)
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`, task.Title, task.Description, string(task.Status), now, task.ID, task.UserID)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	task.UpdatedAt = now
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}
