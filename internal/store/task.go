package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Every method that touches an existing task takes both the task ID and the
// owner's user ID and applies them together in a single statement. A task
// owned by another user is indistinguishable from a missing one.
type TaskStore interface {
	// ListByUser returns all tasks owned by userID, newest first.
	// Returns an empty, non-nil slice when the user has no tasks.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetByIDAndUser retrieves a task by ID scoped to its owner.
	// Returns ErrTaskNotFound if no such task exists for that user.
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// CountByUserAndStatus counts the user's tasks in the given status.
	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) (int64, error)

	// CountByUser counts all of the user's tasks.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Create saves a new task. CreatedAt and UpdatedAt are assigned by the
	// store and written back to task.
	Create(ctx context.Context, task *domain.Task) error

	// Update writes title, description and status of an existing task and
	// refreshes UpdatedAt. Returns ErrTaskNotFound if the task does not
	// exist for task.UserID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task scoped to its owner.
	// Returns ErrTaskNotFound if no such task exists for that user.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
