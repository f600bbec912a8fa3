// Package storetest holds a behavioural test suite that every store backend
// must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, empty pair of stores whose timestamps come from now.
type Factory func(t *testing.T, now func() time.Time) (store.UserStore, store.TaskStore)

// StepClock returns a fixed start time and advances by one second per call.
type StepClock struct {
	next time.Time
}

// NewStepClock creates a StepClock starting at start.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{next: start}
}

// Now returns the current tick and advances the clock.
func (c *StepClock) Now() time.Time {
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}

var epoch = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func strPtr(s string) *string { return &s }

func mustUser(t *testing.T, ctx context.Context, users store.UserStore, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "$2a$04$placeholderhashplaceholderhashplaceholderhash12")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, user))
	return user
}

func mustTask(
	t *testing.T,
	ctx context.Context,
	tasks store.TaskStore,
	owner uuid.UUID,
	title string,
	status domain.TaskStatus,
) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, title, strPtr(title+" description"), status)
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, task))
	return task
}

// Run exercises the store contract against stores produced by newStores.
func Run(t *testing.T, newStores Factory) {
	t.Run("UserStore", func(t *testing.T) { runUserStore(t, newStores) })
	t.Run("TaskStore", func(t *testing.T) { runTaskStore(t, newStores) })
}

func runUserStore(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("create and get by username", func(t *testing.T) {
		users, _ := newStores(t, NewStepClock(epoch).Now)

		user := mustUser(t, ctx, users, "alice")
		assert.Equal(t, epoch, user.CreatedAt)
		assert.Equal(t, epoch, user.UpdatedAt)

		exists, err := users.ExistsByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
		assert.Equal(t, user.HashedPassword, got.HashedPassword)
		assert.True(t, user.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("unknown username", func(t *testing.T) {
		users, _ := newStores(t, time.Now)

		exists, err := users.ExistsByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users, _ := newStores(t, time.Now)
		mustUser(t, ctx, users, "alice")

		dup, err := domain.NewUser("alice", "other-hash")
		require.NoError(t, err)
		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("invalid user", func(t *testing.T) {
		users, _ := newStores(t, time.Now)
		err := users.Create(ctx, &domain.User{ID: uuid.New(), Username: "bob"})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func runTaskStore(t *testing.T, newStores Factory) {
	ctx := context.Background()

	t.Run("create and get scoped to owner", func(t *testing.T) {
		users, tasks := newStores(t, NewStepClock(epoch).Now)
		owner := mustUser(t, ctx, users, "owner")
		other := mustUser(t, ctx, users, "other")

		task := mustTask(t, ctx, tasks, owner.ID, "Test Task", domain.TaskStatusTodo)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)

		got, err := tasks.GetByIDAndUser(ctx, task.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, owner.ID, got.UserID)
		assert.Equal(t, "Test Task", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Test Task description", *got.Description)
		assert.Equal(t, domain.TaskStatusTodo, got.Status)
		assert.True(t, task.CreatedAt.Equal(got.CreatedAt))

		_, err = tasks.GetByIDAndUser(ctx, task.ID, other.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = tasks.GetByIDAndUser(ctx, uuid.New(), owner.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("null description round trips", func(t *testing.T) {
		users, tasks := newStores(t, time.Now)
		owner := mustUser(t, ctx, users, "owner")

		task, err := domain.NewTask(owner.ID, "No description", nil, "")
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))

		got, err := tasks.GetByIDAndUser(ctx, task.ID, owner.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("list newest first and only own tasks", func(t *testing.T) {
		users, tasks := newStores(t, NewStepClock(epoch).Now)
		owner := mustUser(t, ctx, users, "owner")
		other := mustUser(t, ctx, users, "other")

		empty, err := tasks.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		first := mustTask(t, ctx, tasks, owner.ID, "first", domain.TaskStatusTodo)
		second := mustTask(t, ctx, tasks, owner.ID, "second", domain.TaskStatusTodo)
		mustTask(t, ctx, tasks, other.ID, "foreign", domain.TaskStatusTodo)
		third := mustTask(t, ctx, tasks, owner.ID, "third", domain.TaskStatusTodo)

		list, err := tasks.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, third.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)
		assert.Equal(t, first.ID, list[2].ID)
	})

	t.Run("update scoped to owner", func(t *testing.T) {
		users, tasks := newStores(t, NewStepClock(epoch).Now)
		owner := mustUser(t, ctx, users, "owner")
		other := mustUser(t, ctx, users, "other")
		task := mustTask(t, ctx, tasks, owner.ID, "original", domain.TaskStatusTodo)
		created := task.CreatedAt

		hijack := *task
		hijack.UserID = other.ID
		hijack.Title = "hijacked"
		assert.ErrorIs(t, tasks.Update(ctx, &hijack), store.ErrTaskNotFound)

		require.NoError(t, task.Update("renamed", nil, nil))
		require.NoError(t, task.UpdateStatus(domain.TaskStatusCompleted))
		require.NoError(t, tasks.Update(ctx, task))
		assert.True(t, task.UpdatedAt.After(created))

		got, err := tasks.GetByIDAndUser(ctx, task.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
		assert.Nil(t, got.Description)
		assert.Equal(t, domain.TaskStatusCompleted, got.Status)
		assert.True(t, created.Equal(got.CreatedAt))
		assert.True(t, task.UpdatedAt.Equal(got.UpdatedAt))

		missing := *task
		missing.ID = uuid.New()
		assert.ErrorIs(t, tasks.Update(ctx, &missing), store.ErrTaskNotFound)
	})

	t.Run("delete scoped to owner", func(t *testing.T) {
		users, tasks := newStores(t, time.Now)
		owner := mustUser(t, ctx, users, "owner")
		other := mustUser(t, ctx, users, "other")
		task := mustTask(t, ctx, tasks, owner.ID, "doomed", domain.TaskStatusTodo)

		assert.ErrorIs(t, tasks.Delete(ctx, task.ID, other.ID), store.ErrTaskNotFound)

		require.NoError(t, tasks.Delete(ctx, task.ID, owner.ID))

		_, err := tasks.GetByIDAndUser(ctx, task.ID, owner.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		assert.ErrorIs(t, tasks.Delete(ctx, task.ID, owner.ID), store.ErrTaskNotFound)
	})

	t.Run("counts", func(t *testing.T) {
		users, tasks := newStores(t, time.Now)
		owner := mustUser(t, ctx, users, "owner")
		other := mustUser(t, ctx, users, "other")

		distribution := map[domain.TaskStatus]int{
			domain.TaskStatusTodo:       3,
			domain.TaskStatusInProgress: 2,
			domain.TaskStatusCompleted:  1,
		}
		for status, n := range distribution {
			for i := 0; i < n; i++ {
				mustTask(t, ctx, tasks, owner.ID, "task", status)
			}
		}
		mustTask(t, ctx, tasks, other.ID, "foreign", domain.TaskStatusTodo)

		for status, n := range distribution {
			count, err := tasks.CountByUserAndStatus(ctx, owner.ID, status)
			require.NoError(t, err)
			assert.Equal(t, int64(n), count, string(status))
		}

		total, err := tasks.CountByUser(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)

		none, err := tasks.CountByUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Zero(t, none)
	})

	t.Run("invalid task", func(t *testing.T) {
		users, tasks := newStores(t, time.Now)
		owner := mustUser(t, ctx, users, "owner")

		err := tasks.Create(ctx, &domain.Task{ID: uuid.New(), UserID: owner.ID, Status: domain.TaskStatusTodo})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("unknown owner", func(t *testing.T) {
		_, tasks := newStores(t, time.Now)

		task, err := domain.NewTask(uuid.New(), "orphan", nil, "")
		require.NoError(t, err)
		assert.ErrorIs(t, tasks.Create(ctx, task), store.ErrInvalidEntity)
	})
}
