package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskStore is a testify mock of store.TaskStore.
type MockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// ListByUser mocks store.TaskStore.ListByUser.
func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByIDAndUser mocks store.TaskStore.GetByIDAndUser.
func (m *MockTaskStore) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id, userID)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// CountByUserAndStatus mocks store.TaskStore.CountByUserAndStatus.
func (m *MockTaskStore) CountByUserAndStatus(
	ctx context.Context,
	userID uuid.UUID,
	status domain.TaskStatus,
) (int64, error) {
	args := m.Called(ctx, userID, status)
	return args.Get(0).(int64), args.Error(1)
}

// CountByUser mocks store.TaskStore.CountByUser.
func (m *MockTaskStore) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Create mocks store.TaskStore.Create.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Update mocks store.TaskStore.Update.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete mocks store.TaskStore.Delete.
func (m *MockTaskStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
