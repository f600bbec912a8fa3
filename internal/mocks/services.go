package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a testify mock of service.UserService.
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

// CreateUser mocks service.UserService.CreateUser.
func (m *MockUserService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetUserByUsername mocks service.UserService.GetUserByUsername.
func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// VerifyPassword mocks service.UserService.VerifyPassword.
func (m *MockUserService) VerifyPassword(ctx context.Context, user *domain.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

// MockAuthService is a testify mock of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

var _ service.AuthService = (*MockAuthService)(nil)

// Register mocks service.AuthService.Register.
func (m *MockAuthService) Register(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if res, ok := args.Get(0).(*service.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// Login mocks service.AuthService.Login.
func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, username, password)
	if res, ok := args.Get(0).(*service.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTaskService is a testify mock of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*MockTaskService)(nil)

func taskResult(args mock.Arguments) (*domain.Task, error) {
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListTasks mocks service.TaskService.ListTasks.
func (m *MockTaskService) ListTasks(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetTask mocks service.TaskService.GetTask.
func (m *MockTaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return taskResult(m.Called(ctx, userID, taskID))
}

// CreateTask mocks service.TaskService.CreateTask.
func (m *MockTaskService) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	input service.TaskInput,
) (*domain.Task, error) {
	return taskResult(m.Called(ctx, userID, input))
}

// UpdateTask mocks service.TaskService.UpdateTask.
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input service.TaskInput,
) (*domain.Task, error) {
	return taskResult(m.Called(ctx, userID, taskID, input))
}

// UpdateTaskStatus mocks service.TaskService.UpdateTaskStatus.
func (m *MockTaskService) UpdateTaskStatus(
	ctx context.Context,
	userID, taskID uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	return taskResult(m.Called(ctx, userID, taskID, status))
}

// DeleteTask mocks service.TaskService.DeleteTask.
func (m *MockTaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

// GetStats mocks service.TaskService.GetStats.
func (m *MockTaskService) GetStats(ctx context.Context, userID uuid.UUID) (*domain.TaskStats, error) {
	args := m.Called(ctx, userID)
	if stats, ok := args.Get(0).(*domain.TaskStats); ok {
		return stats, args.Error(1)
	}
	return nil, args.Error(1)
}
