package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/mocks"
	"github.com/phrazzld/taskflow-api/internal/service"
	"github.com/phrazzld/taskflow-api/internal/service/auth"
	"github.com/phrazzld/taskflow-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (service.UserService, *mocks.MockUserStore, *mocks.MockPasswordHasher) {
	t.Helper()
	users := &mocks.MockUserStore{}
	hasher := &mocks.MockPasswordHasher{}
	svc, err := service.NewUserService(users, hasher, nil)
	require.NoError(t, err)
	return svc, users, hasher
}

func TestNewUserService_NilDependencies(t *testing.T) {
	_, err := service.NewUserService(nil, &mocks.MockPasswordHasher{}, nil)
	assert.Error(t, err)

	_, err = service.NewUserService(&mocks.MockUserStore{}, nil, nil)
	assert.Error(t, err)
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes password and saves user", func(t *testing.T) {
		svc, users, hasher := newUserService(t)
		users.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		hasher.On("Hash", "secret1").Return("hashed-secret", nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "alice" && u.HashedPassword == "hashed-secret"
		})).Return(nil)

		user, err := svc.CreateUser(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "secret1", user.HashedPassword)
		users.AssertExpectations(t)
		hasher.AssertExpectations(t)
	})

	t.Run("existing username", func(t *testing.T) {
		svc, users, hasher := newUserService(t)
		users.On("ExistsByUsername", ctx, "alice").Return(true, nil)

		_, err := svc.CreateUser(ctx, "alice", "secret1")
		assert.ErrorIs(t, err, service.ErrUsernameTaken)
		assert.EqualError(t, err, "Username 'alice' already exists")
		hasher.AssertNotCalled(t, "Hash", mock.Anything)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("insert races with another registration", func(t *testing.T) {
		svc, users, hasher := newUserService(t)
		users.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		hasher.On("Hash", "secret1").Return("hashed-secret", nil)
		users.On("Create", ctx, mock.Anything).Return(store.ErrUsernameExists)

		_, err := svc.CreateUser(ctx, "alice", "secret1")
		assert.ErrorIs(t, err, service.ErrUsernameTaken)
	})

	t.Run("password over the hash limit is a validation error", func(t *testing.T) {
		svc, users, hasher := newUserService(t)
		users.On("ExistsByUsername", ctx, "alice").Return(false, nil)
		hasher.On("Hash", "too-long").Return("", domain.ErrPasswordTooLong)

		_, err := svc.CreateUser(ctx, "alice", "too-long")
		assert.Equal(t, domain.ErrPasswordTooLong, err)
		var serviceErr *service.ServiceError
		assert.False(t, errors.As(err, &serviceErr))
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		svc, users, _ := newUserService(t)
		dbErr := errors.New("connection reset")
		users.On("ExistsByUsername", ctx, "alice").Return(false, dbErr)

		_, err := svc.CreateUser(ctx, "alice", "secret1")
		var serviceErr *service.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "create", serviceErr.Operation)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestUserService_GetUserByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, users, _ := newUserService(t)
		want := &domain.User{Username: "alice"}
		users.On("GetByUsername", ctx, "alice").Return(want, nil)

		got, err := svc.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("missing", func(t *testing.T) {
		svc, users, _ := newUserService(t)
		users.On("GetByUsername", ctx, "ghost").Return(nil, store.ErrUserNotFound)

		_, err := svc.GetUserByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
		assert.EqualError(t, err, "User with username 'ghost' not found")
	})
}

func TestUserService_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{Username: "alice", HashedPassword: "hashed"}

	t.Run("match", func(t *testing.T) {
		svc, _, hasher := newUserService(t)
		hasher.On("Compare", "hashed", "secret1").Return(nil)
		assert.NoError(t, svc.VerifyPassword(ctx, user, "secret1"))
	})

	t.Run("mismatch", func(t *testing.T) {
		svc, _, hasher := newUserService(t)
		hasher.On("Compare", "hashed", "wrong").Return(auth.ErrPasswordMismatch)
		assert.ErrorIs(t, svc.VerifyPassword(ctx, user, "wrong"), service.ErrInvalidCredentials)
	})

	t.Run("hasher failure", func(t *testing.T) {
		svc, _, hasher := newUserService(t)
		hasher.On("Compare", "hashed", "x").Return(errors.New("malformed hash"))

		err := svc.VerifyPassword(ctx, user, "x")
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
		var serviceErr *service.ServiceError
		assert.ErrorAs(t, err, &serviceErr)
	})
}
