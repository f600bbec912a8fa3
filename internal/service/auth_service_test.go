package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/mocks"
	"github.com/phrazzld/taskflow-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Username: "alice"}

	t.Run("issues token for new user", func(t *testing.T) {
		users := &mocks.MockUserService{}
		users.On("CreateUser", ctx, "alice", "secret1").Return(user, nil)
		var gotID uuid.UUID
		jwtService := &mocks.MockJWTService{
			GenerateTokenFn: func(_ context.Context, userID uuid.UUID, username string) (string, error) {
				gotID = userID
				return "token-" + username, nil
			},
		}

		svc, err := service.NewAuthService(users, jwtService, nil)
		require.NoError(t, err)

		res, err := svc.Register(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "token-alice", res.Token)
		assert.Equal(t, "alice", res.Username)
		assert.Equal(t, user.ID, res.UserID)
		assert.Equal(t, user.ID, gotID)
	})

	t.Run("username taken", func(t *testing.T) {
		users := &mocks.MockUserService{}
		users.On("CreateUser", ctx, "alice", "secret1").Return(nil, service.ErrUsernameTaken)
		jwtService := &mocks.MockJWTService{
			GenerateTokenFn: func(context.Context, uuid.UUID, string) (string, error) {
				t.Fatal("token must not be issued")
				return "", nil
			},
		}

		svc, err := service.NewAuthService(users, jwtService, nil)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "secret1")
		assert.ErrorIs(t, err, service.ErrUsernameTaken)
	})

	t.Run("token failure", func(t *testing.T) {
		users := &mocks.MockUserService{}
		users.On("CreateUser", ctx, "alice", "secret1").Return(user, nil)
		jwtService := &mocks.MockJWTService{Err: errors.New("signing failed")}

		svc, err := service.NewAuthService(users, jwtService, nil)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "secret1")
		var serviceErr *service.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "register", serviceErr.Operation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Username: "alice", HashedPassword: "hashed"}

	tests := []struct {
		name      string
		setup     func(users *mocks.MockUserService)
		wantErr   error
		wantToken string
	}{
		{
			name: "valid credentials",
			setup: func(users *mocks.MockUserService) {
				users.On("GetUserByUsername", ctx, "alice").Return(user, nil)
				users.On("VerifyPassword", ctx, user, "secret1").Return(nil)
			},
			wantToken: "issued",
		},
		{
			name: "unknown user",
			setup: func(users *mocks.MockUserService) {
				users.On("GetUserByUsername", ctx, "alice").Return(nil, service.ErrUserNotFound)
			},
			wantErr: service.ErrUserNotFound,
		},
		{
			name: "wrong password",
			setup: func(users *mocks.MockUserService) {
				users.On("GetUserByUsername", ctx, "alice").Return(user, nil)
				users.On("VerifyPassword", ctx, user, "secret1").Return(service.ErrInvalidCredentials)
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mocks.MockUserService{}
			tc.setup(users)

			svc, err := service.NewAuthService(users, &mocks.MockJWTService{Token: "issued"}, nil)
			require.NoError(t, err)

			res, err := svc.Login(ctx, "alice", "secret1")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantToken, res.Token)
			assert.Equal(t, "alice", res.Username)
			users.AssertExpectations(t)
		})
	}
}
