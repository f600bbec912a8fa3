package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/phrazzld/taskflow-api/internal/service/auth"
	"github.com/phrazzld/taskflow-api/internal/store"
)

// UserService manages credentials: it hashes passwords before they are
// persisted and verifies them at login.
type UserService interface {
	// CreateUser registers a new user. Returns ErrUsernameTaken if the
	// username is already in use.
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)

	// GetUserByUsername returns ErrUserNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// VerifyPassword returns ErrInvalidCredentials if password does not
	// match the user's stored hash.
	VerifyPassword(ctx context.Context, user *domain.User, password string) error
}

type userServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		hasher: hasher,
		logger: logger.With("component", "user_service"),
	}, nil
}

// CreateUser implements UserService.
func (s *userServiceImpl) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, NewServiceError("user", "create", "failed to check username", err)
	}
	if exists {
		log.Debug("registration rejected: username taken", "username", username)
		return nil, usernameTaken(username)
	}

	hashed, err := s.hasher.Hash(password)
	if errors.Is(err, domain.ErrValidation) {
		return nil, err
	}
	if err != nil {
		return nil, NewServiceError("user", "create", "failed to hash password", err)
	}

	user, err := domain.NewUser(username, hashed)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can win between the check and the insert.
		if errors.Is(err, store.ErrUsernameExists) {
			return nil, usernameTaken(username)
		}
		return nil, NewServiceError("user", "create", "failed to save user", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// GetUserByUsername implements UserService.
func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, userNotFound(username)
		}
		return nil, NewServiceError("user", "get", "failed to retrieve user", err)
	}
	return user, nil
}

// VerifyPassword implements UserService.
func (s *userServiceImpl) VerifyPassword(ctx context.Context, user *domain.User, password string) error {
	err := s.hasher.Compare(user.HashedPassword, password)
	if err == nil {
		return nil
	}
	if errors.Is(err, auth.ErrPasswordMismatch) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("password mismatch", "user_id", user.ID)
		return ErrInvalidCredentials
	}
	return NewServiceError("user", "verify", "failed to compare password", err)
}
