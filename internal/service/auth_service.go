package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/phrazzld/taskflow-api/internal/service/auth"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token    string
	Username string
	UserID   uuid.UUID
}

// AuthService implements registration and login on top of UserService and a
// token issuer.
type AuthService interface {
	// Register creates the user and issues a token for it.
	// Returns ErrUsernameTaken if the username exists.
	Register(ctx context.Context, username, password string) (*AuthResult, error)

	// Login issues a fresh token. Previously issued tokens stay valid until
	// they expire. Returns ErrUserNotFound or ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

type authServiceImpl struct {
	users      UserService
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserService, jwtService auth.JWTService, logger *slog.Logger) (AuthService, error) {
	if users == nil {
		return nil, fmt.Errorf("user service cannot be nil")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		users:      users,
		jwtService: jwtService,
		logger:     logger.With("component", "auth_service"),
	}, nil
}

// Register implements AuthService.
func (s *authServiceImpl) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user, "register")
}

// Login implements AuthService.
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.users.VerifyPassword(ctx, user, password); err != nil {
		return nil, err
	}

	return s.issue(ctx, user, "login")
}

func (s *authServiceImpl) issue(ctx context.Context, user *domain.User, operation string) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, NewServiceError("auth", operation, "failed to issue token", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("token issued",
		"user_id", user.ID,
		"operation", operation)

	return &AuthResult{
		Token:    token,
		Username: user.Username,
		UserID:   user.ID,
	}, nil
}
