package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and verifies signed session tokens. Tokens are stateless;
// nothing about them is stored server-side.
type JWTService interface {
	// GenerateToken creates a signed token embedding the user's ID and username.
	GenerateToken(ctx context.Context, userID uuid.UUID, username string) (string, error)

	// ValidateToken verifies the token and returns its claims. It returns
	// ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID    uuid.UUID
	Username  string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
