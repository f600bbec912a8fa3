package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation errors for users.
var (
	ErrEmptyUserID         = NewValidationError("id", "user ID cannot be empty")
	ErrEmptyUsername       = NewValidationError("username", "username cannot be empty")
	ErrUsernameTooLong     = NewValidationError("username", "username must be at most 50 characters long")
	ErrEmptyHashedPassword = NewValidationError("password", "hashed password cannot be empty")
	ErrPasswordTooLong     = NewValidationError("password", "password must be at most 72 bytes long")
)

const (
	// MaxUsernameLength mirrors the width of the users.username column, in
	// characters.
	MaxUsernameLength = 50

	// MaxPasswordBytes is bcrypt's input limit. It counts bytes, so a
	// password of multibyte characters reaches it sooner.
	MaxPasswordBytes = 72
)

// User represents a registered account. Users are immutable after
// registration.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a User with a fresh ID. The password must already be
// hashed; plaintext passwords never reach the domain layer.
func NewUser(username, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: hashedPassword,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if utf8.RuneCountInString(u.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}
