package auth

import "errors"

// Token and password errors.
var (
	// ErrInvalidToken indicates the token is malformed, carries a bad
	// signature, or lacks the expected claims.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token's nbf or iat lies in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrPasswordMismatch indicates a password does not match its hash.
	ErrPasswordMismatch = errors.New("password does not match")
)
