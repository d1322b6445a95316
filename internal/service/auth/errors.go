package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, signed with another key
	// or algorithm, issued by someone else, or otherwise unusable.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired. It wraps ErrInvalidToken,
	// so callers that only care about validity can check for that.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrPasswordMismatch indicates a password does not match the stored hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrPasswordTooLong indicates the plaintext exceeds what bcrypt can hash.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
