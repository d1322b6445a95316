package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// Password length limits. The minimum counts characters; the maximum counts
// bytes, since bcrypt ignores everything after 72 bytes and longer inputs are
// rejected instead of being silently truncated.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// Common validation errors
var (
	ErrEmptyUserName       = errors.New("name cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. Email is the login identifier and is
// unique across all accounts.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only present during registration
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new, not yet persisted User. The ID is assigned by the store.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return NewValidationError("name", "must not be blank", ErrEmptyUserName)
	}

	if u.Email == "" {
		return NewValidationError("email", "must not be blank", ErrEmptyEmail)
	}

	if !validEmail(u.Email) {
		return NewValidationError("email", "must be a well-formed email address", ErrInvalidEmail)
	}

	if u.Password != "" {
		switch {
		case utf8.RuneCountInString(u.Password) < MinPasswordLength:
			return NewValidationError("password", ErrPasswordTooShort.Error(), ErrPasswordTooShort)
		case len(u.Password) > MaxPasswordBytes:
			return NewValidationError("password", ErrPasswordTooLong.Error(), ErrPasswordTooLong)
		}
		return nil
	}

	// Stored accounts carry only the digest.
	if u.HashedPassword == "" {
		return NewValidationError("password", "must not be blank", ErrEmptyHashedPassword)
	}

	return nil
}

// validEmail accepts bare addresses only ("a@b.c"), not display-name forms.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}
