package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// timingPassword is hashed once at construction. Logins for unknown emails
// compare against it so they cost the same as a wrong password.
const timingPassword = "timing-equalization-password"

// AccountSummary is the public view of an account.
type AccountSummary struct {
	ID    int64
	Name  string
	Email string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token   string
	Account AccountSummary
}

// AuthService registers accounts and authenticates them.
type AuthService interface {
	// Register creates an account and returns a token bound to its email.
	// Returns ErrDuplicateEmail if the email is taken, or a validation error.
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)

	// Login verifies credentials and returns a fresh token.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	users      store.UserStore
	hasher     auth.PasswordHasher
	tokens     auth.JWTService
	logger     *slog.Logger
	timingHash string
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil || hasher == nil || tokens == nil {
		return nil, errors.New("auth service requires a user store, password hasher and token service")
	}
	if logger == nil {
		logger = slog.Default()
	}

	timingHash, err := hasher.Hash(timingPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare timing hash: %w", err)
	}

	return &authService{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger.With(slog.String("component", "auth_service")),
		timingHash: timingHash,
	}, nil
}

// Register implements AuthService.
func (s *authService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		log.Debug("registration rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}

	exists, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, NewAuthServiceError("register", "failed to check email", err)
	}
	if exists {
		log.Debug("registration rejected: email already exists")
		return nil, ErrDuplicateEmail
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, NewAuthServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can pass the check above; the unique
		// constraint catches it here.
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("registration lost race on unique email")
			return nil, fmt.Errorf("%w: %w", ErrDuplicateEmail, err)
		}
		return nil, NewAuthServiceError("register", "failed to save account", err)
	}

	token, err := s.tokens.GenerateToken(ctx, user.Email)
	if err != nil {
		return nil, NewAuthServiceError("register", "failed to issue token", err)
	}

	log.Info("account registered", slog.Int64("user_id", user.ID))
	return &AuthResult{Token: token, Account: summarize(user)}, nil
}

// Login implements AuthService.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = s.hasher.Compare(s.timingHash, password)
			log.Debug("login failed: unknown account")
			return nil, ErrInvalidCredentials
		}
		return nil, NewAuthServiceError("login", "failed to load account", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			log.Error("stored password hash could not be compared",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
		} else {
			log.Debug("login failed: wrong password", slog.Int64("user_id", user.ID))
		}
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user.Email)
	if err != nil {
		return nil, NewAuthServiceError("login", "failed to issue token", err)
	}

	log.Info("account logged in", slog.Int64("user_id", user.ID))
	return &AuthResult{Token: token, Account: summarize(user)}, nil
}

func summarize(user *domain.User) AccountSummary {
	return AccountSummary{ID: user.ID, Name: user.Name, Email: user.Email}
}
