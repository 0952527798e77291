package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/careeros/backend/pkg/logger"
	"github.com/careeros/backend/pkg/sanitizer"
	"github.com/careeros/backend/pkg/validator"
)

// Service implements signup, login and principal resolution on top of
// Storage and TokenService.
type Service struct {
	storage    Storage
	tokens     *TokenService
	denylist   Denylist
	bcryptCost int
	logger     *slog.Logger

	// Hooks for extending authentication behavior
	afterSignup func(ctx context.Context, user User) error
}

type Option func(*Service)

// WithLogger sets a custom logger for the service
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithDenylist enables token revocation backed by the given denylist
func WithDenylist(d Denylist) Option {
	return func(s *Service) {
		s.denylist = d
	}
}

// WithAfterSignup sets a hook that runs after successful signup
func WithAfterSignup(fn func(context.Context, User) error) Option {
	return func(s *Service) {
		s.afterSignup = fn
	}
}

// NewService creates a new authentication service
func NewService(storage Storage, tokens *TokenService, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		tokens:     tokens,
		bcryptCost: 10,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AuthResult pairs the signed session token with the account it belongs to.
type AuthResult struct {
	Token string
	User  User
}

// Signup registers a new account and returns a fresh session token.
// The pre-insert email lookup gives a friendly error in the common case;
// the unique index catches the concurrent-signup race and CreateUser maps
// it to the same ErrEmailAlreadyExists.
func (s *Service) Signup(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = sanitizer.NormalizeEmail(email)
	name = sanitizer.TrimName(name)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.RequiredString("password", password),
		validator.MinLenString("password", password, 8),
		validator.MaxLenString("password", password, 72),
		validator.MaxLenString("name", name, 100),
	); err != nil {
		return AuthResult{}, err
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return AuthResult{}, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now()
	user := User{
		ID:           GenerateUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, err
	}

	// Execute after signup hook if set
	if s.afterSignup != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("afterSignup hook panicked",
						logger.UserID(user.ID),
						slog.Any("panic", r),
						logger.Component("auth"),
					)
				}
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := s.afterSignup(ctx, user); err != nil {
				s.logger.Error("afterSignup hook failed",
					logger.UserID(user.ID),
					logger.Error(err),
					logger.Component("auth"),
				)
			}
		}()
	}

	return AuthResult{Token: token, User: user}, nil
}

// Login verifies email and password and returns a fresh session token.
// Every failure collapses to ErrInvalidCredentials so responses cannot be
// used to enumerate registered emails.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	if user.PasswordHash == nil || !VerifyPassword(password, *user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, User: user}, nil
}

// GetUser resolves the full account record for an authenticated subject.
func (s *Service) GetUser(ctx context.Context, userID string) (User, error) {
	return s.storage.GetUserByID(ctx, userID)
}

// Logout revokes the given token for its remaining lifetime. Without a
// configured denylist logout is a client-side operation and this is a
// no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.denylist == nil {
		return nil
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		// Already invalid, nothing to revoke.
		return nil
	}

	return s.denylist.Revoke(ctx, token, RemainingLifetime(claims))
}
