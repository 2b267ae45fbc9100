package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tribeoftech/atlas-files-manager/internal/apperror"
	"github.com/Tribeoftech/atlas-files-manager/internal/domain"
	"github.com/Tribeoftech/atlas-files-manager/internal/platform/crypto"
	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AuthService defines the interface for signup, sign-in and session
// management.
type AuthService interface {
	// Signup registers a new account and returns its public projection.
	Signup(ctx context.Context, email, password string) (domain.PublicUser, error)

	// Login verifies credentials and mints a session token valid for the
	// configured time-to-live.
	Login(ctx context.Context, email, password string) (string, error)

	// Logout revokes a session token.
	Logout(ctx context.Context, token string) error

	// Me returns the public projection of the user a session resolves to.
	Me(ctx context.Context, userID bson.ObjectID) (domain.PublicUser, error)
}

// authService is the concrete implementation of the AuthService interface.
type authService struct {
	users      store.UserStore
	sessions   store.SessionStore
	tokens     crypto.TokenGenerator
	passwords  crypto.PasswordManager
	sessionTTL time.Duration
}

// NewAuthService creates a new instance of the auth service.
func NewAuthService(
	users store.UserStore,
	sessions store.SessionStore,
	tokens crypto.TokenGenerator,
	passwords crypto.PasswordManager,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		passwords:  passwords,
		sessionTTL: sessionTTL,
	}
}

// Signup handles the business logic for registering a new user.
func (s *authService) Signup(ctx context.Context, email, password string) (domain.PublicUser, error) {
	if email == "" {
		return domain.PublicUser{}, apperror.MissingField("email")
	}
	if password == "" {
		return domain.PublicUser{}, apperror.MissingField("password")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return domain.PublicUser{}, apperror.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return domain.PublicUser{}, apperror.Validation("email", "Already exist")
		}
		return domain.PublicUser{}, apperror.Internal(err)
	}

	return user.ToPublic(), nil
}

// Login verifies the credentials against the stored hash and, on success,
// mints a fresh opaque token and records the session. A missing user and a
// wrong password produce the same failure.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.Unauthenticated()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apperror.Unauthenticated()
		}
		return "", apperror.Internal(err)
	}

	if err := s.passwords.Compare(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthenticated()
	}

	token := s.tokens.New()
	if err := s.sessions.Create(ctx, token, user.ID, s.sessionTTL); err != nil {
		return "", apperror.Internal(err)
	}

	return token, nil
}

// Logout revokes the session. Revoking a token that was never issued, or
// that has already expired, reports Unauthenticated.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Unauthenticated()
		}
		return apperror.Internal(err)
	}
	return nil
}

// Me returns the public projection of the resolved user.
func (s *authService) Me(ctx context.Context, userID bson.ObjectID) (domain.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, apperror.Unauthenticated()
		}
		return domain.PublicUser{}, apperror.Internal(err)
	}
	return user.ToPublic(), nil
}
