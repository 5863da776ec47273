package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"propertywala/internal/auth"
	"propertywala/internal/cache"
	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

// SessionService owns the login and request-verification path: it mints
// identity tokens and resolves them back to users through the session cache.
type SessionService interface {
	// Login checks credentials and returns the user plus a fresh token.
	// The email-exists check runs before the password comparison.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Authenticate resolves a request token to a user: verify signature and
	// expiry, consult the cache, fall back to the store and repopulate the
	// cache on a miss.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// TokenTTL is the lifetime of issued tokens (and the session cookie).
	TokenTTL() time.Duration
}

type sessionService struct {
	users    repository.UserRepository
	issuer   *auth.Issuer
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewSessionService(users repository.UserRepository, issuer *auth.Issuer, sessions cache.Cache, cacheTTL time.Duration) SessionService {
	return &sessionService{
		users:    users,
		issuer:   issuer,
		cache:    sessions,
		cacheTTL: cacheTTL,
	}
}

func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrEmailNotRegistered
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *sessionService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	userID, err := s.issuer.Verify(token)
	if err != nil {
		return nil, err
	}

	if snapshot, ok := s.cache.Get(userID); ok {
		var user domain.User
		if err := json.Unmarshal(snapshot, &user); err == nil {
			return &user, nil
		}
		// undecodable entry: fall through to the store and overwrite it
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if snapshot, err := json.Marshal(user); err == nil {
		s.cache.Set(user.ID, snapshot, s.cacheTTL)
	}
	return user, nil
}

func (s *sessionService) TokenTTL() time.Duration {
	return s.issuer.TTL()
}
