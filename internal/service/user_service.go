package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"propertywala/internal/cache"
	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

// UserService handles account lifecycle and wishlist membership.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	// Delete removes the caller's own account after verifying the password.
	Delete(ctx context.Context, userID, password string) error
	// DeleteByAdmin removes any account unconditionally.
	DeleteByAdmin(ctx context.Context, userID string) error
	SetCertified(ctx context.Context, userID string, certified bool) error
	SetAdmin(ctx context.Context, userID string, admin bool) error
	// SetProfileImage records the stored image key and, if a session cache
	// entry exists for the user, overwrites it with the fresh snapshot.
	SetProfileImage(ctx context.Context, userID, imageKey string) error
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// ToggleWishlist flips membership of the property id in the user's
	// wishlist atomically and reports whether it ended up added.
	ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error)
	AddToWishlist(ctx context.Context, userID, propertyID string) error
	RemoveFromWishlist(ctx context.Context, userID, propertyID string) error
	CheckWishlist(ctx context.Context, userID, propertyID string) (bool, error)
}

type userService struct {
	users    repository.UserRepository
	sessions cache.Cache
	cacheTTL time.Duration
}

func NewUserService(users repository.UserRepository, sessions cache.Cache, cacheTTL time.Duration) UserService {
	return &userService{
		users:    users,
		sessions: sessions,
		cacheTTL: cacheTTL,
	}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !passwordMeetsPolicy(password) {
		return nil, ErrWeakPassword
	}

	// uniqueness check precedes any write
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Wishlist:     []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *userService) Delete(ctx context.Context, userID, password string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return s.users.Delete(ctx, userID)
}

func (s *userService) DeleteByAdmin(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) SetCertified(ctx context.Context, userID string, certified bool) error {
	if err := s.users.SetCertified(ctx, userID, certified); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) SetAdmin(ctx context.Context, userID string, admin bool) error {
	if err := s.users.SetAdmin(ctx, userID, admin); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) SetProfileImage(ctx context.Context, userID, imageKey string) error {
	user, err := s.users.SetProfileImage(ctx, userID, imageKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// refresh only an existing cache entry; absent means nobody is reading it
	if _, ok := s.sessions.Get(userID); ok {
		if snapshot, err := json.Marshal(user); err == nil {
			s.sessions.Set(userID, snapshot, s.cacheTTL)
		}
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}

func (s *userService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.getUser(ctx, userID)
}

func (s *userService) ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error) {
	added, err := s.users.ToggleWishlist(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return added, nil
}

func (s *userService) AddToWishlist(ctx context.Context, userID, propertyID string) error {
	if err := s.users.AddWishlist(ctx, userID, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) RemoveFromWishlist(ctx context.Context, userID, propertyID string) error {
	if err := s.users.RemoveWishlist(ctx, userID, propertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotInWishlist
		}
		return err
	}
	return nil
}

func (s *userService) CheckWishlist(ctx context.Context, userID, propertyID string) (bool, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range user.Wishlist {
		if id == propertyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func passwordMeetsPolicy(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
