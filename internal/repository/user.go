package repository

import (
	"context"

	"propertywala/internal/domain"
)

// UserRepository defines persistence operations for User records.
// Single-record reads and writes are atomic; the wishlist operations run in
// their own transaction so concurrent membership changes cannot clobber each
// other.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetCertified(ctx context.Context, id string, certified bool) error
	SetAdmin(ctx context.Context, id string, admin bool) error
	SetProfileImage(ctx context.Context, id, imageKey string) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// ToggleWishlist adds the property id if absent, removes it if present,
	// and reports whether it ended up added.
	ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error)
	// AddWishlist inserts the property id if absent (no-op otherwise).
	AddWishlist(ctx context.Context, userID, propertyID string) error
	// RemoveWishlist removes the property id; ErrNotFound when it was absent.
	RemoveWishlist(ctx context.Context, userID, propertyID string) error
}
