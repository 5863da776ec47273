package repository

import (
	"context"

	"propertywala/internal/domain"
)

// PropertyRepository defines persistence operations for Property records.
type PropertyRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	GetAll(ctx context.Context) ([]domain.Property, error)
	GetByUser(ctx context.Context, userID string) ([]domain.Property, error)
	// Filter matches the purpose ("rent"/"sale") exactly; a non-empty
	// location matches city or locality case-insensitively.
	Filter(ctx context.Context, purpose, location string) ([]domain.Property, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Property, error)
	Delete(ctx context.Context, id string) error
}
