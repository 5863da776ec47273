package repository

import (
	"context"

	"propertywala/internal/domain"
)

// BlogRepository defines persistence operations for Blog records.
type BlogRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, blog *domain.Blog) error
	GetAll(ctx context.Context) ([]domain.Blog, error)
	Delete(ctx context.Context, id string) error
}
