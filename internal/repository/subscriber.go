package repository

import (
	"context"

	"propertywala/internal/domain"
)

// SubscriberRepository defines persistence for the newsletter mailing list.
type SubscriberRepository interface {
	Init(ctx context.Context) error
	// Add records the address; adding an existing address is a no-op.
	Add(ctx context.Context, email string) error
	GetAll(ctx context.Context) ([]domain.Subscriber, error)
}
