package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

const createSubscribersTable = `
CREATE TABLE IF NOT EXISTS subscribers (
	email TEXT PRIMARY KEY,
	subscribed_at DATETIME NOT NULL
);
`

type SubscriberRepository struct {
	db *sql.DB
}

func NewSubscriberRepository(db *sql.DB) repository.SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSubscribersTable); err != nil {
		return fmt.Errorf("create subscribers table: %w", err)
	}
	return nil
}

func (r *SubscriberRepository) Add(ctx context.Context, email string) error {
	if _, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO subscribers (email, subscribed_at)
VALUES (?, ?)`,
		email,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepository) GetAll(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT email, subscribed_at
FROM subscribers
ORDER BY subscribed_at`)
	if err != nil {
		return nil, fmt.Errorf("select subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []domain.Subscriber
	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(&sub.Email, &sub.SubscribedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subscribers = append(subscribers, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return subscribers, nil
}
