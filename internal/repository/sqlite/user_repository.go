package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_admin INTEGER NOT NULL DEFAULT 0,
	is_certified INTEGER NOT NULL DEFAULT 0,
	wishlist TEXT NOT NULL DEFAULT '[]',
	profile_image TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	wishlist, err := marshalWishlist(user.Wishlist)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, name, email, password_hash, is_admin, is_certified, wishlist, profile_image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAdmin,
		user.IsCertified,
		wishlist,
		user.ProfileImage,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+`WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+`WHERE email = ?`, email)
	return scanUser(row)
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+`ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now().UTC(), id)
}

func (r *UserRepository) SetCertified(ctx context.Context, id string, certified bool) error {
	return r.exec(ctx, `UPDATE users SET is_certified = ?, updated_at = ? WHERE id = ?`,
		certified, time.Now().UTC(), id)
}

func (r *UserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	return r.exec(ctx, `UPDATE users SET is_admin = ?, updated_at = ? WHERE id = ?`,
		admin, time.Now().UTC(), id)
}

func (r *UserRepository) SetProfileImage(ctx context.Context, id, imageKey string) (*domain.User, error) {
	if err := r.exec(ctx, `UPDATE users SET profile_image = ?, updated_at = ? WHERE id = ?`,
		imageKey, time.Now().UTC(), id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
}

func (r *UserRepository) ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error) {
	var added bool
	err := r.updateWishlist(ctx, userID, func(list []string) ([]string, error) {
		if idx := indexOf(list, propertyID); idx >= 0 {
			added = false
			return append(list[:idx], list[idx+1:]...), nil
		}
		added = true
		return append(list, propertyID), nil
	})
	return added, err
}

func (r *UserRepository) AddWishlist(ctx context.Context, userID, propertyID string) error {
	return r.updateWishlist(ctx, userID, func(list []string) ([]string, error) {
		if indexOf(list, propertyID) >= 0 {
			return list, nil
		}
		return append(list, propertyID), nil
	})
}

func (r *UserRepository) RemoveWishlist(ctx context.Context, userID, propertyID string) error {
	return r.updateWishlist(ctx, userID, func(list []string) ([]string, error) {
		idx := indexOf(list, propertyID)
		if idx < 0 {
			return nil, repository.ErrNotFound
		}
		return append(list[:idx], list[idx+1:]...), nil
	})
}

// updateWishlist applies fn to the stored wishlist inside one transaction,
// so two concurrent membership changes cannot overwrite each other.
func (r *UserRepository) updateWishlist(ctx context.Context, userID string, fn func([]string) ([]string, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin wishlist tx: %w", err)
	}
	defer tx.Rollback()

	var raw string
	if err := tx.QueryRowContext(ctx, `SELECT wishlist FROM users WHERE id = ?`, userID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("select wishlist: %w", err)
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return fmt.Errorf("decode wishlist: %w", err)
	}

	updated, err := fn(list)
	if err != nil {
		return err
	}

	encoded, err := marshalWishlist(updated)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET wishlist = ?, updated_at = ? WHERE id = ?`,
		encoded, time.Now().UTC(), userID); err != nil {
		return fmt.Errorf("update wishlist: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wishlist tx: %w", err)
	}
	return nil
}

func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec user update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const selectUser = `
SELECT id, name, email, password_hash, is_admin, is_certified, wishlist, profile_image, created_at, updated_at
FROM users
`

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user domain.User
		raw  string
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsCertified,
		&raw,
		&user.ProfileImage,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &user.Wishlist); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return &user, nil
}

func marshalWishlist(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encode wishlist: %w", err)
	}
	return string(encoded), nil
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
