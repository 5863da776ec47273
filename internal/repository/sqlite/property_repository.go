package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

const createPropertiesTable = `
CREATE TABLE IF NOT EXISTS properties (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	price REAL NOT NULL DEFAULT 0,
	city TEXT NOT NULL DEFAULT '',
	locality TEXT NOT NULL DEFAULT '',
	beds_num INTEGER NOT NULL DEFAULT 0,
	baths_num INTEGER NOT NULL DEFAULT 0,
	area REAL NOT NULL DEFAULT 0,
	purpose TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	parking_num INTEGER NOT NULL DEFAULT 0,
	property_type TEXT NOT NULL DEFAULT '',
	images TEXT NOT NULL DEFAULT '[]',
	year_built INTEGER NOT NULL DEFAULT 0,
	lot_size REAL NOT NULL DEFAULT 0,
	lister_name TEXT NOT NULL DEFAULT '',
	lister_description TEXT NOT NULL DEFAULT '',
	lister_relation TEXT NOT NULL DEFAULT '',
	lister_mobile TEXT NOT NULL DEFAULT '',
	lister_email TEXT NOT NULL DEFAULT '',
	user_id TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type PropertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPropertiesTable); err != nil {
		return fmt.Errorf("create properties table: %w", err)
	}
	return nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	property.CreatedAt = time.Now().UTC()

	images := property.Images
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("encode property images: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO properties (id, name, price, city, locality, beds_num, baths_num, area, purpose, description, parking_num, property_type, images, year_built, lot_size, lister_name, lister_description, lister_relation, lister_mobile, lister_email, user_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		property.ID,
		property.Name,
		property.Price,
		property.City,
		property.Locality,
		property.BedsNum,
		property.BathsNum,
		property.Area,
		property.Purpose,
		property.Description,
		property.ParkingNum,
		property.Type,
		string(encoded),
		property.YearBuilt,
		property.LotSize,
		property.Lister.Name,
		property.Lister.Description,
		property.Lister.Relation,
		property.Lister.MobileNumber,
		property.Lister.Email,
		property.UserID,
		property.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	row := r.db.QueryRowContext(ctx, selectProperty+`WHERE id = ?`, id)
	return scanProperty(row)
}

func (r *PropertyRepository) GetAll(ctx context.Context) ([]domain.Property, error) {
	return r.query(ctx, selectProperty+`ORDER BY created_at DESC`)
}

func (r *PropertyRepository) GetByUser(ctx context.Context, userID string) ([]domain.Property, error) {
	return r.query(ctx, selectProperty+`WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *PropertyRepository) Filter(ctx context.Context, purpose, location string) ([]domain.Property, error) {
	query := selectProperty + `WHERE purpose = ?`
	args := []any{purpose}
	if strings.TrimSpace(location) != "" {
		query += ` AND (city LIKE ? COLLATE NOCASE OR locality LIKE ? COLLATE NOCASE)`
		pattern := "%" + strings.TrimSpace(location) + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC`
	return r.query(ctx, query, args...)
}

func (r *PropertyRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.query(ctx, selectProperty+`WHERE id IN (`+placeholders+`)`, args...)
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("property rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PropertyRepository) query(ctx context.Context, query string, args ...any) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}

const selectProperty = `
SELECT id, name, price, city, locality, beds_num, baths_num, area, purpose, description, parking_num, property_type, images, year_built, lot_size, lister_name, lister_description, lister_relation, lister_mobile, lister_email, user_id, created_at
FROM properties
`

func scanProperty(row interface {
	Scan(dest ...any) error
}) (*domain.Property, error) {
	var (
		property domain.Property
		images   string
	)
	if err := row.Scan(
		&property.ID,
		&property.Name,
		&property.Price,
		&property.City,
		&property.Locality,
		&property.BedsNum,
		&property.BathsNum,
		&property.Area,
		&property.Purpose,
		&property.Description,
		&property.ParkingNum,
		&property.Type,
		&images,
		&property.YearBuilt,
		&property.LotSize,
		&property.Lister.Name,
		&property.Lister.Description,
		&property.Lister.Relation,
		&property.Lister.MobileNumber,
		&property.Lister.Email,
		&property.UserID,
		&property.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan property: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &property.Images); err != nil {
		return nil, fmt.Errorf("decode property images: %w", err)
	}
	return &property, nil
}
