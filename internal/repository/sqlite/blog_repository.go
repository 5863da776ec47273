package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

const createBlogsTable = `
CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	author_name TEXT NOT NULL DEFAULT '',
	user_id TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	date DATETIME NOT NULL
);
`

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBlogsTable); err != nil {
		return fmt.Errorf("create blogs table: %w", err)
	}
	return nil
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	if blog.Date.IsZero() {
		blog.Date = time.Now().UTC()
	}
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO blogs (id, title, content, author_name, user_id, image, date)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Content,
		blog.AuthorName,
		blog.UserID,
		blog.Image,
		blog.Date,
	); err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) GetAll(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, content, author_name, user_id, image, date
FROM blogs
ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("select blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var blog domain.Blog
		if err := rows.Scan(
			&blog.ID,
			&blog.Title,
			&blog.Content,
			&blog.AuthorName,
			&blog.UserID,
			&blog.Image,
			&blog.Date,
		); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blogs: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("blog rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
