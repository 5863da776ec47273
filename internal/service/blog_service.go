package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

// BlogService handles blog posts.
type BlogService interface {
	Create(ctx context.Context, title, content, authorName, userID, image string) (*domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	Delete(ctx context.Context, id string) error
}

type blogService struct {
	blogs repository.BlogRepository
}

func NewBlogService(blogs repository.BlogRepository) BlogService {
	return &blogService{blogs: blogs}
}

func (s *blogService) Create(ctx context.Context, title, content, authorName, userID, image string) (*domain.Blog, error) {
	if title == "" || content == "" {
		return nil, ErrMissingFields
	}
	blog := &domain.Blog{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		AuthorName: authorName,
		UserID:     userID,
		Image:      image,
		Date:       time.Now().UTC(),
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.GetAll(ctx)
}

func (s *blogService) Delete(ctx context.Context, id string) error {
	if err := s.blogs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBlogNotFound
		}
		return err
	}
	return nil
}
