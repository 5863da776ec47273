package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

// PropertyService handles listing CRUD and wishlist resolution.
type PropertyService interface {
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Property, error)
	Filter(ctx context.Context, purpose, location string) ([]domain.Property, error)
	// WishlistProperties resolves a user's wishlist ids to property records.
	// Ids pointing at since-removed properties are silently dropped.
	WishlistProperties(ctx context.Context, userID string) ([]domain.Property, error)
	// Remove deletes unconditionally (admin path).
	Remove(ctx context.Context, id string) error
	// DeleteOwned deletes after verifying the owner's password.
	DeleteOwned(ctx context.Context, userID, password, propertyID string) error
}

type propertyService struct {
	properties repository.PropertyRepository
	users      repository.UserRepository
}

func NewPropertyService(properties repository.PropertyRepository, users repository.UserRepository) PropertyService {
	return &propertyService{
		properties: properties,
		users:      users,
	}
}

func (s *propertyService) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property.Name == "" || property.UserID == "" {
		return nil, ErrMissingFields
	}
	property.ID = uuid.NewString()
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("lookup property: %w", err)
	}
	return property, nil
}

func (s *propertyService) List(ctx context.Context) ([]domain.Property, error) {
	return s.properties.GetAll(ctx)
}

func (s *propertyService) ListByUser(ctx context.Context, userID string) ([]domain.Property, error) {
	return s.properties.GetByUser(ctx, userID)
}

func (s *propertyService) Filter(ctx context.Context, purpose, location string) ([]domain.Property, error) {
	return s.properties.Filter(ctx, purpose, location)
}

func (s *propertyService) WishlistProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return s.properties.GetByIDs(ctx, user.Wishlist)
}

func (s *propertyService) Remove(ctx context.Context, id string) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}
	return nil
}

func (s *propertyService) DeleteOwned(ctx context.Context, userID, password, propertyID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return s.Remove(ctx, propertyID)
}
