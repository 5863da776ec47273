package service

import (
	"context"
	"time"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users map[string]*domain.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		copied := *u
		r.users[u.ID] = &copied
	}
	return r
}

func (r *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	all := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, *user)
	}
	return all, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) SetCertified(ctx context.Context, id string, certified bool) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsCertified = certified
	return nil
}

func (r *fakeUserRepo) SetAdmin(ctx context.Context, id string, admin bool) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsAdmin = admin
	return nil
}

func (r *fakeUserRepo) SetProfileImage(ctx context.Context, id, imageKey string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.ProfileImage = imageKey
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error) {
	user, ok := r.users[userID]
	if !ok {
		return false, repository.ErrNotFound
	}
	for i, id := range user.Wishlist {
		if id == propertyID {
			user.Wishlist = append(user.Wishlist[:i], user.Wishlist[i+1:]...)
			return false, nil
		}
	}
	user.Wishlist = append(user.Wishlist, propertyID)
	return true, nil
}

func (r *fakeUserRepo) AddWishlist(ctx context.Context, userID, propertyID string) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, id := range user.Wishlist {
		if id == propertyID {
			return nil
		}
	}
	user.Wishlist = append(user.Wishlist, propertyID)
	return nil
}

func (r *fakeUserRepo) RemoveWishlist(ctx context.Context, userID, propertyID string) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for i, id := range user.Wishlist {
		if id == propertyID {
			user.Wishlist = append(user.Wishlist[:i], user.Wishlist[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// fakePropertyRepo is an in-memory PropertyRepository for service tests.
type fakePropertyRepo struct {
	properties map[string]*domain.Property
}

var _ repository.PropertyRepository = (*fakePropertyRepo)(nil)

func newFakePropertyRepo(properties ...*domain.Property) *fakePropertyRepo {
	r := &fakePropertyRepo{properties: make(map[string]*domain.Property)}
	for _, p := range properties {
		copied := *p
		r.properties[p.ID] = &copied
	}
	return r
}

func (r *fakePropertyRepo) Init(ctx context.Context) error { return nil }

func (r *fakePropertyRepo) Create(ctx context.Context, property *domain.Property) error {
	copied := *property
	r.properties[property.ID] = &copied
	return nil
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	property, ok := r.properties[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *property
	return &copied, nil
}

func (r *fakePropertyRepo) GetAll(ctx context.Context) ([]domain.Property, error) {
	all := make([]domain.Property, 0, len(r.properties))
	for _, p := range r.properties {
		all = append(all, *p)
	}
	return all, nil
}

func (r *fakePropertyRepo) GetByUser(ctx context.Context, userID string) ([]domain.Property, error) {
	var matched []domain.Property
	for _, p := range r.properties {
		if p.UserID == userID {
			matched = append(matched, *p)
		}
	}
	return matched, nil
}

func (r *fakePropertyRepo) Filter(ctx context.Context, purpose, location string) ([]domain.Property, error) {
	var matched []domain.Property
	for _, p := range r.properties {
		if p.Purpose == purpose {
			matched = append(matched, *p)
		}
	}
	return matched, nil
}

func (r *fakePropertyRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.Property, error) {
	var matched []domain.Property
	for _, id := range ids {
		if p, ok := r.properties[id]; ok {
			matched = append(matched, *p)
		}
	}
	return matched, nil
}

func (r *fakePropertyRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.properties[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.properties, id)
	return nil
}

// fakeClock is a settable time source for cache expiry tests.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time          { return c.current }
func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }
