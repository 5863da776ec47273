package service

import (
	"context"
	"errors"
	"testing"

	"propertywala/internal/domain"
)

// Ids pointing at removed properties are dropped from the resolved wishlist.
func TestWishlistProperties(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo(&domain.User{
		ID:       "u1",
		Email:    "joe@example.com",
		Wishlist: []string{"p1", "gone", "p2"},
	})
	properties := newFakePropertyRepo(
		&domain.Property{ID: "p1", Name: "Villa", UserID: "owner"},
		&domain.Property{ID: "p2", Name: "Flat", UserID: "owner"},
	)
	svc := NewPropertyService(properties, users)

	resolved, err := svc.WishlistProperties(context.Background(), "u1")
	if err != nil {
		t.Fatalf("wishlist properties: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("resolved %d properties, want 2", len(resolved))
	}

	if _, err := svc.WishlistProperties(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestCreateProperty(t *testing.T) {
	t.Parallel()

	svc := NewPropertyService(newFakePropertyRepo(), newFakeUserRepo())

	_, err := svc.Create(context.Background(), &domain.Property{Name: "Villa"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("err = %v, want ErrMissingFields", err)
	}

	created, err := svc.Create(context.Background(), &domain.Property{Name: "Villa", UserID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestDeleteOwnedProperty(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo(&domain.User{
		ID:           "u1",
		Email:        "joe@example.com",
		PasswordHash: mustHash(t, "Secret123"),
	})
	properties := newFakePropertyRepo(&domain.Property{ID: "p1", Name: "Villa", UserID: "u1"})
	svc := NewPropertyService(properties, users)

	if err := svc.DeleteOwned(context.Background(), "u1", "WrongPass1", "p1"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if _, ok := properties.properties["p1"]; !ok {
		t.Fatal("property deleted despite wrong password")
	}

	if err := svc.DeleteOwned(context.Background(), "u1", "Secret123", "p1"); err != nil {
		t.Fatalf("delete owned: %v", err)
	}
	if _, ok := properties.properties["p1"]; ok {
		t.Fatal("property still present after delete")
	}
}
