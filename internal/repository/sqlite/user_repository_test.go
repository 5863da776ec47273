package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"propertywala/internal/domain"
	"propertywala/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	repo := NewUserRepository(openTestDB(t))
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return repo
}

func TestUserRepositoryCRUD(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	ctx := context.Background()

	user := &domain.User{
		ID:           "u1",
		Name:         "Joe",
		Email:        "joe@example.com",
		PasswordHash: "hash",
		Wishlist:     []string{},
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Email != "joe@example.com" {
		t.Fatalf("email = %q", got.Email)
	}
	if got.Wishlist == nil || len(got.Wishlist) != 0 {
		t.Fatalf("wishlist = %v, want empty", got.Wishlist)
	}

	got, err = repo.GetByEmail(ctx, "joe@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("id = %q", got.ID)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "u1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err after delete = %v, want ErrNotFound", err)
	}
}

func TestUserRepositoryFlags(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: "u1", Email: "joe@example.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetCertified(ctx, "u1", true); err != nil {
		t.Fatalf("set certified: %v", err)
	}
	if err := repo.SetAdmin(ctx, "u1", true); err != nil {
		t.Fatalf("set admin: %v", err)
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.IsCertified || !got.IsAdmin {
		t.Fatalf("flags = certified %v admin %v, want both true", got.IsCertified, got.IsAdmin)
	}

	if err := repo.SetCertified(ctx, "missing", true); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserRepositoryToggleWishlist(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: "u1", Email: "joe@example.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	added, err := repo.ToggleWishlist(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !added {
		t.Fatal("first toggle should add")
	}

	added, err = repo.ToggleWishlist(ctx, "u1", "p1")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if added {
		t.Fatal("second toggle should remove")
	}

	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Wishlist) != 0 {
		t.Fatalf("wishlist = %v, want empty after involution", got.Wishlist)
	}

	if _, err := repo.ToggleWishlist(ctx, "missing", "p1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUserRepositoryRemoveWishlistAbsent(t *testing.T) {
	t.Parallel()

	repo := newTestUserRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: "u1", Email: "joe@example.com", PasswordHash: "hash"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.AddWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := repo.AddWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("add again: %v", err)
	}
	got, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Wishlist) != 1 {
		t.Fatalf("wishlist = %v, want single entry", got.Wishlist)
	}

	if err := repo.RemoveWishlist(ctx, "u1", "p1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.RemoveWishlist(ctx, "u1", "p1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
