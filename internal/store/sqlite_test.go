package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/RuzgarAtaOzkan/server/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening sqlite store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestSQLiteCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: "hashed",
		Role:     "admin",
		RoleKey:  "role-key-admin",
	}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected created_at set")
	}

	got, err := s.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("getting user by id: %v", err)
	}
	if got == nil {
		t.Fatal("expected user, got nil")
	}
	if got.Email != user.Email || got.Role != user.Role || got.RoleKey != user.RoleKey {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got, err = s.GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("getting user by email: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("expected user %s by email, got %+v", user.ID, got)
	}
}

func TestSQLiteGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.GetUserByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing user, got %+v", got)
	}

	got, err = s.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing email, got %+v", got)
	}
}

func TestSQLiteDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &models.User{Email: "dup@example.com", Password: "x"}
	if err := s.CreateUser(ctx, first); err != nil {
		t.Fatalf("creating first user: %v", err)
	}

	second := &models.User{Email: "dup@example.com", Password: "y"}
	if err := s.CreateUser(ctx, second); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestSQLiteCountUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 users, got %d", count)
	}

	for i, email := range []string{"a@example.com", "b@example.com"} {
		if err := s.CreateUser(ctx, &models.User{Email: email, Password: "x"}); err != nil {
			t.Fatalf("creating user %d: %v", i, err)
		}
	}

	count, err = s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 users, got %d", count)
	}
}
