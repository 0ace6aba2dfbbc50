package users

import (
	"context"
	"errors"
	"testing"
)

func TestUpsertFromAuthRequiresIDAndEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if err := svc.UpsertFromAuth(ctx, User{ID: "", Email: "a@example.com"}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: ""}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	user := User{ID: "google:1", Email: "a@example.com", FullName: "Dana", Verified: true}
	if err := svc.UpsertFromAuth(ctx, user); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}
	first, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	user.FullName = "Dana Renamed"
	if err := svc.UpsertFromAuth(ctx, user); err != nil {
		t.Fatalf("UpsertFromAuth (again): %v", err)
	}
	second, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("GetByID (again): %v", err)
	}

	if second.FullName != "Dana Renamed" {
		t.Fatalf("full name: got %q", second.FullName)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created at changed on upsert: %v then %v", first.CreatedAt, second.CreatedAt)
	}
	if !second.Verified {
		t.Fatalf("verified flag lost on upsert")
	}
}

func TestGetByIDUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got err=%v, want ErrNotFound", err)
	}
}
