package repository

import (
	"context"
	"testing"

	"learnquest/internal/models"
	"learnquest/internal/storage"
)

func TestCurrentUserAbsent(t *testing.T) {
	repo := NewUserRepository(storage.NewMemoryStore())

	user, err := repo.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user != nil {
		t.Errorf("CurrentUser() = %+v, want nil", user)
	}
}

func TestCurrentUserMirror(t *testing.T) {
	repo := NewUserRepository(storage.NewMemoryStore())
	ctx := context.Background()

	identity := models.User{ID: "u1", Name: "Alex", Role: models.RoleKid}
	if err := repo.SetCurrentUser(ctx, identity); err != nil {
		t.Fatalf("SetCurrentUser() error = %v", err)
	}

	user, err := repo.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user == nil || user.ID != "u1" || user.Role != models.RoleKid {
		t.Errorf("CurrentUser() = %+v, want restored kid identity", user)
	}

	if err := repo.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("ClearCurrentUser() error = %v", err)
	}
	if user, _ := repo.CurrentUser(ctx); user != nil {
		t.Errorf("CurrentUser() = %+v after clear, want nil", user)
	}
}

func TestCurrentUserRoleMarkerMismatch(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewUserRepository(store)
	ctx := context.Background()

	identity := models.User{ID: "u1", Name: "Alex", Role: models.RoleKid}
	if err := repo.SetCurrentUser(ctx, identity); err != nil {
		t.Fatal(err)
	}

	// Simulate a torn write: the role marker disagrees with the identity
	if err := store.Set(ctx, storage.KeyCurrentRole, string(models.RoleTeacher)); err != nil {
		t.Fatal(err)
	}

	user, err := repo.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user != nil {
		t.Errorf("CurrentUser() = %+v with mismatched role marker, want nil", user)
	}
}

func TestCurrentUserMissingRoleMarker(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewUserRepository(store)
	ctx := context.Background()

	if err := repo.SetCurrentUser(ctx, models.User{ID: "u1", Role: models.RoleKid}); err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(ctx, storage.KeyCurrentRole); err != nil {
		t.Fatal(err)
	}

	user, err := repo.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if user != nil {
		t.Errorf("CurrentUser() = %+v with missing role marker, want nil", user)
	}
}
