package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acquisitions/accounts-api/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUserRepo, name, email, role string) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestUserService_List(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	seedUser(t, repo, "Alice", "alice@example.com", domain.RoleAdmin)
	seedUser(t, repo, "Bob", "bob@example.com", domain.RoleUser)

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.GetByID(context.Background(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)

	name := "Alicia"
	role := domain.RoleAdmin
	updated, err := svc.Update(context.Background(), u.ID, domain.UserPatch{Name: &name, Role: &role})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Alicia" || updated.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user after update: %+v", updated)
	}
	if updated.Email != "alice@example.com" {
		t.Fatalf("email should be untouched, got %q", updated.Email)
	}
}

func TestUserService_Update_EmptyPatch(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)

	if _, err := svc.Update(context.Background(), u.ID, domain.UserPatch{}); !errors.Is(err, domain.ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	name := "Nobody"
	if _, err := svc.Update(context.Background(), 42, domain.UserPatch{Name: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_EmailTaken(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)
	bob := seedUser(t, repo, "Bob", "bob@example.com", domain.RoleUser)

	email := "alice@example.com"
	if _, err := svc.Update(context.Background(), bob.ID, domain.UserPatch{Email: &email}); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	u := seedUser(t, repo, "Alice", "alice@example.com", domain.RoleUser)

	deleted, err := svc.Delete(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted.ID != u.ID {
		t.Fatalf("expected deleted user %d, got %d", u.ID, deleted.ID)
	}

	if _, err := svc.Delete(context.Background(), u.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
