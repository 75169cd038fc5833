package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/models"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// newTodoFixture returns a todo service plus two registered users.
func newTodoFixture(t *testing.T) (*TodoService, models.User, models.User) {
	t.Helper()

	db := newTestDB(t)
	users := NewUserService(db, auth.NewTokenIssuer("test-secret", time.Hour))
	ctx := context.Background()

	alice, err := users.Register(ctx, "alice", "alice@x.com", "pw1")
	if err != nil {
		t.Fatalf("failed to register alice: %v", err)
	}
	bob, err := users.Register(ctx, "bob", "bob@x.com", "pw2")
	if err != nil {
		t.Fatalf("failed to register bob: %v", err)
	}
	return NewTodoService(db), alice, bob
}

func TestTodoService_CreateGetRoundTrip(t *testing.T) {
	t.Parallel()

	s, alice, _ := newTodoFixture(t)
	ctx := context.Background()

	created, err := s.Create(ctx, alice.ID, "Buy milk", nil, false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("created todo should have an id assigned by the database")
	}

	got, err := s.Get(ctx, alice.ID, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Buy milk" || got.Completed || got.Description != nil {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.UserID != alice.ID {
		t.Errorf("owner = %d, want %d", got.UserID, alice.ID)
	}
}

func TestTodoService_CreateWithDescription(t *testing.T) {
	t.Parallel()

	s, alice, _ := newTodoFixture(t)
	ctx := context.Background()

	created, err := s.Create(ctx, alice.ID, "Call mom", strPtr("before friday"), true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Description == nil || *created.Description != "before friday" {
		t.Errorf("description not persisted: %+v", created)
	}
	if !created.Completed {
		t.Error("completed flag not persisted")
	}
}

func TestTodoService_OwnershipScoping(t *testing.T) {
	t.Parallel()

	s, alice, bob := newTodoFixture(t)
	ctx := context.Background()

	todo, err := s.Create(ctx, alice.ID, "secret plans", nil, false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Bob must not be able to see, modify, or delete Alice's todo; every
	// operation behaves exactly as if the todo did not exist.
	if _, err := s.Get(ctx, bob.ID, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Get by non-owner: err = %v, want ErrTodoNotFound", err)
	}
	if _, err := s.Update(ctx, bob.ID, todo.ID, TodoPatch{Title: strPtr("hijacked")}); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Update by non-owner: err = %v, want ErrTodoNotFound", err)
	}
	deleted, err := s.Delete(ctx, bob.ID, todo.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("Delete by non-owner must not remove the todo")
	}

	// The owner still sees the original, untouched.
	got, err := s.Get(ctx, alice.ID, todo.ID)
	if err != nil {
		t.Fatalf("Get by owner failed: %v", err)
	}
	if got.Title != "secret plans" {
		t.Errorf("title = %q, non-owner update must not apply", got.Title)
	}
}

func TestTodoService_ListScoping(t *testing.T) {
	t.Parallel()

	s, alice, bob := newTodoFixture(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		if _, err := s.Create(ctx, alice.ID, title, nil, false); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if _, err := s.Create(ctx, bob.ID, "bob's own", nil, false); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	aliceTodos, err := s.List(ctx, alice.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(aliceTodos) != 3 {
		t.Errorf("len(alice todos) = %d, want 3", len(aliceTodos))
	}
	for _, todo := range aliceTodos {
		if todo.UserID != alice.ID {
			t.Errorf("todo %d leaked into alice's list", todo.ID)
		}
	}

	bobTodos, err := s.List(ctx, bob.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(bobTodos) != 1 {
		t.Errorf("len(bob todos) = %d, want 1", len(bobTodos))
	}
}

func TestTodoService_PartialUpdate(t *testing.T) {
	t.Parallel()

	s, alice, _ := newTodoFixture(t)
	ctx := context.Background()

	todo, err := s.Create(ctx, alice.ID, "Buy milk", strPtr("2 liters"), false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Updating only completed leaves title and description unchanged.
	updated, err := s.Update(ctx, alice.ID, todo.ID, TodoPatch{Completed: boolPtr(true)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Completed {
		t.Error("completed should be true")
	}
	if updated.Title != "Buy milk" || updated.Description == nil || *updated.Description != "2 liters" {
		t.Errorf("completed-only patch touched other fields: %+v", updated)
	}

	// Updating only the title leaves completed unchanged.
	updated, err = s.Update(ctx, alice.ID, todo.ID, TodoPatch{Title: strPtr("Buy oat milk")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "Buy oat milk" {
		t.Errorf("title = %q, want %q", updated.Title, "Buy oat milk")
	}
	if !updated.Completed {
		t.Error("title-only patch must not reset completed")
	}

	// An explicit false is applied, unlike an omitted field.
	updated, err = s.Update(ctx, alice.ID, todo.ID, TodoPatch{Completed: boolPtr(false)})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Completed {
		t.Error("explicit false should be applied")
	}

	// Changes survive a reload.
	got, err := s.Get(ctx, alice.ID, todo.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Buy oat milk" || got.Completed {
		t.Errorf("persisted state mismatch: %+v", got)
	}
}

func TestTodoService_Delete(t *testing.T) {
	t.Parallel()

	s, alice, _ := newTodoFixture(t)
	ctx := context.Background()

	todo, err := s.Create(ctx, alice.ID, "ephemeral", nil, false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := s.Delete(ctx, alice.ID, todo.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("Delete should report the row as removed")
	}

	if _, err := s.Get(ctx, alice.ID, todo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("deleted todo should be gone, err = %v", err)
	}

	deleted, err = s.Delete(ctx, alice.ID, todo.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Error("second Delete should find nothing")
	}
}
