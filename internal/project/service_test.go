package project

import (
	"context"
	"errors"
	"testing"

	"planhub.org/internal/store"
)

var (
	alice = &store.User{ID: "01HZXA6V9Q0000000000000001", Username: "alice"}
	bob   = &store.User{ID: "01HZXA6V9Q0000000000000002", Username: "bob"}
)

func newTestService() *Service {
	return NewService(store.NewMemory())
}

func TestCreateForcesOwner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "n", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.OwnerID != alice.ID {
		t.Fatalf("owner not forced to caller: %s", p.OwnerID)
	}
	if p.ID == "" {
		t.Fatal("expected assigned id")
	}

	got, err := svc.Get(ctx, alice, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "n" || got.Description != "d" || got.OwnerID != alice.ID {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Create(context.Background(), alice, "  ", "d"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestForeignProjectsReadAsNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "n", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, bob, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bob's get, got %v", err)
	}
	name := "stolen"
	if _, err := svc.Update(ctx, bob, p.ID, store.ProjectPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bob's update, got %v", err)
	}
	if err := svc.Delete(ctx, bob, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bob's delete, got %v", err)
	}

	// Alice still sees the unmodified project.
	got, err := svc.Get(ctx, alice, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "n" {
		t.Fatalf("project mutated by foreign caller: %+v", got)
	}
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "n", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Update(ctx, alice, p.ID, store.ProjectPatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
	got, err := svc.Get(ctx, alice, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "n" || got.Description != "d" {
		t.Fatalf("empty patch mutated record: %+v", got)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "n", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	desc := "new description"
	got, err := svc.Update(ctx, alice, p.ID, store.ProjectPatch{Description: &desc})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "n" || got.Description != "new description" {
		t.Fatalf("unexpected merge result: %+v", got)
	}
}

func TestMalformedIDFailsBeforeStore(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Get(ctx, alice, "not-an-id"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	name := "x"
	if _, err := svc.Update(ctx, alice, "not-an-id", store.ProjectPatch{Name: &name}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if err := svc.Delete(ctx, alice, "not-an-id"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, alice, "n", "d")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, alice, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, alice, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, alice, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}
