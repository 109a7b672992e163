// Package project implements owner-scoped CRUD over project records.
package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"planhub.org/internal/ids"
	"planhub.org/internal/store"
)

var (
	// ErrNotFound covers both absent projects and projects owned by someone
	// else; the two are deliberately indistinguishable to the caller.
	ErrNotFound = errors.New("project: not found")

	ErrInvalidID    = errors.New("project: invalid project id")
	ErrEmptyPatch   = errors.New("project: no fields to update")
	ErrInvalidInput = errors.New("project: invalid input")
)

// Service executes project operations on behalf of a resolved caller. Every
// operation takes the caller explicitly; nothing here trusts ambient state.
type Service struct {
	projects store.ProjectStore
}

// NewService constructs the project service.
func NewService(projects store.ProjectStore) *Service {
	return &Service{projects: projects}
}

// Create persists a new project owned by the caller. The owner is always the
// caller; it is never accepted from the client.
func (s *Service) Create(ctx context.Context, caller *store.User, name, description string) (store.Project, error) {
	if strings.TrimSpace(name) == "" {
		return store.Project{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	p := store.Project{
		Name:        name,
		Description: description,
		OwnerID:     caller.ID,
	}
	if err := s.projects.CreateProject(ctx, &p); err != nil {
		return store.Project{}, err
	}
	return p, nil
}

// List returns the caller's projects in store-native order.
func (s *Service) List(ctx context.Context, caller *store.User) ([]store.Project, error) {
	return s.projects.ListProjectsByOwner(ctx, caller.ID)
}

// Get fetches a single project. Malformed ids fail before touching the store.
func (s *Service) Get(ctx context.Context, caller *store.User, projectID string) (store.Project, error) {
	if !ids.Valid(projectID) {
		return store.Project{}, ErrInvalidID
	}
	p, err := s.projects.FindProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Project{}, ErrNotFound
		}
		return store.Project{}, err
	}
	if p.OwnerID != caller.ID {
		return store.Project{}, ErrNotFound
	}
	return *p, nil
}

// Update merges the provided fields into the caller's project. The write is a
// single statement filtered on (id, owner), so a lost race with a concurrent
// delete reads as not-found rather than resurrecting the record.
func (s *Service) Update(ctx context.Context, caller *store.User, projectID string, patch store.ProjectPatch) (store.Project, error) {
	if !ids.Valid(projectID) {
		return store.Project{}, ErrInvalidID
	}
	if patch.IsEmpty() {
		return store.Project{}, ErrEmptyPatch
	}
	p, err := s.projects.UpdateProject(ctx, projectID, caller.ID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Project{}, ErrNotFound
		}
		return store.Project{}, err
	}
	return *p, nil
}

// Delete removes the caller's project; deleting nothing is not-found.
func (s *Service) Delete(ctx context.Context, caller *store.User, projectID string) error {
	if !ids.Valid(projectID) {
		return ErrInvalidID
	}
	if err := s.projects.DeleteProject(ctx, projectID, caller.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
