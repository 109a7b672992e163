package store

import (
	"context"
	"sync"
	"time"

	"planhub.org/internal/ids"
)

// Memory implements Store with in-process concurrency safety. It backs tests
// and DSN-less development runs; production uses the pg implementation.
type Memory struct {
	mu         sync.RWMutex
	users      map[string]*User    // id -> user
	byUsername map[string]string   // username -> id
	projects   map[string]*Project // id -> project
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]*User),
		byUsername: make(map[string]string),
		projects:   make(map[string]*Project),
	}
}

func (s *Memory) CreateUser(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[u.Username]; taken {
		return ErrConflict
	}
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	s.users[cp.ID] = &cp
	s.byUsername[cp.Username] = cp.ID
	return nil
}

func (s *Memory) FindUserByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *Memory) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

func (s *Memory) CreateProject(ctx context.Context, p *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.projects[cp.ID] = &cp
	return nil
}

func (s *Memory) ListProjectsByOwner(ctx context.Context, ownerID string) ([]Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			res = append(res, *p)
		}
	}
	return res, nil
}

func (s *Memory) FindProject(ctx context.Context, id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

func (s *Memory) UpdateProject(ctx context.Context, id, ownerID string, patch ProjectPatch) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	p.UpdatedAt = time.Now().UTC()
	out := *p
	return &out, nil
}

func (s *Memory) DeleteProject(ctx context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok || p.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

var _ Store = (*Memory)(nil)
