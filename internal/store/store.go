// Package store defines the persisted entities and the persistence contracts
// used by the auth and project services.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: already exists")
)

// User is an account record. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name,omitempty"`
	Disabled     bool      `json:"disabled"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Project is owned by exactly one user; every mutation is scoped to the owner.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectPatch is a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// IsEmpty reports whether the patch carries no fields.
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// UserStore manages user records. CreateUser assigns the id when empty and
// returns ErrConflict when the username is already taken; uniqueness is
// enforced by the store itself, not by a caller-side pre-check.
type UserStore interface {
	CreateUser(ctx context.Context, u *User) error
	FindUserByID(ctx context.Context, id string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
}

// ProjectStore manages project records. UpdateProject and DeleteProject are
// conditional writes filtered on (id, owner): a zero match count surfaces as
// ErrNotFound, which also covers projects owned by someone else.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *Project) error
	ListProjectsByOwner(ctx context.Context, ownerID string) ([]Project, error)
	FindProject(ctx context.Context, id string) (*Project, error)
	UpdateProject(ctx context.Context, id, ownerID string, patch ProjectPatch) (*Project, error)
	DeleteProject(ctx context.Context, id, ownerID string) error
}

// Store is the full persistence surface required by the services.
type Store interface {
	UserStore
	ProjectStore
}
