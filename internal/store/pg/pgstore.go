// Package pg implements the store contracts on PostgreSQL.
package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"planhub.org/internal/ids"
	"planhub.org/internal/store"
)

const uniqueViolation = "23505"

// Store implements store.Store using PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open connects with pool defaults tuned for a small API process.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// New wraps an existing connection pool.
func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) CreateUser(ctx context.Context, u *store.User) error {
	if u.ID == "" {
		u.ID = ids.New()
	}
	err := s.db.QueryRowContext(ctx, `
		insert into users(id, username, email, full_name, disabled, password_hash)
		values ($1,$2,$3,$4,$5,$6)
		returning created_at
	`, u.ID, u.Username, u.Email, u.FullName, u.Disabled, u.PasswordHash).Scan(&u.CreatedAt)
	if isUniqueViolation(err) {
		return store.ErrConflict
	}
	return err
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*store.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		select id, username, email, full_name, disabled, password_hash, created_at
		from users where id=$1
	`, id))
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*store.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		select id, username, email, full_name, disabled, password_hash, created_at
		from users where username=$1
	`, username))
}

func (s *Store) scanUser(row *sql.Row) (*store.User, error) {
	var u store.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Disabled, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateProject(ctx context.Context, p *store.Project) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	return s.db.QueryRowContext(ctx, `
		insert into projects(id, name, description, owner_id)
		values ($1,$2,$3,$4)
		returning created_at, updated_at
	`, p.ID, p.Name, p.Description, p.OwnerID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) ListProjectsByOwner(ctx context.Context, ownerID string) ([]store.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, name, description, owner_id, created_at, updated_at
		from projects where owner_id=$1
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []store.Project
	for rows.Next() {
		var p store.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (s *Store) FindProject(ctx context.Context, id string) (*store.Project, error) {
	var p store.Project
	err := s.db.QueryRowContext(ctx, `
		select id, name, description, owner_id, created_at, updated_at
		from projects where id=$1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject merges the patch in a single conditional statement filtered on
// (id, owner). A concurrent delete between any earlier existence check and
// this write simply yields no matched row, which reads as not-found.
func (s *Store) UpdateProject(ctx context.Context, id, ownerID string, patch store.ProjectPatch) (*store.Project, error) {
	var p store.Project
	err := s.db.QueryRowContext(ctx, `
		update projects
		set name = coalesce($3, name),
		    description = coalesce($4, description),
		    updated_at = now()
		where id=$1 and owner_id=$2
		returning id, name, description, owner_id, created_at, updated_at
	`, id, ownerID, patch.Name, patch.Description).
		Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id, ownerID string) error {
	res, err := s.db.ExecContext(ctx, `delete from projects where id=$1 and owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
