package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planhub.org/internal/store"
)

// Service registers accounts, authenticates credentials and resolves bearer
// tokens back to persisted users. It is the single gate in front of every
// protected operation.
type Service struct {
	users  store.UserStore
	tokens *Tokens
}

// NewService constructs the auth service.
func NewService(users store.UserStore, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

// RegisterRequest carries the fields accepted at account creation.
type RegisterRequest struct {
	Username string
	Password string
	Email    string
	FullName string
}

// Register creates a new user account. The store enforces username
// uniqueness; a duplicate surfaces as ErrConflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (store.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return store.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if req.Password == "" {
		return store.User{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return store.User{}, err
	}
	user := store.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		FullName:     strings.TrimSpace(req.FullName),
		Disabled:     false,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return store.User{}, ErrConflict
		}
		return store.User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords are deliberately indistinguishable.
func (s *Service) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", time.Time{}, ErrUnauthorized
	}
	user, err := s.users.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", time.Time{}, ErrUnauthorized
		}
		return "", time.Time{}, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrUnauthorized
	}
	return s.tokens.Issue(user.Username)
}

// Authenticate resolves a bearer token to the persisted user. A valid token
// whose subject no longer exists is treated as an invalid token: deleting a
// user revokes their outstanding credentials.
func (s *Service) Authenticate(ctx context.Context, token string) (*store.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.users.FindUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
