package auth

import "errors"

var (
	// ErrInvalidToken indicates the token failed validation. Callers must not
	// distinguish why: malformed, bad signature, expired and unknown subject
	// all read the same to the client.
	ErrInvalidToken = errors.New("auth: invalid token")

	ErrUnauthorized = errors.New("auth: unauthorized")
	ErrConflict     = errors.New("auth: username already registered")
	ErrInvalidInput = errors.New("auth: invalid input")
)
