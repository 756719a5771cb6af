// Package auth provides the single-admin identity check and session tokens.
// Exactly one configured email is ever authorized; every other identity is
// treated as unauthenticated.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Common errors for authentication.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Provider authenticates an identity. Implementations return
// ErrInvalidCredentials on any rejection; there is no retry logic, the
// failure is surfaced once to the caller.
type Provider interface {
	Authenticate(email, password string) error
}

// StaticProvider authorizes exactly one configured identity against a
// bcrypt password hash.
type StaticProvider struct {
	email        string
	passwordHash string
}

// NewStaticProvider creates a provider for the configured admin identity.
func NewStaticProvider(email, passwordHash string) *StaticProvider {
	return &StaticProvider{email: email, passwordHash: passwordHash}
}

// Authenticate checks the email and password. A wrong email and a wrong
// password are indistinguishable to the caller.
func (p *StaticProvider) Authenticate(email, password string) error {
	if email != p.email {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.passwordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
