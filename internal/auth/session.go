package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	email   string
	expires time.Time
}

// Sessions issues and validates bearer tokens for authenticated sessions.
// Tokens are opaque uuids held in memory; restarting the service logs the
// admin out, which is acceptable for a single-operator tool.
type Sessions struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]session
	now    func() time.Time
}

// NewSessions creates a session registry with the given token lifetime.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:    ttl,
		tokens: make(map[string]session),
		now:    time.Now,
	}
}

// Issue creates a new token bound to the given email.
func (s *Sessions) Issue(email string) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = session{email: email, expires: s.now().Add(s.ttl)}
	return token
}

// Email resolves a token to its email, reporting false for unknown or
// expired tokens. Expired tokens are dropped on lookup.
func (s *Sessions) Email(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if s.now().After(sess.expires) {
		delete(s.tokens, token)
		return "", false
	}
	return sess.email, true
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}
