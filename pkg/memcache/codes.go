package memcache

import (
	"sync"
	"time"
)

// CodeStore keeps short-lived single-use codes keyed by token, currently
// the email verification codes.
type CodeStore interface {
	Set(token string, email string, ttl time.Duration)

	// Consume returns the email for token if not expired and removes
	// the token (single-use). Returns "" if missing or expired.
	Consume(token string) string

	// Peek reads without consuming.
	Peek(token string) (string, bool)
}

type entry struct {
	email     string
	expiresAt time.Time
}

type Codes struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewCodes() *Codes {
	return &Codes{data: make(map[string]entry)}
}

func (s *Codes) Set(token string, email string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{
		email:     email,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *Codes) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if time.Now().After(e.expiresAt) {
		return ""
	}
	return e.email
}

func (s *Codes) Peek(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[token]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.email, true
}
