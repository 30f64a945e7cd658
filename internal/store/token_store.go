package store

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

const tokenBytes = 24

type tokenEntry struct {
	token     string
	expiresAt time.Time
}

// TokenStore maps an email to its current password-reset token. A token is
// issued after a successful code verification and consumed by a single reset.
type TokenStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]tokenEntry
}

func NewTokenStore(ttl time.Duration) *TokenStore {
	return &TokenStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]tokenEntry),
	}
}

// Issue mints a fresh URL-safe token for the email, replacing any prior one.
func (s *TokenStore) Issue(email string) string {
	token := newToken()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.items[email] = tokenEntry{token: token, expiresAt: s.now().Add(s.ttl)}
	return token
}

// Validate reports whether an unexpired matching token exists, without
// consuming it.
func (s *TokenStore) Validate(email, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	entry, ok := s.items[email]
	return ok && entry.token == token
}

func (s *TokenStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, email)
}

func (s *TokenStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked()
}

func (s *TokenStore) purgeLocked() int {
	now := s.now()
	removed := 0
	for key, entry := range s.items {
		if now.After(entry.expiresAt) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

func newToken() string {
	buf := make([]byte, tokenBytes)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
