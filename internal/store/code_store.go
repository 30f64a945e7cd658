// Package store holds the process-lifetime verification state: pending email
// codes, password-reset tokens and pending email changes. Entries carry an
// expiry and every operation purges expired entries first, so an expired entry
// is never observable. Nothing here survives a restart.
package store

import (
	"sync"
	"time"
)

type codeEntry struct {
	code      string
	expiresAt time.Time
}

// CodeStore maps an email to its latest pending verification code.
type CodeStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]codeEntry
}

func NewCodeStore(ttl time.Duration) *CodeStore {
	return &CodeStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]codeEntry),
	}
}

// Put records the code, replacing any prior pending code for the email.
func (s *CodeStore) Put(email, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.items[email] = codeEntry{code: code, expiresAt: s.now().Add(s.ttl)}
}

// Consume deletes and reports a matching unexpired entry. A mismatched code
// leaves the entry in place.
func (s *CodeStore) Consume(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	entry, ok := s.items[email]
	if !ok || entry.code != code {
		return false
	}
	delete(s.items, email)
	return true
}

// Sweep removes expired entries and returns how many were dropped.
func (s *CodeStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked()
}

func (s *CodeStore) purgeLocked() int {
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
