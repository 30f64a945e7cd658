package store

import (
	"sync"
	"time"
)

type pendingChange struct {
	newEmail  string
	code      string
	expiresAt time.Time
}

// PendingChangeStore maps a user's current email to an in-flight email change
// awaiting code confirmation.
type PendingChangeStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]pendingChange
}

func NewPendingChangeStore(ttl time.Duration) *PendingChangeStore {
	return &PendingChangeStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]pendingChange),
	}
}

func (s *PendingChangeStore) Put(currentEmail, newEmail, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.items[currentEmail] = pendingChange{
		newEmail:  newEmail,
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
}

// Validate reports whether an unexpired entry matches both the candidate
// email and the code, without consuming it.
func (s *PendingChangeStore) Validate(currentEmail, newEmail, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	entry, ok := s.items[currentEmail]
	return ok && entry.newEmail == newEmail && entry.code == code
}

func (s *PendingChangeStore) Delete(currentEmail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, currentEmail)
}

func (s *PendingChangeStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked()
}

func (s *PendingChangeStore) purgeLocked() int {
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
