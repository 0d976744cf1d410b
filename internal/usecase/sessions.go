package usecase

import (
	"sync"
	"time"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
)

// Sessions keeps the open wizards of the HTTP API. A session belongs to the
// user that started it and expires after ttl without use.
type Sessions struct {
	mu    sync.Mutex
	items map[uuid.UUID]*session
	ttl   time.Duration
	now   func() time.Time
}

type session struct {
	wizard *Wizard
	owner  uuid.UUID
	seen   time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{items: map[uuid.UUID]*session{}, ttl: ttl, now: time.Now}
}

// Add registers w for owner and returns the session id.
func (s *Sessions) Add(owner uuid.UUID, w *Wizard) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.items[id] = &session{wizard: w, owner: owner, seen: s.now()}
	return id
}

// Get returns the wizard of a live session owned by owner.
func (s *Sessions) Get(owner, id uuid.UUID) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok || sess.owner != owner || s.expired(sess) {
		return nil, domain.ErrSessionNotFound
	}
	sess.seen = s.now()
	return sess.wizard, nil
}

// Close ends a session and cancels its pending autosave.
func (s *Sessions) Close(owner, id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.items[id]
	if !ok || sess.owner != owner {
		s.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	delete(s.items, id)
	s.mu.Unlock()
	sess.wizard.Close()
	return nil
}

// Sweep closes expired sessions and reports how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	var stale []*Wizard
	for id, sess := range s.items {
		if s.expired(sess) {
			stale = append(stale, sess.wizard)
			delete(s.items, id)
		}
	}
	s.mu.Unlock()
	for _, w := range stale {
		w.Close()
	}
	return len(stale)
}

// Len is the number of tracked sessions, expired ones included.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) expired(sess *session) bool {
	return s.ttl > 0 && s.now().Sub(sess.seen) > s.ttl
}
