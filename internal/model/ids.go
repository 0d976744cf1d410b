package model

import (
	"sync"
	"time"
)

// EntryID identifies an entry within its section for the whole session.
type EntryID int64

// IDSource hands out entry IDs based on the wall clock in milliseconds.
// IDs strictly increase even when the clock stalls or goes backwards.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceWithClock is used by tests that need deterministic IDs.
func NewIDSourceWithClock(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

func (s *IDSource) Next() EntryID {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.now().UnixMilli()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return EntryID(n)
}

// Observe moves the source past an ID that already exists in a loaded document.
func (s *IDSource) Observe(id EntryID) {
	s.mu.Lock()
	if int64(id) > s.last {
		s.last = int64(id)
	}
	s.mu.Unlock()
}

func (e *Education) SetEntryID(id EntryID)     { e.ID = id }
func (e *Experience) SetEntryID(id EntryID)    { e.ID = id }
func (s *Skill) SetEntryID(id EntryID)         { s.ID = id }
func (p *Project) SetEntryID(id EntryID)       { p.ID = id }
func (c *Certification) SetEntryID(id EntryID) { c.ID = id }
func (l *Language) SetEntryID(id EntryID)      { l.ID = id }
func (a *Award) SetEntryID(id EntryID)         { a.ID = id }
func (r *Reference) SetEntryID(id EntryID)     { r.ID = id }
