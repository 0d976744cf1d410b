package usecase

import (
	"testing"
	"time"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	s := NewSessions(time.Hour)
	s.now = func() time.Time { return now }

	owner := uuid.New()
	w, _, _ := newTestWizard(t, false)
	id := s.Add(owner, w)

	got, err := s.Get(owner, id)
	require.NoError(t, err)
	assert.Same(t, w, got)

	_, err = s.Get(uuid.New(), id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = s.Get(owner, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	now = now.Add(59 * time.Minute)
	_, err = s.Get(owner, id)
	require.NoError(t, err, "use refreshes the session")

	now = now.Add(61 * time.Minute)
	_, err = s.Get(owner, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 1, s.Sweep())
	assert.Zero(t, s.Len())
}

func TestSessions_Close(t *testing.T) {
	s := NewSessions(0)
	owner := uuid.New()
	w, _, _ := newTestWizard(t, false)
	id := s.Add(owner, w)

	assert.ErrorIs(t, s.Close(uuid.New(), id), domain.ErrSessionNotFound)
	require.NoError(t, s.Close(owner, id))
	assert.ErrorIs(t, s.Close(owner, id), domain.ErrSessionNotFound)
	assert.Zero(t, s.Sweep())
}
