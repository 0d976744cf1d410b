package autosave

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesTriggers(t *testing.T) {
	var calls int32
	var mu sync.Mutex
	var firedAt time.Time
	d := New(80*time.Millisecond, func() {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		firedAt = time.Now()
		mu.Unlock()
	})

	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	second := time.Now()
	d.Trigger()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, firedAt.Sub(second), 80*time.Millisecond, "timed from the last trigger")
	assert.False(t, d.Pending())
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	var calls int32
	d := New(20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	d.Trigger()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	d.Trigger()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Stop(t *testing.T) {
	var calls int32
	d := New(20*time.Millisecond, func() { atomic.AddInt32(&calls, 1) })

	d.Trigger()
	assert.True(t, d.Pending())
	d.Stop()
	d.Trigger()
	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestNew_DefaultQuiet(t *testing.T) {
	d := New(0, func() {})
	assert.Equal(t, DefaultQuiet, d.quiet)
}
