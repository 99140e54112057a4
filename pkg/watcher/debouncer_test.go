package watcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerRunsOnlyLatest(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	for i := 1; i <= 5; i++ {
		d.Trigger(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			close(done)
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, got)
	assert.False(t, d.Pending())
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Pending())
	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// Cancel does not stop later triggers.
	fired := make(chan struct{})
	d.Trigger(func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("trigger after cancel never ran")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })

	assert.False(t, d.Pending())
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncerDefaultDuration(t *testing.T) {
	assert.Equal(t, DefaultDebounceDuration, NewDebouncer(0).Duration())
	assert.Equal(t, 200*time.Millisecond, DefaultDebounceDuration)
}

func TestLatestDeliversLastValue(t *testing.T) {
	out := make(chan float64, 4)
	l := NewLatest(25*time.Millisecond, func(v float64) { out <- v })

	for _, w := range []float64{800, 820, 900, 1200} {
		l.Push(w)
	}
	require.True(t, l.Pending())

	select {
	case v := <-out:
		assert.Equal(t, 1200.0, v)
	case <-time.After(time.Second):
		t.Fatal("no value delivered")
	}
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, out)
}

func TestLatestStop(t *testing.T) {
	var calls atomic.Int32
	l := NewLatest(20*time.Millisecond, func(float64) { calls.Add(1) })
	l.Push(100)
	l.Stop()
	l.Push(200)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
