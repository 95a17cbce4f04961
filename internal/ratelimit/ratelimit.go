// Package ratelimit implements per-key request limiting over fixed windows.
//
// FIXED WINDOW:
// Each key gets a counter and a window that opens on its first request.
// Requests inside the window increment the counter; once it passes Max the
// key is refused until the window ends, after which the next request opens
// a fresh one. Simple and cheap, at the cost of allowing a burst of up to
// 2×Max across a window boundary.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether a request identified by key may proceed.
// The middleware depends on this interface so a shared store (e.g. Redis)
// can replace the in-process implementation.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow is an in-memory Limiter. It is safe for concurrent use and
// runs no background goroutine: expired windows are swept lazily.
type FixedWindow struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	counters  map[string]*window
	nextSweep time.Time
}

type Option func(*FixedWindow)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(f *FixedWindow) { f.now = now }
}

func NewFixedWindow(limit int, length time.Duration, opts ...Option) (*FixedWindow, error) {
	if limit < 1 {
		return nil, fmt.Errorf("ratelimit: max must be positive, got %d", limit)
	}
	if length <= 0 {
		return nil, fmt.Errorf("ratelimit: window must be positive, got %s", length)
	}

	f := &FixedWindow{
		max:      limit,
		window:   length,
		now:      time.Now,
		counters: make(map[string]*window),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.nextSweep = f.now().Add(length)
	return f, nil
}

func (f *FixedWindow) Allow(_ context.Context, key string) (Decision, error) {
	now := f.now()

	f.mu.Lock()
	defer f.mu.Unlock()

	f.sweep(now)

	w, ok := f.counters[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(f.window)}
		f.counters[key] = w
	}
	w.count++

	return Decision{
		Allowed:   w.count <= f.max,
		Limit:     f.max,
		Remaining: max(f.max-w.count, 0),
		ResetAt:   w.resetAt,
	}, nil
}

// sweep drops expired windows at most once per window length.
// Caller must hold f.mu.
func (f *FixedWindow) sweep(now time.Time) {
	if now.Before(f.nextSweep) {
		return
	}
	for key, w := range f.counters {
		if !now.Before(w.resetAt) {
			delete(f.counters, key)
		}
	}
	f.nextSweep = now.Add(f.window)
}

// Len reports the number of tracked keys.
func (f *FixedWindow) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.counters)
}
