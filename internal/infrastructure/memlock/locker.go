// Package memlock is the in-process fallback for the per-table lock, used
// when no Redis address is configured (single-instance deployments).
package memlock

import (
	"context"
	"sync"
)

// Locker serializes callers per key with one mutex per key. Mutexes are kept
// for the process lifetime; the key space (tables per restaurant) is small.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*chanMutex
}

func New() *Locker {
	return &Locker{locks: make(map[string]*chanMutex)}
}

// Lock blocks until the key is acquired or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = newChanMutex()
		l.locks[key] = m
	}
	l.mu.Unlock()

	select {
	case m.ch <- struct{}{}:
		return func() { <-m.ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// chanMutex is a mutex acquirable with a context.
type chanMutex struct {
	ch chan struct{}
}

func newChanMutex() *chanMutex {
	return &chanMutex{ch: make(chan struct{}, 1)}
}
