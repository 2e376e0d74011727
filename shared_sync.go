//go:build chrono_sync

package chrono

import (
	"sync"
	"sync/atomic"
)

// ThreadSafe reports whether Shared cells may be used from several
// goroutines at once.
const ThreadSafe = true

// Shared is a reference-counted cell holding one value that every holder
// of the cell sees and mutates in place. A mutation made through one
// reference is visible through all of them.
//
// Get and Update are the only ways to reach the value. Update runs fn on
// a copy and stores it only if fn returns nil, so a failed mutation
// leaves the cell untouched.
//
// This build, selected by the chrono_sync tag, guards the value with a
// sync.RWMutex and counts references atomically, so cells may be used
// from any goroutine. Readers proceed together; a writer waits for them
// and excludes everyone.
type Shared[T any] struct {
	mu    sync.RWMutex
	value T
	refs  atomic.Int64
}

// NewShared returns a cell holding v with a reference count of one.
func NewShared[T any](v T) *Shared[T] {
	s := &Shared[T]{value: v}
	s.refs.Store(1)
	return s
}

// Get returns a copy of the value.
func (s *Shared[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Update holds the write lock for the duration of fn. fn must not touch s.
func (s *Shared[T]) Update(fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.value
	if err := fn(&v); err != nil {
		return err
	}
	s.value = v
	return nil
}

// Retain records another reference to s and returns s.
func (s *Shared[T]) Retain() *Shared[T] {
	s.refs.Add(1)
	return s
}

// Release drops one reference and returns how many remain. The value is
// cleared when the last reference goes.
func (s *Shared[T]) Release() int {
	for {
		n := s.refs.Load()
		if n == 0 {
			return 0
		}
		if s.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				s.mu.Lock()
				var zero T
				s.value = zero
				s.mu.Unlock()
			}
			return int(n - 1)
		}
	}
}

// Refs returns the current reference count.
func (s *Shared[T]) Refs() int { return int(s.refs.Load()) }
