//go:build !chrono_sync

package chrono

// ThreadSafe reports whether Shared cells may be used from several
// goroutines at once.
const ThreadSafe = false

// Shared is a reference-counted cell holding one value that every holder
// of the cell sees and mutates in place. A mutation made through one
// reference is visible through all of them.
//
// Get and Update are the only ways to reach the value. Update runs fn on
// a copy and stores it only if fn returns nil, so a failed mutation
// leaves the cell untouched.
//
// This build is the default. Its cells belong to one goroutine: access is
// borrow checked and a conflicting borrow panics with a *BorrowError.
// Building with the chrono_sync tag swaps in a cell that any goroutine
// may use.
type Shared[T any] struct {
	value  T
	refs   int
	borrow int // >0: readers, -1: writer
}

// NewShared returns a cell holding v with a reference count of one.
func NewShared[T any](v T) *Shared[T] {
	return &Shared[T]{value: v, refs: 1}
}

// Get returns a copy of the value. It panics if a mutable borrow is
// outstanding.
func (s *Shared[T]) Get() T {
	if s.borrow < 0 {
		panic(&BorrowError{})
	}
	s.borrow++
	defer func() { s.borrow-- }()
	return s.value
}

// Update borrows the value mutably for the duration of fn. It panics if
// any other borrow is outstanding, including one taken by fn itself.
func (s *Shared[T]) Update(fn func(*T) error) error {
	if s.borrow != 0 {
		panic(&BorrowError{Mutable: true})
	}
	s.borrow = -1
	defer func() { s.borrow = 0 }()
	v := s.value
	if err := fn(&v); err != nil {
		return err
	}
	s.value = v
	return nil
}

// Retain records another reference to s and returns s.
func (s *Shared[T]) Retain() *Shared[T] {
	s.refs++
	return s
}

// Release drops one reference and returns how many remain. The value is
// cleared when the last reference goes.
func (s *Shared[T]) Release() int {
	if s.refs == 0 {
		return 0
	}
	s.refs--
	if s.refs == 0 {
		var zero T
		s.value = zero
	}
	return s.refs
}

// Refs returns the current reference count.
func (s *Shared[T]) Refs() int { return s.refs }
