package chrono

import "fmt"

// A BorrowError is the panic value raised when a Shared cell is borrowed
// in a way that conflicts with an outstanding borrow. It signals a bug in
// the host, never bad input.
type BorrowError struct {
	Mutable bool // the rejected borrow was a mutable one
}

func (e *BorrowError) Error() string {
	if e.Mutable {
		return "chrono: already borrowed: cannot borrow mutably"
	}
	return "chrono: already mutably borrowed: cannot borrow"
}

// Set replaces the value held by s.
func (s *Shared[T]) Set(v T) {
	_ = s.Update(func(p *T) error {
		*p = v
		return nil
	})
}

func (s *Shared[T]) String() string {
	return fmt.Sprint(s.Get())
}
