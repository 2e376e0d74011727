//go:build !chrono_sync

package chrono_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starlark-chrono/chrono"
)

func TestExclusiveBorrowViolationsPanic(t *testing.T) {
	assert.False(t, chrono.ThreadSafe)
	s := chrono.NewShared(1)

	assert.PanicsWithError(t, "chrono: already borrowed: cannot borrow mutably", func() {
		_ = s.Update(func(*int) error {
			return s.Update(func(*int) error { return nil })
		})
	})
	assert.PanicsWithError(t, "chrono: already mutably borrowed: cannot borrow", func() {
		_ = s.Update(func(*int) error {
			_ = s.Get()
			return nil
		})
	})

	// The panics released their borrows on the way out.
	s.Set(2)
	assert.Equal(t, 2, s.Get())
}
