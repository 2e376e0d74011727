//go:build chrono_sync

package chrono_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlark-chrono/chrono"
)

func TestSyncHandlesShareAcrossGoroutines(t *testing.T) {
	assert.True(t, chrono.ThreadSafe)

	total := chrono.DeltaZero()
	one, err := chrono.DeltaSeconds(1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.NoError(t, total.Add(one))
				_ = total.Seconds()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), total.Seconds())
}

func TestSyncRefCount(t *testing.T) {
	s := chrono.NewShared("x")
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Retain()
		}()
	}
	wg.Wait()
	assert.Equal(t, 11, s.Refs())
	for i := 0; i < 11; i++ {
		s.Release()
	}
	assert.Equal(t, 0, s.Refs())
	assert.Equal(t, "", s.Get())
}
