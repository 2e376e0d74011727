package chrono_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlark-chrono/chrono"
)

func TestMomentAliasesShareMutations(t *testing.T) {
	a, err := chrono.FromEpoch(birthday, chrono.Seconds)
	require.NoError(t, err)
	b := a.Alias()
	assert.True(t, a.Same(b))
	assert.Equal(t, 2, a.Refs())

	require.NoError(t, b.SetField(chrono.FieldYear, 2001))
	assert.Equal(t, int64(2001), a.Field(chrono.FieldYear))

	c := a.Copy()
	assert.False(t, a.Same(c))
	require.NoError(t, c.SetField(chrono.FieldYear, 1999))
	assert.Equal(t, int64(2001), a.Field(chrono.FieldYear))

	assert.Equal(t, 1, b.Release())
	assert.Equal(t, 1, a.Refs())
}

func TestMomentHandleFailedMutationIsAtomic(t *testing.T) {
	h, err := chrono.FromEpoch(birthday, chrono.Seconds)
	require.NoError(t, err)
	before := h.Get()

	assert.Error(t, h.SetTimeOfDay("12:99:00"))
	assert.Error(t, h.AddSpan(chrono.DeltaMax()))
	assert.Error(t, h.SubtractSpan(chrono.DeltaMax()))
	assert.Equal(t, before, h.Get())
}

func TestMomentHandleArithmetic(t *testing.T) {
	h, err := chrono.FromEpoch(birthday, chrono.Seconds)
	require.NoError(t, err)
	hour, err := chrono.DeltaHours(1)
	require.NoError(t, err)

	require.NoError(t, h.AddSpan(hour))
	require.NoError(t, h.AddSpan(hour))
	require.NoError(t, h.SubtractSpan(hour))
	assert.Equal(t, "10:30:11", h.TimeOfDay())

	origin, err := chrono.FromEpoch(0, chrono.Seconds)
	require.NoError(t, err)
	d := h.Diff(origin)
	assert.Equal(t, int64(birthday+3600), d.Seconds())
	assert.Equal(t, d.Get(), h.Compare(origin).Get())
	assert.Equal(t, d.Get(), h.DurationSince(origin).Get())

	// The diff is an independent value.
	d.Abs()
	require.NoError(t, d.Add(hour))
	assert.Equal(t, "10:30:11", h.TimeOfDay())

	assert.Equal(t, int64(19), h.YearsSince(origin))
	assert.Equal(t, int64(-19), origin.YearsSince(h))
}

func TestSpanHandleSelfArithmetic(t *testing.T) {
	s, err := chrono.DeltaMinutes(5)
	require.NoError(t, err)

	require.NoError(t, s.Add(s))
	assert.Equal(t, int64(10), s.Minutes())

	require.NoError(t, s.Subtract(s))
	assert.True(t, s.IsZero())
}

func TestSpanHandleMutations(t *testing.T) {
	s, err := chrono.DeltaMillis(-2500)
	require.NoError(t, err)
	alias := s.Alias()

	alias.Abs()
	assert.Equal(t, int64(2500), s.Milliseconds())
	alias.Abs()
	assert.Equal(t, int64(2500), s.Milliseconds())

	err = s.Add(chrono.DeltaMax())
	assert.True(t, errors.Is(err, chrono.ErrRange))
	assert.Equal(t, int64(2500), alias.Milliseconds())

	us, err := s.Microseconds()
	require.NoError(t, err)
	assert.Equal(t, int64(2_500_000), us)
	assert.Equal(t, int64(500_000_000), s.SubsecNanos())

	_, err = chrono.DeltaMax().Nanoseconds()
	assert.True(t, errors.Is(err, chrono.ErrRange))
}

func TestDeltaConstructors(t *testing.T) {
	s, err := chrono.DeltaSecondsNanos(3, 250_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(3250), s.Milliseconds())

	_, err = chrono.DeltaSecondsNanos(3, 1_000_000_000)
	assert.True(t, errors.Is(err, chrono.ErrRange))

	assert.Equal(t, int64(-1), chrono.DeltaMicros(-1_000_000).Seconds())
	assert.Equal(t, int64(2), chrono.DeltaNanos(2_000_000_001).Seconds())
	assert.Equal(t, chrono.MinSpan, chrono.DeltaMin().Get())

	w, err := chrono.DeltaWeeks(2)
	require.NoError(t, err)
	assert.Equal(t, int64(14), w.Days())
}
