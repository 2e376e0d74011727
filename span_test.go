package chrono_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlark-chrono/chrono"
)

func TestSpanBounds(t *testing.T) {
	assert.Equal(t, int64(math.MaxInt64), chrono.MaxSpan.Milliseconds())
	assert.Equal(t, int64(-math.MaxInt64), chrono.MinSpan.Milliseconds())
	assert.Equal(t, chrono.MaxSpan, chrono.MinSpan.Neg())
	assert.Equal(t, chrono.MaxSpan, chrono.MinSpan.Abs())
}

func TestSpanConstructors(t *testing.T) {
	for _, test := range []struct {
		name string
		make func() (chrono.Span, error)
		secs int64
	}{
		{"seconds", func() (chrono.Span, error) { return chrono.SpanOfSeconds(-90) }, -90},
		{"minutes", func() (chrono.Span, error) { return chrono.SpanOfMinutes(3) }, 180},
		{"hours", func() (chrono.Span, error) { return chrono.SpanOfHours(-2) }, -7200},
		{"days", func() (chrono.Span, error) { return chrono.SpanOfDays(2) }, 172800},
		{"weeks", func() (chrono.Span, error) { return chrono.SpanOfWeeks(1) }, 604800},
		{"millis", func() (chrono.Span, error) { return chrono.SpanOfMillis(-1500) }, -1},
		{"max days", func() (chrono.Span, error) { return chrono.SpanOfDays(106751991167) }, 9223372036828800},
	} {
		t.Run(test.name, func(t *testing.T) {
			s, err := test.make()
			require.NoError(t, err)
			assert.Equal(t, test.secs, s.Seconds())
		})
	}
}

func TestSpanConstructorsOutOfRange(t *testing.T) {
	for name, fn := range map[string]func() (chrono.Span, error){
		"seconds":       func() (chrono.Span, error) { return chrono.SpanOfSeconds(9223372036854776) },
		"minutes":       func() (chrono.Span, error) { return chrono.SpanOfMinutes(math.MaxInt64) },
		"hours":         func() (chrono.Span, error) { return chrono.SpanOfHours(math.MinInt64 / 2) },
		"days":          func() (chrono.Span, error) { return chrono.SpanOfDays(106751991168) },
		"weeks":         func() (chrono.Span, error) { return chrono.SpanOfWeeks(math.MaxInt64 / 604800) },
		"millis":        func() (chrono.Span, error) { return chrono.SpanOfMillis(math.MinInt64) },
		"nanos too big": func() (chrono.Span, error) { return chrono.NewSpan(1, 1_000_000_000) },
		"nanos < 0":     func() (chrono.Span, error) { return chrono.NewSpan(1, -1) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fn()
			assert.True(t, errors.Is(err, chrono.ErrRange), "got %v", err)
		})
	}
}

func TestSpanSmallUnitsNeverFail(t *testing.T) {
	n, err := chrono.SpanOfNanos(math.MinInt64).Nanoseconds()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), n)

	n, err = chrono.SpanOfNanos(math.MaxInt64).Nanoseconds()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), n)

	us, err := chrono.SpanOfMicros(math.MinInt64).Microseconds()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), us)
}

func TestSpanAccessorsTruncate(t *testing.T) {
	s, err := chrono.SpanOfMillis(-1500)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), s.Seconds())
	assert.Equal(t, int32(-500_000_000), s.SubsecNanos())
	assert.Equal(t, int64(-1500), s.Milliseconds())

	s, err = chrono.SpanOfSeconds(-90)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), s.Minutes())
	assert.Equal(t, int64(0), s.Hours())

	s, err = chrono.NewSpan(8*86400+3600, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(8), s.Days())
	assert.Equal(t, int64(1), s.Weeks())
	assert.Equal(t, int64(8*24+1), s.Hours())
	ns, err := s.Nanoseconds()
	require.NoError(t, err)
	assert.Equal(t, int64((8*86400+3600)*1_000_000_000+5), ns)
}

func TestSpanAccessorsOverflow(t *testing.T) {
	_, err := chrono.MaxSpan.Microseconds()
	assert.True(t, errors.Is(err, chrono.ErrRange))
	_, err = chrono.MinSpan.Nanoseconds()
	assert.True(t, errors.Is(err, chrono.ErrRange))
}

func TestSpanArithmetic(t *testing.T) {
	a, _ := chrono.SpanOfMillis(1500)
	b, _ := chrono.SpanOfMillis(-2750)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(-1250), sum.Milliseconds())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(4250), diff.Milliseconds())

	for _, s := range []chrono.Span{a, b, chrono.MaxSpan, chrono.MinSpan, chrono.ZeroSpan()} {
		got, err := s.Add(chrono.ZeroSpan())
		require.NoError(t, err)
		assert.Equal(t, s, got)
		got, err = s.Sub(chrono.ZeroSpan())
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.Equal(t, s.Abs(), s.Abs().Abs())
		assert.GreaterOrEqual(t, s.Abs().Milliseconds(), int64(0))
	}
}

func TestSpanArithmeticOverflow(t *testing.T) {
	_, err := chrono.MaxSpan.Add(chrono.SpanOfNanos(1))
	assert.True(t, errors.Is(err, chrono.ErrRange))
	_, err = chrono.MinSpan.Sub(chrono.SpanOfNanos(1))
	assert.True(t, errors.Is(err, chrono.ErrRange))
	_, err = chrono.MaxSpan.Sub(chrono.MinSpan)
	assert.True(t, errors.Is(err, chrono.ErrRange))
}

func TestSpanString(t *testing.T) {
	mustSpan := func(s chrono.Span, err error) chrono.Span {
		require.NoError(t, err)
		return s
	}
	for want, s := range map[string]chrono.Span{
		"PT0S":    chrono.ZeroSpan(),
		"PT1.5S":  mustSpan(chrono.SpanOfMillis(1500)),
		"-PT1.5S": mustSpan(chrono.SpanOfMillis(-1500)),
		"P2D":     mustSpan(chrono.SpanOfDays(2)),
		"P1DT1S":  mustSpan(chrono.SpanOfSeconds(86401)),
	} {
		assert.Equal(t, want, s.String())
	}
}
