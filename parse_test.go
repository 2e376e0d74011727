package chrono_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starlark-chrono/chrono"
)

func TestParsePattern(t *testing.T) {
	for _, test := range []struct {
		text, pattern, want string
	}{
		{"2024-02-29 12:00", "%Y-%m-%d %H:%M", "2024-02-29T12:00:00+00:00"},
		{"09/08/1989 09:30:11", "%d/%m/%Y %H:%M:%S", "1989-08-09T09:30:11+00:00"},
		{"12:34", "%H:%M", "1970-01-01T12:34:00+00:00"},
		{"1989-08-09", "%Y-%m-%d", "1989-08-09T00:00:00+00:00"},
		{"03-15 08", "%m-%d %H", "1970-03-15T08:00:00+00:00"},
		{"1989-08-09 03:30:11 -0600", "%Y-%m-%d %H:%M:%S %z", "1989-08-09T03:30:11+00:00"},
		{"12:00 +05:30", "%H:%M %z", "1970-01-01T12:00:00+00:00"},
		{"618658211", "%s", "1989-08-09T09:30:11+00:00"},
	} {
		m, err := chrono.ParsePattern(test.text, test.pattern)
		require.NoError(t, err, "%s with %s", test.text, test.pattern)
		assert.Equal(t, test.want, m.ToRFC3339(), "%s with %s", test.text, test.pattern)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := chrono.FromPattern("hello", "%Y-%m-%d")
	require.Error(t, err)
	assert.True(t, errors.Is(err, chrono.ErrParse))
	var perr *chrono.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "hello", perr.Input)
	assert.Equal(t, "%Y-%m-%d", perr.Pattern)
	assert.NotNil(t, perr.Unwrap())
	assert.Contains(t, err.Error(), `"hello"`)
	assert.Contains(t, err.Error(), `"%Y-%m-%d"`)

	_, err = chrono.FromRFC3339("1989-08-09 09:30:11")
	assert.True(t, errors.Is(err, chrono.ErrParse), "%v", err)
	assert.Equal(t, chrono.KindParse, chrono.KindOf(err))

	_, err = chrono.FromRFC2822("not a date")
	assert.True(t, errors.Is(err, chrono.ErrParse), "%v", err)

	_, err = chrono.FromRFC2822("Thu, 9 Aug 1989 09:30:11 +0000")
	assert.True(t, errors.Is(err, chrono.ErrParse), "weekday mismatch: %v", err)
}

func TestParseRFC2822Variants(t *testing.T) {
	for _, in := range []string{
		"Wed, 9 Aug 1989 09:30:11 +0000",
		"Wed, 09 Aug 1989 09:30:11 +0000",
		"9 Aug 1989 09:30:11 +0000",
		"Wed, 9 Aug 1989 09:30:11 GMT",
		"Wed, 9 Aug 1989 03:30:11 -0600",
	} {
		m, err := chrono.ParseRFC2822(in)
		require.NoError(t, err, in)
		assert.Equal(t, int64(birthday), m.Timestamp(), in)
	}
}

func TestParseRFC2822ObsoleteZones(t *testing.T) {
	for _, test := range []struct {
		in string
		tz string
	}{
		{"Wed, 9 Aug 1989 09:30:11 UT", "+00:00"},
		{"Wed, 9 Aug 1989 09:30:11 Z", "+00:00"},
		{"Wed, 9 Aug 1989 09:30:11 gmt", "+00:00"},
		{"Wed, 9 Aug 1989 04:30:11 EST", "-05:00"},
		{"Wed, 9 Aug 1989 05:30:11 EDT", "-04:00"},
		{"Wed, 9 Aug 1989 03:30:11 CST", "-06:00"},
		{"Wed, 9 Aug 1989 04:30:11 CDT", "-05:00"},
		{"Wed, 9 Aug 1989 02:30:11 MST", "-07:00"},
		{"Wed, 9 Aug 1989 03:30:11 MDT", "-06:00"},
		{"Wed, 9 Aug 1989 01:30:11 PST", "-08:00"},
		{"Wed, 9 Aug 1989 02:30:11 PDT", "-07:00"},
		{"Wed, 9 Aug 1989 09:30:11 A", "+00:00"},
	} {
		m, err := chrono.ParseRFC2822(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, int64(birthday), m.Timestamp(), test.in)
		assert.Equal(t, test.tz, m.Timezone(), test.in)
	}
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, "range error", chrono.KindRange.String())
	assert.Equal(t, chrono.Kind(0), chrono.KindOf(errors.New("plain")))
	assert.False(t, errors.Is(chrono.ErrRange, chrono.ErrParse))
}
