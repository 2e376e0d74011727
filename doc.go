/*
Package chrono implements the datetime and timedelta values that the
starlarkchrono module exposes to Starlark scripts.

A Moment is an instant with a fixed UTC offset; a Span is a signed
duration. Both are plain values with pure methods. Scripts, however, see
them through shared handles (MomentHandle, SpanHandle) so that every alias
of a value observes mutations made through any other:

	m, _ := chrono.FromEpoch(618658211, chrono.Seconds)
	d, _ := chrono.DeltaDays(2)
	_ = m.AddSpan(d)
	m.ToRFC3339() // "1989-08-11T09:30:11+00:00"

Failed operations return an *Error whose Kind classifies the failure and
leave the receiver unchanged. Use errors.Is with ErrRange, ErrFieldRange,
ErrParse, ErrInvalidOffset, ErrInvalidTimezone or ErrConfig to test for a
kind.

Handles are single-goroutine by default. Build with -tags chrono_sync for
handles that may be shared between goroutines.
*/
package chrono // import "github.com/starlark-chrono/chrono"
