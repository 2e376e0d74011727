package chrono

import (
	"fmt"
	"math"
	"strings"
)

const (
	nanosPerMicro  = 1_000
	nanosPerMilli  = 1_000_000
	nanosPerSecond = 1_000_000_000
	millisPerSec   = 1_000
	microsPerSec   = 1_000_000

	secsPerMinute = 60
	secsPerHour   = 3_600
	secsPerDay    = 86_400
	secsPerWeek   = 604_800
)

// A Span is a signed duration that is independent of any calendar.
//
// It is stored as whole seconds plus a nanosecond remainder in [0, 1e9);
// the sign lives on the seconds. Its magnitude never exceeds
// math.MaxInt64 milliseconds.
type Span struct {
	secs  int64
	nanos int32
}

var (
	// MaxSpan is the largest representable Span: math.MaxInt64 milliseconds.
	MaxSpan = Span{
		secs:  math.MaxInt64 / millisPerSec,
		nanos: int32(math.MaxInt64%millisPerSec) * nanosPerMilli,
	}
	// MinSpan is the negation of MaxSpan.
	MinSpan = Span{
		secs:  -math.MaxInt64/millisPerSec - 1,
		nanos: nanosPerSecond + int32(-math.MaxInt64%millisPerSec)*nanosPerMilli,
	}
)

// ZeroSpan returns the zero-length Span.
func ZeroSpan() Span { return Span{} }

// NewSpan returns a Span of secs seconds and nanos nanoseconds. It fails
// if nanos is outside [0, 1e9) or the result exceeds the Span bounds.
func NewSpan(secs, nanos int64) (Span, error) {
	if nanos < 0 || nanos >= nanosPerSecond {
		return Span{}, rangeError("timedelta_seconds", "nanoseconds out of range")
	}
	s := Span{secs: secs, nanos: int32(nanos)}
	if !s.inBounds() {
		return Span{}, rangeError("timedelta_seconds", "delta out of range")
	}
	return s, nil
}

// SpanOfSeconds returns a Span of n seconds.
func SpanOfSeconds(n int64) (Span, error) { return spanOfUnit("timedelta_seconds", n, 1) }

// SpanOfMinutes returns a Span of n minutes.
func SpanOfMinutes(n int64) (Span, error) {
	return spanOfUnit("timedelta_minutes", n, secsPerMinute)
}

// SpanOfHours returns a Span of n hours.
func SpanOfHours(n int64) (Span, error) { return spanOfUnit("timedelta_hours", n, secsPerHour) }

// SpanOfDays returns a Span of n days of 86400 seconds.
func SpanOfDays(n int64) (Span, error) { return spanOfUnit("timedelta_days", n, secsPerDay) }

// SpanOfWeeks returns a Span of n weeks.
func SpanOfWeeks(n int64) (Span, error) { return spanOfUnit("timedelta_weeks", n, secsPerWeek) }

func spanOfUnit(op string, n, unit int64) (Span, error) {
	secs, ok := mulInt64(n, unit)
	if !ok {
		return Span{}, rangeError(op, "delta out of range")
	}
	s := Span{secs: secs}
	if !s.inBounds() {
		return Span{}, rangeError(op, "delta out of range")
	}
	return s, nil
}

// SpanOfMillis returns a Span of n milliseconds. Only math.MinInt64 is out
// of range.
func SpanOfMillis(n int64) (Span, error) {
	if n < -math.MaxInt64 {
		return Span{}, rangeError("timedelta_millis", "delta out of range")
	}
	return Span{
		secs:  floorDiv(n, millisPerSec),
		nanos: int32(floorMod(n, millisPerSec) * nanosPerMilli),
	}, nil
}

// SpanOfMicros returns a Span of n microseconds. Every int64 microsecond
// count is within bounds, so it cannot fail.
func SpanOfMicros(n int64) Span {
	return Span{
		secs:  floorDiv(n, microsPerSec),
		nanos: int32(floorMod(n, microsPerSec) * nanosPerMicro),
	}
}

// SpanOfNanos returns a Span of n nanoseconds. It cannot fail.
func SpanOfNanos(n int64) Span {
	return Span{
		secs:  floorDiv(n, nanosPerSecond),
		nanos: int32(floorMod(n, nanosPerSecond)),
	}
}

func (s Span) inBounds() bool {
	switch {
	case s.secs < MinSpan.secs || s.secs > MaxSpan.secs:
		return false
	case s.secs == MaxSpan.secs && s.nanos > MaxSpan.nanos:
		return false
	case s.secs == MinSpan.secs && s.nanos < MinSpan.nanos:
		return false
	}
	return true
}

// IsZero reports whether s has zero length.
func (s Span) IsZero() bool { return s.secs == 0 && s.nanos == 0 }

// Seconds returns the number of whole seconds in s, truncated toward zero.
func (s Span) Seconds() int64 {
	if s.secs < 0 && s.nanos > 0 {
		return s.secs + 1
	}
	return s.secs
}

// SubsecNanos returns the fractional part of s in nanoseconds, carrying
// the same sign as s.
func (s Span) SubsecNanos() int32 {
	if s.secs < 0 && s.nanos > 0 {
		return s.nanos - nanosPerSecond
	}
	return s.nanos
}

// Minutes returns the number of whole minutes in s.
func (s Span) Minutes() int64 { return s.Seconds() / secsPerMinute }

// Hours returns the number of whole hours in s.
func (s Span) Hours() int64 { return s.Seconds() / secsPerHour }

// Days returns the number of whole days in s.
func (s Span) Days() int64 { return s.Seconds() / secsPerDay }

// Weeks returns the number of whole weeks in s.
func (s Span) Weeks() int64 { return s.Seconds() / secsPerWeek }

// Milliseconds returns the number of whole milliseconds in s. The bounds
// guarantee this fits in an int64.
func (s Span) Milliseconds() int64 {
	return s.Seconds()*millisPerSec + int64(s.SubsecNanos()/nanosPerMilli)
}

// Microseconds returns the number of whole microseconds in s, or a range
// error if that count overflows an int64.
func (s Span) Microseconds() (int64, error) {
	v, ok := s.total(microsPerSec, nanosPerMicro)
	if !ok {
		return 0, rangeError("microseconds", "delta out of range")
	}
	return v, nil
}

// Nanoseconds returns the length of s in nanoseconds, or a range error if
// that count overflows an int64.
func (s Span) Nanoseconds() (int64, error) {
	v, ok := s.total(nanosPerSecond, 1)
	if !ok {
		return 0, rangeError("nanoseconds", "delta out of range")
	}
	return v, nil
}

func (s Span) total(perSec int64, nanosPerUnit int32) (int64, bool) {
	v, ok := mulInt64(s.Seconds(), perSec)
	if !ok {
		return 0, false
	}
	return addInt64(v, int64(s.SubsecNanos()/nanosPerUnit))
}

// Add returns s+t, or a range error if the sum exceeds the Span bounds.
func (s Span) Add(t Span) (Span, error) {
	secs, ok := addInt64(s.secs, t.secs)
	if !ok {
		return Span{}, rangeError("add", "delta out of range")
	}
	nanos := s.nanos + t.nanos
	if nanos >= nanosPerSecond {
		nanos -= nanosPerSecond
		if secs, ok = addInt64(secs, 1); !ok {
			return Span{}, rangeError("add", "delta out of range")
		}
	}
	r := Span{secs: secs, nanos: nanos}
	if !r.inBounds() {
		return Span{}, rangeError("add", "delta out of range")
	}
	return r, nil
}

// Sub returns s-t, or a range error if the difference exceeds the Span
// bounds.
func (s Span) Sub(t Span) (Span, error) {
	secs, ok := subInt64(s.secs, t.secs)
	if !ok {
		return Span{}, rangeError("sub", "delta out of range")
	}
	nanos := s.nanos - t.nanos
	if nanos < 0 {
		nanos += nanosPerSecond
		if secs, ok = subInt64(secs, 1); !ok {
			return Span{}, rangeError("sub", "delta out of range")
		}
	}
	r := Span{secs: secs, nanos: nanos}
	if !r.inBounds() {
		return Span{}, rangeError("sub", "delta out of range")
	}
	return r, nil
}

// Neg returns -s. The bounds are symmetric, so it cannot fail.
func (s Span) Neg() Span {
	if s.nanos == 0 {
		return Span{secs: -s.secs}
	}
	return Span{secs: -s.secs - 1, nanos: nanosPerSecond - s.nanos}
}

// Abs returns the magnitude of s.
func (s Span) Abs() Span {
	if s.secs < 0 {
		return s.Neg()
	}
	return s
}

// Compare returns -1, 0 or +1 as s is shorter than, equal to or longer
// than t.
func (s Span) Compare(t Span) int {
	switch {
	case s.secs < t.secs:
		return -1
	case s.secs > t.secs:
		return 1
	case s.nanos < t.nanos:
		return -1
	case s.nanos > t.nanos:
		return 1
	}
	return 0
}

// String renders s in ISO 8601 duration form, e.g. "PT1.5S" or "-P2D".
func (s Span) String() string {
	var b strings.Builder
	abs := s.Abs()
	if s.secs < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	days := abs.secs / secsPerDay
	secs := abs.secs % secsPerDay
	if days != 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if secs != 0 || abs.nanos != 0 || days == 0 {
		b.WriteByte('T')
		b.WriteString(fmt.Sprint(secs))
		if abs.nanos != 0 {
			frac := strings.TrimRight(fmt.Sprintf("%09d", abs.nanos), "0")
			b.WriteByte('.')
			b.WriteString(frac)
		}
		b.WriteByte('S')
	}
	return b.String()
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (c > a) == (b > 0) {
		return c, true
	}
	return 0, false
}

func subInt64(a, b int64) (int64, bool) {
	c := a - b
	if (c < a) == (b > 0) {
		return c, true
	}
	return 0, false
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (c < 0) != ((a < 0) != (b < 0)) || c/b != a {
		return 0, false
	}
	return c, true
}
