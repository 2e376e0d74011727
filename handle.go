package chrono

import "time"

// A MomentHandle is a shared reference to a Moment. Handles returned by
// Alias share the same cell, and every mutation is visible through all of
// them. Mutations are all-or-nothing: a failed operation leaves the
// Moment as it was.
type MomentHandle struct {
	cell *Shared[Moment]
}

// NewMomentHandle wraps m in a new cell.
func NewMomentHandle(m Moment) *MomentHandle {
	return &MomentHandle{cell: NewShared(m)}
}

// NowUTC returns a handle to the current instant at offset zero.
func NowUTC() *MomentHandle {
	return NewMomentHandle(clockMoment(now().UTC()))
}

// NowLocal returns a handle to the current instant at the local offset.
func NowLocal() *MomentHandle {
	return NewMomentHandle(clockMoment(now().In(LocalFunc())))
}

// clockMoment converts a clock reading without range checking; reading
// the clock always succeeds.
func clockMoment(t time.Time) Moment {
	_, off := t.Zone()
	return Moment{sec: t.Unix(), nsec: int32(t.Nanosecond()), offset: wholeMinutes(off)}
}

// FromEpoch returns a handle to the instant v units after the Unix epoch.
func FromEpoch(v int64, unit Unit) (*MomentHandle, error) {
	return wrapMoment(MomentFromEpoch(v, unit))
}

// FromRFC2822 parses an RFC 2822 date.
func FromRFC2822(text string) (*MomentHandle, error) {
	return wrapMoment(ParseRFC2822(text))
}

// FromRFC3339 parses an RFC 3339 timestamp.
func FromRFC3339(text string) (*MomentHandle, error) {
	return wrapMoment(ParseRFC3339(text))
}

// FromPattern parses text with a strftime pattern.
func FromPattern(text, pattern string) (*MomentHandle, error) {
	return wrapMoment(ParsePattern(text, pattern))
}

func wrapMoment(m Moment, err error) (*MomentHandle, error) {
	if err != nil {
		return nil, err
	}
	return NewMomentHandle(m), nil
}

// Alias returns another reference to the same Moment.
func (h *MomentHandle) Alias() *MomentHandle {
	return &MomentHandle{cell: h.cell.Retain()}
}

// Release drops this reference and returns how many remain.
func (h *MomentHandle) Release() int { return h.cell.Release() }

// Refs returns the number of live references to the Moment.
func (h *MomentHandle) Refs() int { return h.cell.Refs() }

// Same reports whether h and o refer to the same Moment.
func (h *MomentHandle) Same(o *MomentHandle) bool { return h.cell == o.cell }

// Get returns a copy of the current Moment.
func (h *MomentHandle) Get() Moment { return h.cell.Get() }

// Copy returns a handle to an independent copy of the Moment.
func (h *MomentHandle) Copy() *MomentHandle { return NewMomentHandle(h.Get()) }

func (h *MomentHandle) String() string { return h.Get().ToRFC3339() }

func (h *MomentHandle) update(fn func(Moment) (Moment, error)) error {
	return h.cell.Update(func(m *Moment) error {
		n, err := fn(*m)
		if err != nil {
			return err
		}
		*m = n
		return nil
	})
}

// Field returns the value of field f.
func (h *MomentHandle) Field(f Field) int64 { return h.Get().Get(f) }

// SetField sets field f to v, holding the other fields and the offset
// constant.
func (h *MomentHandle) SetField(f Field, v int64) error {
	return h.update(func(m Moment) (Moment, error) { return m.With(f, v) })
}

// TimeOfDay returns the wall clock as "HH:MM:SS".
func (h *MomentHandle) TimeOfDay() string { return h.Get().TimeOfDay() }

// SetTimeOfDay sets hour, minute and second from "HH:MM:SS". See
// Moment.WithTimeOfDay for the lenient parsing rules.
func (h *MomentHandle) SetTimeOfDay(s string) error {
	return h.update(func(m Moment) (Moment, error) { return m.WithTimeOfDay(s) })
}

// Timezone returns the offset as "+HH:MM".
func (h *MomentHandle) Timezone() string { return h.Get().Timezone() }

// SetTimezone resolves tz and moves the Moment to that offset.
func (h *MomentHandle) SetTimezone(tz string) error {
	return h.update(func(m Moment) (Moment, error) { return m.WithTimezone(tz) })
}

// ToRFC3339 renders the Moment in RFC 3339 form.
func (h *MomentHandle) ToRFC3339() string { return h.Get().ToRFC3339() }

// ToRFC2822 renders the Moment in RFC 2822 form.
func (h *MomentHandle) ToRFC2822() string { return h.Get().ToRFC2822() }

// Format renders the Moment with a strftime pattern.
func (h *MomentHandle) Format(pattern string) string { return h.Get().Format(pattern) }

// FormatLocale renders the Moment with a strftime pattern and localized
// names.
func (h *MomentHandle) FormatLocale(pattern, locale string) (string, error) {
	return h.Get().FormatLocale(pattern, locale)
}

// Timestamp returns seconds since the Unix epoch.
func (h *MomentHandle) Timestamp() int64 { return h.Get().Timestamp() }

// TimestampMillis returns milliseconds since the Unix epoch.
func (h *MomentHandle) TimestampMillis() int64 { return h.Get().TimestampMillis() }

// TimestampMicros returns microseconds since the Unix epoch.
func (h *MomentHandle) TimestampMicros() int64 { return h.Get().TimestampMicros() }

// TimestampNanos returns nanoseconds since the Unix epoch.
func (h *MomentHandle) TimestampNanos() (int64, error) { return h.Get().TimestampNanos() }

// TimestampSubsecMillis returns the milliseconds past the whole second.
func (h *MomentHandle) TimestampSubsecMillis() int64 { return h.Get().TimestampSubsecMillis() }

// TimestampSubsecMicros returns the microseconds past the whole second.
func (h *MomentHandle) TimestampSubsecMicros() int64 { return h.Get().TimestampSubsecMicros() }

// TimestampSubsecNanos returns the nanoseconds past the whole second.
func (h *MomentHandle) TimestampSubsecNanos() int64 { return h.Get().TimestampSubsecNanos() }

// AddSpan moves the Moment forward by s.
func (h *MomentHandle) AddSpan(s *SpanHandle) error {
	d := s.Get()
	return h.update(func(m Moment) (Moment, error) { return m.AddSpan(d) })
}

// SubtractSpan moves the Moment back by s.
func (h *MomentHandle) SubtractSpan(s *SpanHandle) error {
	d := s.Get()
	return h.update(func(m Moment) (Moment, error) { return m.SubSpan(d) })
}

// Diff returns a new Span handle holding h minus o.
func (h *MomentHandle) Diff(o *MomentHandle) *SpanHandle {
	other := o.Get()
	return NewSpanHandle(h.Get().Sub(other))
}

// Compare is an alias of Diff.
func (h *MomentHandle) Compare(o *MomentHandle) *SpanHandle { return h.Diff(o) }

// DurationSince is an alias of Diff.
func (h *MomentHandle) DurationSince(o *MomentHandle) *SpanHandle { return h.Diff(o) }

// YearsSince returns the whole years from o to h: positive when h is
// the later of the two, negative when it is the earlier.
func (h *MomentHandle) YearsSince(o *MomentHandle) int64 {
	base := o.Get()
	return h.Get().YearsSince(base)
}

// YearsSinceNow is YearsSince measured against the current clock. A
// Moment in the past therefore reports a negative age.
func (h *MomentHandle) YearsSinceNow() int64 { return h.YearsSinceAt(now()) }

// YearsSinceAt is YearsSinceNow for a clock reading taken elsewhere, such
// as a per-script clock.
func (h *MomentHandle) YearsSinceAt(t time.Time) int64 {
	return h.Get().YearsSince(clockMoment(t))
}

// A SpanHandle is a shared reference to a Span, with the same aliasing
// and all-or-nothing mutation rules as MomentHandle.
type SpanHandle struct {
	cell *Shared[Span]
}

// NewSpanHandle wraps s in a new cell.
func NewSpanHandle(s Span) *SpanHandle {
	return &SpanHandle{cell: NewShared(s)}
}

// DeltaZero returns a handle to a zero Span.
func DeltaZero() *SpanHandle { return NewSpanHandle(Span{}) }

// DeltaMin returns a handle to MinSpan.
func DeltaMin() *SpanHandle { return NewSpanHandle(MinSpan) }

// DeltaMax returns a handle to MaxSpan.
func DeltaMax() *SpanHandle { return NewSpanHandle(MaxSpan) }

// DeltaSeconds returns a handle to a Span of n seconds.
func DeltaSeconds(n int64) (*SpanHandle, error) { return wrapSpan(SpanOfSeconds(n)) }

// DeltaSecondsNanos returns a handle to a Span of secs seconds and nanos
// nanoseconds.
func DeltaSecondsNanos(secs, nanos int64) (*SpanHandle, error) {
	return wrapSpan(NewSpan(secs, nanos))
}

// DeltaMinutes returns a handle to a Span of n minutes.
func DeltaMinutes(n int64) (*SpanHandle, error) { return wrapSpan(SpanOfMinutes(n)) }

// DeltaHours returns a handle to a Span of n hours.
func DeltaHours(n int64) (*SpanHandle, error) { return wrapSpan(SpanOfHours(n)) }

// DeltaDays returns a handle to a Span of n days.
func DeltaDays(n int64) (*SpanHandle, error) { return wrapSpan(SpanOfDays(n)) }

// DeltaWeeks returns a handle to a Span of n weeks.
func DeltaWeeks(n int64) (*SpanHandle, error) { return wrapSpan(SpanOfWeeks(n)) }

// DeltaMillis returns a handle to a Span of n milliseconds.
func DeltaMillis(n int64) (*SpanHandle, error) { return wrapSpan(SpanOfMillis(n)) }

// DeltaMicros returns a handle to a Span of n microseconds. It cannot fail.
func DeltaMicros(n int64) *SpanHandle { return NewSpanHandle(SpanOfMicros(n)) }

// DeltaNanos returns a handle to a Span of n nanoseconds. It cannot fail.
func DeltaNanos(n int64) *SpanHandle { return NewSpanHandle(SpanOfNanos(n)) }

func wrapSpan(s Span, err error) (*SpanHandle, error) {
	if err != nil {
		return nil, err
	}
	return NewSpanHandle(s), nil
}

// Alias returns another reference to the same Span.
func (h *SpanHandle) Alias() *SpanHandle {
	return &SpanHandle{cell: h.cell.Retain()}
}

// Release drops this reference and returns how many remain.
func (h *SpanHandle) Release() int { return h.cell.Release() }

// Refs returns the number of live references to the Span.
func (h *SpanHandle) Refs() int { return h.cell.Refs() }

// Same reports whether h and o refer to the same Span.
func (h *SpanHandle) Same(o *SpanHandle) bool { return h.cell == o.cell }

// Get returns a copy of the current Span.
func (h *SpanHandle) Get() Span { return h.cell.Get() }

// Copy returns a handle to an independent copy of the Span.
func (h *SpanHandle) Copy() *SpanHandle { return NewSpanHandle(h.Get()) }

func (h *SpanHandle) String() string { return h.Get().String() }

func (h *SpanHandle) update(fn func(Span) (Span, error)) error {
	return h.cell.Update(func(s *Span) error {
		n, err := fn(*s)
		if err != nil {
			return err
		}
		*s = n
		return nil
	})
}

// Add adds o to the Span in place. o may be h itself.
func (h *SpanHandle) Add(o *SpanHandle) error {
	d := o.Get()
	return h.update(func(s Span) (Span, error) { return s.Add(d) })
}

// Subtract subtracts o from the Span in place. o may be h itself.
func (h *SpanHandle) Subtract(o *SpanHandle) error {
	d := o.Get()
	return h.update(func(s Span) (Span, error) { return s.Sub(d) })
}

// Abs replaces the Span with its magnitude.
func (h *SpanHandle) Abs() {
	_ = h.update(func(s Span) (Span, error) { return s.Abs(), nil })
}

// IsZero reports whether the Span has zero length.
func (h *SpanHandle) IsZero() bool { return h.Get().IsZero() }

// Seconds returns whole seconds, truncated toward zero.
func (h *SpanHandle) Seconds() int64 { return h.Get().Seconds() }

// Minutes returns whole minutes, truncated toward zero.
func (h *SpanHandle) Minutes() int64 { return h.Get().Minutes() }

// Hours returns whole hours, truncated toward zero.
func (h *SpanHandle) Hours() int64 { return h.Get().Hours() }

// Days returns whole days, truncated toward zero.
func (h *SpanHandle) Days() int64 { return h.Get().Days() }

// Weeks returns whole weeks, truncated toward zero.
func (h *SpanHandle) Weeks() int64 { return h.Get().Weeks() }

// Milliseconds returns whole milliseconds, truncated toward zero.
func (h *SpanHandle) Milliseconds() int64 { return h.Get().Milliseconds() }

// Microseconds returns whole microseconds, or a range error on overflow.
func (h *SpanHandle) Microseconds() (int64, error) { return h.Get().Microseconds() }

// Nanoseconds returns the length in nanoseconds, or a range error on
// overflow.
func (h *SpanHandle) Nanoseconds() (int64, error) { return h.Get().Nanoseconds() }

// SubsecNanos returns the signed fractional second in nanoseconds.
func (h *SpanHandle) SubsecNanos() int64 { return int64(h.Get().SubsecNanos()) }
