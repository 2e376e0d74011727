package chrono

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinYear and MaxYear bound the calendar years a Moment may fall in,
	// measured in UTC.
	MinYear = -262143
	MaxYear = 262142
)

var (
	minUnix = time.Date(MinYear, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxUnix = time.Date(MaxYear, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// A Moment is an instant in time together with a fixed UTC offset.
//
// The offset is a snapshot: once a named zone has been resolved, only the
// offset it observed at that instant is kept, and later changes to the
// calendar fields do not re-resolve daylight saving transitions.
//
// The zero Moment is the Unix epoch at offset zero.
type Moment struct {
	sec    int64 // seconds since the Unix epoch
	nsec   int32 // [0, 1e9)
	offset int32 // seconds east of UTC, a whole number of minutes
}

// wholeMinutes truncates an offset in seconds toward zero to whole
// minutes. Local mean time offsets such as -07:33:52 have no RFC 3339
// form, so they are kept as -07:33.
func wholeMinutes(offset int) int32 { return int32(offset / 60 * 60) }

// MomentOf returns the Moment for t, keeping the offset t's location
// observes at that instant, truncated to whole minutes.
func MomentOf(t time.Time) (Moment, error) {
	_, off := t.Zone()
	m := Moment{sec: t.Unix(), nsec: int32(t.Nanosecond()), offset: wholeMinutes(off)}
	if !m.inRange() {
		return Moment{}, rangeError("datetime", "timestamp out of range")
	}
	return m, nil
}

func (m Moment) inRange() bool { return m.sec >= minUnix && m.sec <= maxUnix }

// Time returns m as a time.Time in a fixed zone carrying m's offset.
func (m Moment) Time() time.Time {
	return time.Unix(m.sec, int64(m.nsec)).In(fixedZone(int(m.offset)))
}

// Offset returns m's offset from UTC in seconds.
func (m Moment) Offset() int { return int(m.offset) }

// Equal reports whether m and n denote the same instant and offset.
func (m Moment) Equal(n Moment) bool { return m == n }

// Compare orders instants, ignoring offsets.
func (m Moment) Compare(n Moment) int {
	switch {
	case m.sec < n.sec:
		return -1
	case m.sec > n.sec:
		return 1
	case m.nsec < n.nsec:
		return -1
	case m.nsec > n.nsec:
		return 1
	}
	return 0
}

// String returns m in RFC 3339 form.
func (m Moment) String() string { return m.ToRFC3339() }

// WithOffset returns the same instant observed at offset seconds east of
// UTC, truncated to whole minutes.
func (m Moment) WithOffset(offset int) Moment {
	m.offset = wholeMinutes(offset)
	return m
}

// Year returns the calendar year in m's offset.
func (m Moment) Year() int { return m.Time().Year() }

// Month returns the month, 1 to 12.
func (m Moment) Month() int { return int(m.Time().Month()) }

// Month0 returns the month, 0 to 11.
func (m Moment) Month0() int { return m.Month() - 1 }

// Day returns the day of the month, starting at 1.
func (m Moment) Day() int { return m.Time().Day() }

// Day0 returns the day of the month, starting at 0.
func (m Moment) Day0() int { return m.Day() - 1 }

// Ordinal returns the day of the year, starting at 1.
func (m Moment) Ordinal() int { return m.Time().YearDay() }

// Ordinal0 returns the day of the year, starting at 0.
func (m Moment) Ordinal0() int { return m.Ordinal() - 1 }

// Hour returns the hour, 0 to 23.
func (m Moment) Hour() int { return m.Time().Hour() }

// Minute returns the minute, 0 to 59.
func (m Moment) Minute() int { return m.Time().Minute() }

// Second returns the second, 0 to 59.
func (m Moment) Second() int { return m.Time().Second() }

// Nanosecond returns the nanosecond within the second.
func (m Moment) Nanosecond() int { return int(m.nsec) }

// Weekday returns the ISO weekday, Monday=1 to Sunday=7.
func (m Moment) Weekday() int {
	wd := m.Time().Weekday()
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// TimeOfDay renders the wall clock as "HH:MM:SS".
func (m Moment) TimeOfDay() string {
	return m.Time().Format("15:04:05")
}

// civil is the broken-down wall clock of a Moment in its own offset.
type civil struct {
	year                    int
	month                   time.Month
	day, hour, min, sec, ns int
}

func (m Moment) civil() civil {
	t := m.Time()
	return civil{
		year: t.Year(), month: t.Month(), day: t.Day(),
		hour: t.Hour(), min: t.Minute(), sec: t.Second(), ns: t.Nanosecond(),
	}
}

func (m Moment) fromCivil(op string, c civil) (Moment, error) {
	t := time.Date(c.year, c.month, c.day, c.hour, c.min, c.sec, c.ns, fixedZone(int(m.offset)))
	n := Moment{sec: t.Unix(), nsec: int32(t.Nanosecond()), offset: m.offset}
	if !n.inRange() {
		return m, rangeError(op, "timestamp out of range")
	}
	return n, nil
}

// WithYear returns m with its year replaced. It fails if the current
// month and day do not exist in that year (February 29).
func (m Moment) WithYear(year int64) (Moment, error) {
	const op, field = "with_year", "year"
	if year < MinYear || year > MaxYear {
		return m, fieldError(op, field, year)
	}
	c := m.civil()
	if c.day > daysIn(c.month, int(year)) {
		return m, fieldError(op, field, year)
	}
	c.year = int(year)
	return m.withCivil(op, field, year, c)
}

// WithMonth returns m with its month (1 to 12) replaced. It fails if the
// current day does not exist in that month.
func (m Moment) WithMonth(month int64) (Moment, error) {
	return m.withMonth("with_month", "month", month, month)
}

// WithMonth0 is WithMonth counting months from 0.
func (m Moment) WithMonth0(month0 int64) (Moment, error) {
	return m.withMonth("with_month0", "month0", month0, month0+1)
}

func (m Moment) withMonth(op, field string, v, month int64) (Moment, error) {
	if month < 1 || month > 12 {
		return m, fieldError(op, field, v)
	}
	c := m.civil()
	if c.day > daysIn(time.Month(month), c.year) {
		return m, fieldError(op, field, v)
	}
	c.month = time.Month(month)
	return m.withCivil(op, field, v, c)
}

// WithDay returns m with its day of the month (starting at 1) replaced.
func (m Moment) WithDay(day int64) (Moment, error) {
	return m.withDay("with_day", "day", day, day)
}

// WithDay0 is WithDay counting days from 0.
func (m Moment) WithDay0(day0 int64) (Moment, error) {
	return m.withDay("with_day0", "day0", day0, day0+1)
}

func (m Moment) withDay(op, field string, v, day int64) (Moment, error) {
	c := m.civil()
	if day < 1 || day > int64(daysIn(c.month, c.year)) {
		return m, fieldError(op, field, v)
	}
	c.day = int(day)
	return m.withCivil(op, field, v, c)
}

// WithOrdinal returns m moved to the given day of its year, starting at 1.
func (m Moment) WithOrdinal(ordinal int64) (Moment, error) {
	return m.withOrdinal("with_ordinal", "ordinal", ordinal, ordinal)
}

// WithOrdinal0 is WithOrdinal counting days from 0.
func (m Moment) WithOrdinal0(ordinal0 int64) (Moment, error) {
	return m.withOrdinal("with_ordinal0", "ordinal0", ordinal0, ordinal0+1)
}

func (m Moment) withOrdinal(op, field string, v, ordinal int64) (Moment, error) {
	c := m.civil()
	if ordinal < 1 || ordinal > int64(daysInYear(c.year)) {
		return m, fieldError(op, field, v)
	}
	// time.Date normalizes January 0+ordinal into the right month and day.
	c.month, c.day = time.January, int(ordinal)
	return m.withCivil(op, field, v, c)
}

// WithHour returns m with its hour (0 to 23) replaced.
func (m Moment) WithHour(hour int64) (Moment, error) {
	const op, field = "with_hour", "hour"
	if hour < 0 || hour > 23 {
		return m, fieldError(op, field, hour)
	}
	c := m.civil()
	c.hour = int(hour)
	return m.withCivil(op, field, hour, c)
}

// WithMinute returns m with its minute (0 to 59) replaced.
func (m Moment) WithMinute(minute int64) (Moment, error) {
	const op, field = "with_minute", "minute"
	if minute < 0 || minute > 59 {
		return m, fieldError(op, field, minute)
	}
	c := m.civil()
	c.min = int(minute)
	return m.withCivil(op, field, minute, c)
}

// WithSecond returns m with its second (0 to 59) replaced.
func (m Moment) WithSecond(second int64) (Moment, error) {
	const op, field = "with_second", "second"
	if second < 0 || second > 59 {
		return m, fieldError(op, field, second)
	}
	c := m.civil()
	c.sec = int(second)
	return m.withCivil(op, field, second, c)
}

// WithNanosecond returns m with its nanosecond replaced. Leap seconds are
// not modelled, so the value must be below one second.
func (m Moment) WithNanosecond(ns int64) (Moment, error) {
	const op, field = "with_nanosecond", "nanosecond"
	if ns < 0 || ns >= nanosPerSecond {
		return m, fieldError(op, field, ns)
	}
	m.nsec = int32(ns)
	return m, nil
}

// WithTimeOfDay sets hour, minute and second from a colon-delimited
// string. Missing trailing segments and segments that do not parse as
// integers count as zero; the resulting values are still range checked.
func (m Moment) WithTimeOfDay(s string) (Moment, error) {
	const op = "with_time"
	var hms [3]int64
	for i, part := range strings.SplitN(s, ":", 3) {
		v, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			v = 0
		}
		hms[i] = v
	}
	fields := [3]string{"hour", "minute", "second"}
	limits := [3]int64{23, 59, 59}
	for i, v := range hms {
		if v < 0 || v > limits[i] {
			return m, fieldError(op, fields[i], v)
		}
	}
	c := m.civil()
	c.hour, c.min, c.sec = int(hms[0]), int(hms[1]), int(hms[2])
	return m.fromCivil(op, c)
}

func (m Moment) withCivil(op, field string, v int64, c civil) (Moment, error) {
	n, err := m.fromCivil(op, c)
	if err != nil {
		return m, fieldError(op, field, v)
	}
	return n, nil
}

// AddSpan returns m+s, or a range error if the result leaves the
// supported instant range.
func (m Moment) AddSpan(s Span) (Moment, error) {
	return m.addSpan("add", s)
}

// SubSpan returns m-s, or a range error if the result leaves the
// supported instant range.
func (m Moment) SubSpan(s Span) (Moment, error) {
	return m.addSpan("sub", s.Neg())
}

func (m Moment) addSpan(op string, s Span) (Moment, error) {
	sec, ok := addInt64(m.sec, s.secs)
	if !ok {
		return m, rangeError(op, "timestamp out of range")
	}
	nsec := m.nsec + s.nanos
	if nsec >= nanosPerSecond {
		nsec -= nanosPerSecond
		sec++
	}
	n := Moment{sec: sec, nsec: nsec, offset: m.offset}
	if !n.inRange() {
		return m, rangeError(op, "timestamp out of range")
	}
	return n, nil
}

// Sub returns the Span m-n. Both instants lie within the supported range,
// so the difference always fits in a Span.
func (m Moment) Sub(n Moment) Span {
	secs := m.sec - n.sec
	nanos := m.nsec - n.nsec
	if nanos < 0 {
		nanos += nanosPerSecond
		secs--
	}
	return Span{secs: secs, nanos: nanos}
}

// YearsSince returns the number of whole calendar years between base and
// m: positive when m is after base, negative when m is before it.
func (m Moment) YearsSince(base Moment) int64 {
	if m.Compare(base) >= 0 {
		return wholeYears(base, m)
	}
	return -wholeYears(m, base)
}

// wholeYears counts full years from the earlier instant a to the later
// instant b, comparing wall clocks in UTC.
func wholeYears(a, b Moment) int64 {
	ta, tb := a.Time().UTC(), b.Time().UTC()
	years := int64(tb.Year() - ta.Year())
	if years == 0 {
		return 0
	}
	if monthDayClock(tb) < monthDayClock(ta) {
		years--
	}
	return years
}

func monthDayClock(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d%02d%02d%09d",
		t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
