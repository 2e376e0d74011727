package chrono

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/goodsign/monday"
	"github.com/itchyny/timefmt-go"
	"golang.org/x/text/language"
)

const (
	rfc3339Layout = "2006-01-02T15:04:05"
	rfc2822Layout = "Mon, 02 Jan 2006 15:04:05 -0700"
)

// ToRFC3339 renders m as e.g. "1989-08-09T09:30:11+00:00". Fractional
// seconds are written only when present, with 3, 6 or 9 digits.
func (m Moment) ToRFC3339() string {
	t := m.Time()
	var b strings.Builder
	b.WriteString(t.Format(rfc3339Layout))
	switch ns := m.nsec; {
	case ns == 0:
	case ns%nanosPerMilli == 0:
		fmt.Fprintf(&b, ".%03d", ns/nanosPerMilli)
	case ns%nanosPerMicro == 0:
		fmt.Fprintf(&b, ".%06d", ns/nanosPerMicro)
	default:
		fmt.Fprintf(&b, ".%09d", ns)
	}
	b.WriteString(FormatOffset(int(m.offset)))
	return b.String()
}

// ToRFC2822 renders m as e.g. "Wed, 09 Aug 1989 09:30:11 +0000".
func (m Moment) ToRFC2822() string {
	return m.Time().Format(rfc2822Layout)
}

// Format renders m with a strftime pattern. Unknown directives are
// written through literally.
func (m Moment) Format(pattern string) string {
	return timefmt.Format(m.Time(), pattern)
}

// localized maps the directives that carry names onto the reference
// layout monday translates.
var localized = map[byte]string{
	'A': "Monday",
	'a': "Mon",
	'B': "January",
	'b': "Jan",
	'h': "Jan",
}

// composite holds the directives that expand to several others including
// names, as timefmt expands them.
var composite = map[byte]string{
	'c': "%a %b %e %H:%M:%S %Y",
	'+': "%a %b %e %H:%M:%S %Z %Y",
	'v': "%e-%b-%Y",
}

// FormatLocale is Format with weekday and month names rendered for the
// given locale, written as "fr_FR", "fr-FR" or a bare language such as
// "de". It fails with a config error for locales it has no names for.
func (m Moment) FormatLocale(pattern, locale string) (string, error) {
	loc, err := lookupLocale(locale)
	if err != nil {
		return "", err
	}
	return formatNames(m.Time(), pattern, loc), nil
}

func formatNames(t time.Time, pattern string, loc monday.Locale) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i+1 == len(pattern) {
			b.WriteByte(pattern[i])
			continue
		}
		j := directiveEnd(pattern, i+1)
		flags, verb := pattern[i+1:j-1], pattern[j-1]
		if parts, ok := composite[verb]; ok {
			s := formatNames(t, parts, loc)
			if strings.IndexByte(flags, '^') >= 0 {
				s = strings.ToUpper(s)
			}
			b.WriteString(s)
		} else if layout, ok := localized[verb]; ok {
			b.WriteString(applyFlags(monday.Format(t, layout, loc), flags))
		} else {
			b.WriteString(timefmt.Format(t, pattern[i:j]))
		}
		i = j - 1
	}
	return b.String()
}

// applyFlags applies the case flags and the width of a name directive.
// '^' upper-cases; '#' swaps an all-capital name to lower case and
// upper-cases any other. Names are padded with spaces, or zeros after
// the '0' flag.
func applyFlags(s, flags string) string {
	pad, width := ' ', 0
	for k := 0; k < len(flags); k++ {
		switch c := flags[k]; {
		case c == '^':
			s = strings.ToUpper(s)
		case c == '#':
			if s == strings.ToUpper(s) {
				s = strings.ToLower(s)
			} else {
				s = strings.ToUpper(s)
			}
		case c == '0' && width == 0:
			pad = '0'
		case c == '_' || c == '-':
			pad = ' '
		case c >= '0' && c <= '9':
			width = width*10 + int(c-'0')
		}
	}
	if n := utf8.RuneCountInString(s); n < width {
		s = strings.Repeat(string(pad), width-n) + s
	}
	return s
}

// directiveEnd returns the index just past the directive whose flags and
// width start at pattern[i].
func directiveEnd(pattern string, i int) int {
	for i < len(pattern) && strings.IndexByte("-_0^#:", pattern[i]) >= 0 {
		i++
	}
	for i < len(pattern) && pattern[i] >= '0' && pattern[i] <= '9' {
		i++
	}
	if i < len(pattern) {
		i++
	}
	return i
}

var (
	localesOnce sync.Once
	locales     map[monday.Locale]bool
)

func lookupLocale(id string) (monday.Locale, error) {
	localesOnce.Do(func() {
		locales = make(map[monday.Locale]bool)
		for _, l := range monday.ListLocales() {
			locales[l] = true
		}
	})
	switch strings.ToUpper(id) {
	case "C", "POSIX":
		return monday.LocaleEnUS, nil
	}
	if locales[monday.Locale(id)] {
		return monday.Locale(id), nil
	}
	if tag, err := language.Parse(id); err == nil {
		base, _ := tag.Base()
		region, _ := tag.Region()
		l := monday.Locale(base.String() + "_" + region.String())
		if locales[l] {
			return l, nil
		}
	}
	return "", &Error{Kind: KindConfig, Op: "format", Msg: fmt.Sprintf("unsupported locale %q", id)}
}

// Timestamp returns the number of whole seconds since the Unix epoch,
// rounding toward negative infinity.
func (m Moment) Timestamp() int64 { return m.sec }

// TimestampMillis returns milliseconds since the Unix epoch.
func (m Moment) TimestampMillis() int64 {
	return m.sec*millisPerSec + int64(m.nsec)/nanosPerMilli
}

// TimestampMicros returns microseconds since the Unix epoch.
func (m Moment) TimestampMicros() int64 {
	return m.sec*microsPerSec + int64(m.nsec)/nanosPerMicro
}

// TimestampNanos returns nanoseconds since the Unix epoch. This only fits
// in an int64 between 1677-09-21 and 2262-04-11, a narrower window than a
// Moment covers, so it fails with a range error outside it.
func (m Moment) TimestampNanos() (int64, error) {
	sec, nsec := m.sec, int64(m.nsec)
	if sec < 0 && nsec > 0 {
		sec++
		nsec -= nanosPerSecond
	}
	if sec > math.MaxInt64/nanosPerSecond || sec < math.MinInt64/nanosPerSecond {
		return 0, rangeError("timestamp_nanos", "timestamp out of range")
	}
	v, ok := addInt64(sec*nanosPerSecond, nsec)
	if !ok {
		return 0, rangeError("timestamp_nanos", "timestamp out of range")
	}
	return v, nil
}

// TimestampSubsecMillis returns the milliseconds since the last whole second.
func (m Moment) TimestampSubsecMillis() int64 { return int64(m.nsec) / nanosPerMilli }

// TimestampSubsecMicros returns the microseconds since the last whole second.
func (m Moment) TimestampSubsecMicros() int64 { return int64(m.nsec) / nanosPerMicro }

// TimestampSubsecNanos returns the nanoseconds since the last whole second.
func (m Moment) TimestampSubsecNanos() int64 { return int64(m.nsec) }
