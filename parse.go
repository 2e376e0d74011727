package chrono

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
)

// Unit is the resolution of an epoch value.
type Unit int

const (
	Seconds Unit = iota
	Millis
	Micros
	Nanos
)

var unitNames = [...]string{
	Seconds: "seconds",
	Millis:  "millis",
	Micros:  "micros",
	Nanos:   "nanos",
}

func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// MomentFromEpoch converts v, counted in unit since the Unix epoch, to a
// Moment at offset zero. Nanosecond values always fit; the other units
// fail with a range error outside the supported instant range.
func MomentFromEpoch(v int64, unit Unit) (Moment, error) {
	var m Moment
	switch unit {
	case Seconds:
		m = Moment{sec: v}
	case Millis:
		m = Moment{sec: floorDiv(v, millisPerSec), nsec: int32(floorMod(v, millisPerSec) * nanosPerMilli)}
	case Micros:
		m = Moment{sec: floorDiv(v, microsPerSec), nsec: int32(floorMod(v, microsPerSec) * nanosPerMicro)}
	case Nanos:
		return Moment{sec: floorDiv(v, nanosPerSecond), nsec: int32(floorMod(v, nanosPerSecond))}, nil
	default:
		return Moment{}, &Error{Kind: KindConfig, Op: "from_epoch", Msg: fmt.Sprintf("unknown unit %s", unit)}
	}
	if !m.inRange() {
		return Moment{}, rangeError("datetime_"+epochOps[unit], "timestamp out of range")
	}
	return m, nil
}

var epochOps = [...]string{Seconds: "unix", Millis: "millis", Micros: "micros", Nanos: "nanos"}

// obsZones maps the RFC 2822 obsolete zone names to numeric offsets.
// Single military letters other than J all read as +0000.
var obsZones = map[string]string{
	"UT":  "+0000",
	"GMT": "+0000",
	"Z":   "+0000",
	"EST": "-0500",
	"EDT": "-0400",
	"CST": "-0600",
	"CDT": "-0500",
	"MST": "-0700",
	"MDT": "-0600",
	"PST": "-0800",
	"PDT": "-0700",
}

// numericZone replaces a trailing obsolete zone name in text with its
// numeric offset, since net/mail resolves abbreviations against the host
// zone database.
func numericZone(text string) string {
	s := strings.TrimRight(text, " \t\r\n")
	i := strings.LastIndexAny(s, " \t")
	if i < 0 {
		return text
	}
	tok := strings.ToUpper(s[i+1:])
	if off, ok := obsZones[tok]; ok {
		return s[:i+1] + off
	}
	if len(tok) == 1 && tok[0] >= 'A' && tok[0] <= 'Z' && tok[0] != 'J' {
		return s[:i+1] + "+0000"
	}
	return text
}

// ParseRFC2822 parses an RFC 2822 date such as
// "Wed, 9 Aug 1989 09:30:11 +0000". The weekday is optional. The
// obsolete zone names (UT, GMT, EST, PDT and the military letters) map to
// their fixed offsets regardless of the host zone.
func ParseRFC2822(text string) (Moment, error) {
	const op = "datetime_rfc2822"
	t, err := mail.ParseDate(numericZone(text))
	if err != nil {
		return Moment{}, parseError(op, text, "", err)
	}
	if wd, _, ok := strings.Cut(strings.TrimSpace(text), ","); ok {
		if want := t.Weekday().String()[:3]; !strings.EqualFold(strings.TrimSpace(wd), want) {
			return Moment{}, parseError(op, text, "", fmt.Errorf("weekday %q does not match %s", wd, want))
		}
	}
	m, err := MomentOf(t)
	if err != nil {
		return Moment{}, parseError(op, text, "", err)
	}
	return m, nil
}

// ParseRFC3339 parses an RFC 3339 timestamp, keeping its offset.
func ParseRFC3339(text string) (Moment, error) {
	const op = "datetime_rfc3339"
	t, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return Moment{}, parseError(op, text, "", err)
	}
	m, err := MomentOf(t)
	if err != nil {
		return Moment{}, parseError(op, text, "", err)
	}
	return m, nil
}

// yearDirectives are the strftime directives that set the year.
const yearDirectives = "YyCGgFDcxs"

// ParsePattern parses text with a strftime pattern. Fields the pattern
// does not mention default to the Unix epoch: 1970-01-01, midnight, UTC.
// The result is the parsed wall clock read as UTC. An offset matched by
// %z or %Z is validated but not applied, and %s yields its UTC wall clock.
func ParsePattern(text, pattern string) (Moment, error) {
	const op = "datetime_parse"
	t, err := timefmt.Parse(text, pattern)
	if err != nil {
		return Moment{}, parseError(op, text, pattern, err)
	}
	if mentions(pattern, "s") {
		t = t.UTC()
	}
	year := t.Year()
	if !mentions(pattern, yearDirectives) {
		year = 1970
	}
	t = time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	m, err := MomentOf(t)
	if err != nil {
		return Moment{}, parseError(op, text, pattern, err)
	}
	return m, nil
}

// mentions reports whether pattern uses any of the directive letters in
// verbs, skipping flags and widths.
func mentions(pattern, verbs string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		j := directiveEnd(pattern, i+1)
		if verb := pattern[j-1]; j-1 > i && strings.IndexByte(verbs, verb) >= 0 {
			return true
		}
		i = j - 1
	}
	return false
}
