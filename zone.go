package chrono

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	// Embed the IANA database so zone names resolve on hosts without one.
	_ "time/tzdata"
)

// fixedZone returns a location with a constant offset, named after the
// offset the way Timezone reports it.
func fixedZone(offset int) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone(FormatOffset(offset), offset)
}

// FormatOffset renders an offset in seconds as "+HH:MM", or "+HH:MM:SS"
// when it is not a whole number of minutes.
func FormatOffset(offset int) string {
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	h, m, s := offset/3600, offset/60%60, offset%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}

// ParseOffset parses a fixed UTC offset written as "±HH:MM", "±HHMM" or
// "±HH" and returns it in seconds. Offsets must be less than a day.
func ParseOffset(s string) (int, error) {
	bad := &Error{Kind: KindInvalidOffset, Op: "timezone", Msg: fmt.Sprintf("invalid offset %q", s)}
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') {
		return 0, bad
	}
	digits := strings.Replace(s[1:], ":", "", 1)
	if len(digits) != 2 && len(digits) != 4 {
		return 0, bad
	}
	if strings.Contains(s[1:], ":") && (len(s) != 6 || s[3] != ':') {
		return 0, bad
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, bad
		}
	}
	h, _ := strconv.Atoi(digits[:2])
	m := 0
	if len(digits) == 4 {
		m, _ = strconv.Atoi(digits[2:])
	}
	if h > 23 || m > 59 {
		return 0, bad
	}
	offset := h*3600 + m*60
	if s[0] == '-' {
		offset = -offset
	}
	return offset, nil
}

// Timezone reports m's offset as "+HH:MM".
func (m Moment) Timezone() string { return FormatOffset(int(m.offset)) }

// WithTimezone resolves tz and returns m observed at the resulting offset.
// The instant is unchanged. Resolution takes the first rule that applies:
//
//  1. "local", in any case, is the host's current local offset;
//  2. a string containing the character '0' is a fixed offset "±HH:MM";
//  3. anything else is an IANA zone name, resolved at m's instant so that
//     daylight saving time is taken into account.
//
// The offset is a snapshot in every case.
func (m Moment) WithTimezone(tz string) (Moment, error) {
	switch {
	case strings.EqualFold(tz, "local"):
		_, off := now().In(LocalFunc()).Zone()
		return m.WithOffset(off), nil

	case strings.ContainsRune(tz, '0'):
		off, err := ParseOffset(tz)
		if err != nil {
			return m, err
		}
		return m.WithOffset(off), nil

	default:
		loc, err := time.LoadLocation(tz)
		if err != nil || tz == "" {
			return m, &Error{
				Kind: KindInvalidTimezone,
				Op:   "timezone",
				Msg:  fmt.Sprintf("unknown time zone %q", tz),
				Err:  err,
			}
		}
		_, off := m.Time().In(loc).Zone()
		return m.WithOffset(off), nil
	}
}
