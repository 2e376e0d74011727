package chrono

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the errors reported by this package.
type Kind int

const (
	// KindRange reports a value or computed instant/duration outside the
	// representable bounds.
	KindRange Kind = iota + 1
	// KindFieldRange reports a field value that is invalid for the current
	// calendar context of a datetime.
	KindFieldRange
	// KindParse reports text that does not match the expected format.
	KindParse
	// KindInvalidOffset reports a malformed fixed UTC offset.
	KindInvalidOffset
	// KindInvalidTimezone reports an unknown IANA zone name.
	KindInvalidTimezone
	// KindConfig reports an unrecognized auxiliary parameter such as a locale.
	KindConfig
)

var kindNames = [...]string{
	KindRange:           "range error",
	KindFieldRange:      "field range error",
	KindParse:           "parse error",
	KindInvalidOffset:   "invalid offset",
	KindInvalidTimezone: "invalid timezone",
	KindConfig:          "config error",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for use with errors.Is.
var (
	ErrRange           = &Error{Kind: KindRange}
	ErrFieldRange      = &Error{Kind: KindFieldRange}
	ErrParse           = &Error{Kind: KindParse}
	ErrInvalidOffset   = &Error{Kind: KindInvalidOffset}
	ErrInvalidTimezone = &Error{Kind: KindInvalidTimezone}
	ErrConfig          = &Error{Kind: KindConfig}
)

// Error is the error type returned by every fallible operation.
//
// Op names the operation that failed, in the form scripts call it.
// Field is set for field-range errors; Input and Pattern are set for
// parse failures and carry the offending text and the format used.
type Error struct {
	Kind    Kind
	Op      string
	Field   string
	Input   string
	Pattern string
	Msg     string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	default:
		b.WriteString(e.Kind.String())
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	if e.Kind == KindParse || e.Input != "" {
		fmt.Fprintf(&b, " %q", e.Input)
		if e.Pattern != "" {
			fmt.Fprintf(&b, " using format %q", e.Pattern)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind. This makes the
// package sentinels match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func rangeError(op, msg string) *Error {
	return &Error{Kind: KindRange, Op: op, Msg: msg}
}

func fieldError(op, field string, value int64) *Error {
	return &Error{
		Kind:  KindFieldRange,
		Op:    op,
		Field: field,
		Msg:   fmt.Sprintf("value %d out of range", value),
	}
}

func parseError(op, input, pattern string, cause error) *Error {
	return &Error{
		Kind:    KindParse,
		Op:      op,
		Msg:     "failed to parse timestamp",
		Input:   input,
		Pattern: pattern,
		Err:     cause,
	}
}
