package starlarkchrono

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/starlark-chrono/chrono"
)

// DateTime is a Starlark datetime. Assignment in a script copies the
// reference, not the value: every variable bound to the same DateTime
// observes its mutations. Use copy() for an independent value.
type DateTime struct {
	h      *chrono.MomentHandle
	frozen bool
}

// NewDateTime wraps h as a Starlark value.
func NewDateTime(h *chrono.MomentHandle) *DateTime { return &DateTime{h: h} }

// Handle returns the underlying shared handle.
func (d *DateTime) Handle() *chrono.MomentHandle { return d.h }

var (
	_ starlark.HasSetField = (*DateTime)(nil)
	_ starlark.Comparable  = (*DateTime)(nil)
	_ starlark.HasBinary   = (*DateTime)(nil)
)

// String implements the Stringer interface.
func (d *DateTime) String() string { return d.h.ToRFC3339() }

// Type returns a short string describing the value's type.
func (d *DateTime) Type() string { return "datetime" }

// Freeze makes every later mutation of d fail.
func (d *DateTime) Freeze() { d.frozen = true }

// Hash fails: a datetime is mutable.
func (d *DateTime) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: datetime")
}

// Truth returns the truth value of an object required by starlark.Value
// interface.
func (d *DateTime) Truth() starlark.Bool { return true }

func (d *DateTime) checkMutable(verb string) error {
	if d.frozen {
		return fmt.Errorf("cannot %s frozen datetime", verb)
	}
	return nil
}

var datetimeAttrs = []string{
	"offset",
	"time",
	"timestamp",
	"timestamp_micros",
	"timestamp_millis",
	"timestamp_nanos",
	"timestamp_subsec_micros",
	"timestamp_subsec_millis",
	"timestamp_subsec_nanos",
	"timezone",
	"weekday",
}

// Attr gets a value for a string attribute, implementing dot expression support
// in starklark. required by starlark.HasAttrs interface.
func (d *DateTime) Attr(name string) (starlark.Value, error) {
	if f, ok := chrono.ParseField(name); ok {
		return starlark.MakeInt64(d.h.Field(f)), nil
	}
	switch name {
	case "time":
		return starlark.String(d.h.TimeOfDay()), nil
	case "timezone":
		return starlark.String(d.h.Timezone()), nil
	case "offset":
		return starlark.MakeInt(d.h.Get().Offset()), nil
	case "weekday":
		return starlark.MakeInt(d.h.Get().Weekday()), nil
	case "timestamp":
		return starlark.MakeInt64(d.h.Timestamp()), nil
	case "timestamp_millis":
		return starlark.MakeInt64(d.h.TimestampMillis()), nil
	case "timestamp_micros":
		return starlark.MakeInt64(d.h.TimestampMicros()), nil
	case "timestamp_nanos":
		n, err := d.h.TimestampNanos()
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt64(n), nil
	case "timestamp_subsec_millis":
		return starlark.MakeInt64(d.h.TimestampSubsecMillis()), nil
	case "timestamp_subsec_micros":
		return starlark.MakeInt64(d.h.TimestampSubsecMicros()), nil
	case "timestamp_subsec_nanos":
		return starlark.MakeInt64(d.h.TimestampSubsecNanos()), nil
	}
	return builtinAttr(d, name, datetimeMethods)
}

// AttrNames lists available dot expression strings for datetime. required by
// starlark.HasAttrs interface.
func (d *DateTime) AttrNames() []string {
	names := builtinAttrNames(datetimeMethods)
	for _, f := range chrono.Fields {
		names = append(names, f.String())
	}
	return append(names, datetimeAttrs...)
}

// SetField assigns a field, the time of day or the timezone. On error the
// value is unchanged.
func (d *DateTime) SetField(name string, v starlark.Value) error {
	if err := d.checkMutable("set field of"); err != nil {
		return err
	}
	if f, ok := chrono.ParseField(name); ok {
		var n int64Arg
		if err := n.Unpack(v); err != nil {
			return fmt.Errorf("datetime.%s: %v", name, err)
		}
		return d.h.SetField(f, int64(n))
	}
	switch name {
	case "time", "timezone":
		s, ok := starlark.AsString(v)
		if !ok {
			return fmt.Errorf("datetime.%s: got %s, want string", name, v.Type())
		}
		if name == "time" {
			return d.h.SetTimeOfDay(s)
		}
		return d.h.SetTimezone(s)
	}
	for _, ro := range datetimeAttrs {
		if ro == name {
			return fmt.Errorf("cannot set read-only field .%s of datetime", name)
		}
	}
	return starlark.NoSuchAttrError(fmt.Sprintf("datetime has no .%s field", name))
}

// CompareSameType orders two datetimes by instant; the offset is ignored.
// required by starlark.Comparable interface.
func (d *DateTime) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	y := yV.(*DateTime)
	return threeway(op, d.h.Get().Compare(y.h.Get())), nil
}

// Binary implements binary operators, which satisfies the starlark.HasBinary
// interface. Operators never mutate their operands.
//
//	datetime + timedelta = datetime
//	datetime - timedelta = datetime
//	datetime - datetime = timedelta
func (d *DateTime) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := d.h.Get()

	switch op {
	case syntax.PLUS:
		if y, ok := yV.(*TimeDelta); ok {
			m, err := x.AddSpan(y.h.Get())
			if err != nil {
				return nil, err
			}
			return NewDateTime(chrono.NewMomentHandle(m)), nil
		}
	case syntax.MINUS:
		switch y := yV.(type) {
		case *TimeDelta:
			if side == starlark.Right {
				return nil, nil
			}
			m, err := x.SubSpan(y.h.Get())
			if err != nil {
				return nil, err
			}
			return NewDateTime(chrono.NewMomentHandle(m)), nil
		case *DateTime:
			if side == starlark.Left {
				return NewTimeDelta(chrono.NewSpanHandle(x.Sub(y.h.Get()))), nil
			}
			return NewTimeDelta(chrono.NewSpanHandle(y.h.Get().Sub(x))), nil
		}
	}

	return nil, nil
}

var datetimeMethods = map[string]builtinMethod{
	"to_rfc3339":     datetimeString((*chrono.MomentHandle).ToRFC3339),
	"to_rfc2822":     datetimeString((*chrono.MomentHandle).ToRFC2822),
	"to_string":      datetimeString((*chrono.MomentHandle).ToRFC3339),
	"format":         datetimeFormat,
	"years_since":    datetimeYearsSince,
	"add":            datetimeShift((*chrono.MomentHandle).AddSpan),
	"plus":           datetimeShift((*chrono.MomentHandle).AddSpan),
	"sub":            datetimeShift((*chrono.MomentHandle).SubtractSpan),
	"minus":          datetimeShift((*chrono.MomentHandle).SubtractSpan),
	"diff":           datetimeDiff,
	"compare":        datetimeDiff,
	"duration_since": datetimeDiff,
	"copy":           datetimeCopy,
	"set_time":       datetimeSetString("time", false),
	"with_time":      datetimeSetString("time", true),
	"set_timezone":   datetimeSetString("timezone", false),
	"with_timezone":  datetimeSetString("timezone", true),
}

func init() {
	for _, f := range chrono.Fields {
		datetimeMethods["set_"+f.String()] = datetimeSetField(f, false)
		datetimeMethods["with_"+f.String()] = datetimeSetField(f, true)
	}
}

func datetimeString(fn func(*chrono.MomentHandle) string) builtinMethod {
	return func(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
			return nil, err
		}
		return starlark.String(fn(recV.(*DateTime).h)), nil
	}
}

func datetimeFormat(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern, locale string
	if err := starlark.UnpackArgs(fnname, args, kwargs, "pattern", &pattern, "locale?", &locale); err != nil {
		return nil, err
	}
	recv := recV.(*DateTime).h
	if locale == "" {
		return starlark.String(recv.Format(pattern)), nil
	}
	s, err := recv.FormatLocale(pattern, locale)
	if err != nil {
		return nil, err
	}
	return starlark.String(s), nil
}

func datetimeYearsSince(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other *DateTime
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0, &other); err != nil {
		return nil, err
	}
	recv := recV.(*DateTime).h
	if other != nil {
		return starlark.MakeInt64(recv.YearsSince(other.h)), nil
	}
	t, err := now(thread)
	if err != nil {
		return nil, err
	}
	return starlark.MakeInt64(recv.YearsSinceAt(t)), nil
}

func datetimeShift(fn func(*chrono.MomentHandle, *chrono.SpanHandle) error) builtinMethod {
	return func(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var delta *TimeDelta
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &delta); err != nil {
			return nil, err
		}
		recv := recV.(*DateTime)
		if err := recv.checkMutable(fnname); err != nil {
			return nil, err
		}
		if err := fn(recv.h, delta.h); err != nil {
			return nil, err
		}
		return starlark.None, nil
	}
}

func datetimeDiff(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other *DateTime
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &other); err != nil {
		return nil, err
	}
	return NewTimeDelta(recV.(*DateTime).h.Diff(other.h)), nil
}

func datetimeCopy(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return NewDateTime(recV.(*DateTime).h.Copy()), nil
}

// datetimeSetField builds set_<field> (returns None) and, when chain is
// set, with_<field> (returns the receiver).
func datetimeSetField(f chrono.Field, chain bool) builtinMethod {
	return func(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var v int64Arg
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &v); err != nil {
			return nil, err
		}
		recv := recV.(*DateTime)
		if err := recv.checkMutable(fnname); err != nil {
			return nil, err
		}
		if err := recv.h.SetField(f, int64(v)); err != nil {
			return nil, err
		}
		if chain {
			return recv, nil
		}
		return starlark.None, nil
	}
}

func datetimeSetString(field string, chain bool) builtinMethod {
	return func(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var s string
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &s); err != nil {
			return nil, err
		}
		recv := recV.(*DateTime)
		if err := recv.SetField(field, starlark.String(s)); err != nil {
			return nil, err
		}
		if chain {
			return recv, nil
		}
		return starlark.None, nil
	}
}
