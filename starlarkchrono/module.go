package starlarkchrono

import (
	"errors"
	"fmt"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/starlark-chrono/chrono"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "chrono"

// Module chrono is a Starlark module of datetime and timedelta functions.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"datetime_now":     starlark.NewBuiltin("datetime_now", datetimeNow),
		"datetime_utc":     starlark.NewBuiltin("datetime_utc", datetimeNow),
		"datetime_local":   starlark.NewBuiltin("datetime_local", datetimeLocal),
		"datetime_unix":    starlark.NewBuiltin("datetime_unix", datetimeEpoch(chrono.Seconds)),
		"datetime_millis":  starlark.NewBuiltin("datetime_millis", datetimeEpoch(chrono.Millis)),
		"datetime_micros":  starlark.NewBuiltin("datetime_micros", datetimeEpoch(chrono.Micros)),
		"datetime_nanos":   starlark.NewBuiltin("datetime_nanos", datetimeEpoch(chrono.Nanos)),
		"datetime_rfc2822": starlark.NewBuiltin("datetime_rfc2822", datetimeText(chrono.FromRFC2822)),
		"datetime_rfc3339": starlark.NewBuiltin("datetime_rfc3339", datetimeText(chrono.FromRFC3339)),
		"datetime_parse":   starlark.NewBuiltin("datetime_parse", datetimeParse),

		"timedelta":              starlark.NewBuiltin("timedelta", timedeltaConst(chrono.DeltaZero)),
		"timedelta_zero":         starlark.NewBuiltin("timedelta_zero", timedeltaConst(chrono.DeltaZero)),
		"timedelta_min":          starlark.NewBuiltin("timedelta_min", timedeltaConst(chrono.DeltaMin)),
		"timedelta_max":          starlark.NewBuiltin("timedelta_max", timedeltaConst(chrono.DeltaMax)),
		"timedelta_seconds":      starlark.NewBuiltin("timedelta_seconds", timedeltaSeconds),
		"timedelta_minutes":      starlark.NewBuiltin("timedelta_minutes", timedeltaUnit(chrono.DeltaMinutes)),
		"timedelta_hours":        starlark.NewBuiltin("timedelta_hours", timedeltaUnit(chrono.DeltaHours)),
		"timedelta_days":         starlark.NewBuiltin("timedelta_days", timedeltaUnit(chrono.DeltaDays)),
		"timedelta_weeks":        starlark.NewBuiltin("timedelta_weeks", timedeltaUnit(chrono.DeltaWeeks)),
		"timedelta_millis":       starlark.NewBuiltin("timedelta_millis", timedeltaUnit(chrono.DeltaMillis)),
		"timedelta_milliseconds": starlark.NewBuiltin("timedelta_milliseconds", timedeltaUnit(chrono.DeltaMillis)),
		"timedelta_micros":       starlark.NewBuiltin("timedelta_micros", timedeltaExact(chrono.DeltaMicros)),
		"timedelta_microseconds": starlark.NewBuiltin("timedelta_microseconds", timedeltaExact(chrono.DeltaMicros)),
		"timedelta_nanos":        starlark.NewBuiltin("timedelta_nanos", timedeltaExact(chrono.DeltaNanos)),
		"timedelta_nanoseconds":  starlark.NewBuiltin("timedelta_nanoseconds", timedeltaExact(chrono.DeltaNanos)),
	},
}

// LoadModule loads the chrono module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

const nowKey = "chrono.now"

// SetNow sets the function that datetime_now and datetime_local use on
// thread, overriding chrono.NowFunc. It lets a host make one thread
// deterministic without touching others.
func SetNow(thread *starlark.Thread, nowFunc func() (time.Time, error)) {
	thread.SetLocal(nowKey, nowFunc)
}

func now(thread *starlark.Thread) (time.Time, error) {
	if nowFunc, ok := thread.Local(nowKey).(func() (time.Time, error)); ok {
		return nowFunc()
	}
	if chrono.NowFunc == nil {
		return time.Time{}, errors.New("time.now() is not available")
	}
	return chrono.NowFunc(), nil
}

func datetimeNow(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	t, err := now(thread)
	if err != nil {
		return nil, err
	}
	return fromTime(t.UTC())
}

func datetimeLocal(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	t, err := now(thread)
	if err != nil {
		return nil, err
	}
	return fromTime(t.In(chrono.LocalFunc()))
}

func fromTime(t time.Time) (starlark.Value, error) {
	m, err := chrono.MomentOf(t)
	if err != nil {
		return nil, err
	}
	return NewDateTime(chrono.NewMomentHandle(m)), nil
}

func datetimeEpoch(unit chrono.Unit) builtinFunc {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var v int64Arg
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
			return nil, err
		}
		h, err := chrono.FromEpoch(int64(v), unit)
		if err != nil {
			return nil, err
		}
		return NewDateTime(h), nil
	}
}

func datetimeText(parse func(string) (*chrono.MomentHandle, error)) builtinFunc {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var text string
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &text); err != nil {
			return nil, err
		}
		h, err := parse(text)
		if err != nil {
			return nil, err
		}
		return NewDateTime(h), nil
	}
}

func datetimeParse(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text, format string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text, "format", &format); err != nil {
		return nil, err
	}
	h, err := chrono.FromPattern(text, format)
	if err != nil {
		return nil, err
	}
	return NewDateTime(h), nil
}

func timedeltaConst(newSpan func() *chrono.SpanHandle) builtinFunc {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return NewTimeDelta(newSpan()), nil
	}
}

func timedeltaSeconds(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var secs int64Arg
	var nanos starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &secs, &nanos); err != nil {
		return nil, err
	}
	if nanos == nil {
		return wrapDelta(chrono.DeltaSeconds(int64(secs)))
	}
	var n int64Arg
	if err := n.Unpack(nanos); err != nil {
		return nil, fmt.Errorf("%s: for parameter 2: %v", b.Name(), err)
	}
	return wrapDelta(chrono.DeltaSecondsNanos(int64(secs), int64(n)))
}

func timedeltaUnit(newSpan func(int64) (*chrono.SpanHandle, error)) builtinFunc {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int64Arg
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return wrapDelta(newSpan(int64(n)))
	}
}

// timedeltaExact wraps the constructors that cannot fail.
func timedeltaExact(newSpan func(int64) *chrono.SpanHandle) builtinFunc {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n int64Arg
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		return NewTimeDelta(newSpan(int64(n))), nil
	}
}

func wrapDelta(h *chrono.SpanHandle, err error) (starlark.Value, error) {
	if err != nil {
		return nil, err
	}
	return NewTimeDelta(h), nil
}

type builtinFunc = func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

// int64Arg unpacks a Starlark int that fits in 64 bits.
type int64Arg int64

// assert at compile time that int64Arg implements Unpacker.
var _ starlark.Unpacker = (*int64Arg)(nil)

// Unpack is a custom argument unpacker
func (n *int64Arg) Unpack(v starlark.Value) error {
	x, ok := v.(starlark.Int)
	if !ok {
		return fmt.Errorf("got %s, want int", v.Type())
	}
	i, ok := x.Int64()
	if !ok {
		return fmt.Errorf("int value out of range (want signed 64-bit value)")
	}
	*n = int64Arg(i)
	return nil
}
