package starlarkchrono

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/starlark-chrono/chrono"
)

// TimeDelta is a Starlark timedelta, a signed span of time. Like DateTime
// it has reference semantics.
type TimeDelta struct {
	h      *chrono.SpanHandle
	frozen bool
}

// NewTimeDelta wraps h as a Starlark value.
func NewTimeDelta(h *chrono.SpanHandle) *TimeDelta { return &TimeDelta{h: h} }

// Handle returns the underlying shared handle.
func (d *TimeDelta) Handle() *chrono.SpanHandle { return d.h }

var (
	_ starlark.HasAttrs   = (*TimeDelta)(nil)
	_ starlark.Comparable = (*TimeDelta)(nil)
	_ starlark.HasBinary  = (*TimeDelta)(nil)
	_ starlark.HasUnary   = (*TimeDelta)(nil)
)

// String implements the Stringer interface.
func (d *TimeDelta) String() string { return d.h.String() }

// Type returns a short string describing the value's type.
func (d *TimeDelta) Type() string { return "timedelta" }

// Freeze makes every later mutation of d fail.
func (d *TimeDelta) Freeze() { d.frozen = true }

// Hash fails: a timedelta is mutable.
func (d *TimeDelta) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: timedelta")
}

// Truth reports whether the span is non-zero.
func (d *TimeDelta) Truth() starlark.Bool { return starlark.Bool(!d.h.IsZero()) }

// timedeltaGetters are exposed both as attributes and as get_<name> methods.
var timedeltaGetters = map[string]func(*chrono.SpanHandle) (starlark.Value, error){
	"is_zero": func(h *chrono.SpanHandle) (starlark.Value, error) { return starlark.Bool(h.IsZero()), nil },
	"seconds": intGetter((*chrono.SpanHandle).Seconds),
	"minutes": intGetter((*chrono.SpanHandle).Minutes),
	"hours":   intGetter((*chrono.SpanHandle).Hours),
	"days":    intGetter((*chrono.SpanHandle).Days),
	"weeks":   intGetter((*chrono.SpanHandle).Weeks),

	"milliseconds": intGetter((*chrono.SpanHandle).Milliseconds),
	"microseconds": checkedGetter((*chrono.SpanHandle).Microseconds),
	"nanoseconds":  checkedGetter((*chrono.SpanHandle).Nanoseconds),
	"subsec_nanos": intGetter((*chrono.SpanHandle).SubsecNanos),
}

func intGetter(fn func(*chrono.SpanHandle) int64) func(*chrono.SpanHandle) (starlark.Value, error) {
	return func(h *chrono.SpanHandle) (starlark.Value, error) {
		return starlark.MakeInt64(fn(h)), nil
	}
}

func checkedGetter(fn func(*chrono.SpanHandle) (int64, error)) func(*chrono.SpanHandle) (starlark.Value, error) {
	return func(h *chrono.SpanHandle) (starlark.Value, error) {
		n, err := fn(h)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt64(n), nil
	}
}

// Attr gets a value for a string attribute, implementing dot expression support
// in starklark. required by starlark.HasAttrs interface.
func (d *TimeDelta) Attr(name string) (starlark.Value, error) {
	if get, ok := timedeltaGetters[name]; ok {
		return get(d.h)
	}
	return builtinAttr(d, name, timedeltaMethods)
}

// AttrNames lists available dot expression strings for timedelta. required by
// starlark.HasAttrs interface.
func (d *TimeDelta) AttrNames() []string {
	names := builtinAttrNames(timedeltaMethods)
	for name := range timedeltaGetters {
		names = append(names, name)
	}
	return names
}

// CompareSameType implements comparison of two TimeDelta values. required by
// starlark.Comparable interface.
func (d *TimeDelta) CompareSameType(op syntax.Token, yV starlark.Value, depth int) (bool, error) {
	y := yV.(*TimeDelta)
	return threeway(op, d.h.Get().Compare(y.h.Get())), nil
}

// Binary implements binary operators, which satisfies the starlark.HasBinary
// interface. The sum or difference is a new timedelta.
//
//	timedelta + timedelta = timedelta
//	timedelta - timedelta = timedelta
//
// timedelta + datetime is handled by DateTime.
func (d *TimeDelta) Binary(op syntax.Token, yV starlark.Value, side starlark.Side) (starlark.Value, error) {
	y, ok := yV.(*TimeDelta)
	if !ok {
		return nil, nil
	}
	a, b := d.h.Get(), y.h.Get()
	if side == starlark.Right {
		a, b = b, a
	}

	var (
		s   chrono.Span
		err error
	)
	switch op {
	case syntax.PLUS:
		s, err = a.Add(b)
	case syntax.MINUS:
		s, err = a.Sub(b)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return NewTimeDelta(chrono.NewSpanHandle(s)), nil
}

// Unary implements the operators +x and -x.
func (d *TimeDelta) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.PLUS:
		return d, nil
	case syntax.MINUS:
		return NewTimeDelta(chrono.NewSpanHandle(d.h.Get().Neg())), nil
	}
	return nil, nil
}

var timedeltaMethods = map[string]builtinMethod{
	"abs":   timedeltaAbs,
	"add":   timedeltaShift((*chrono.SpanHandle).Add),
	"plus":  timedeltaShift((*chrono.SpanHandle).Add),
	"sub":   timedeltaShift((*chrono.SpanHandle).Subtract),
	"minus": timedeltaShift((*chrono.SpanHandle).Subtract),
	"copy":  timedeltaCopy,
}

func init() {
	for name, get := range timedeltaGetters {
		get := get
		timedeltaMethods["get_"+name] = func(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
				return nil, err
			}
			return get(recV.(*TimeDelta).h)
		}
	}
}

// timedeltaAbs replaces the receiver's value with its magnitude.
func timedeltaAbs(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	recv := recV.(*TimeDelta)
	if recv.frozen {
		return nil, fmt.Errorf("cannot %s frozen timedelta", fnname)
	}
	recv.h.Abs()
	return starlark.None, nil
}

func timedeltaShift(fn func(*chrono.SpanHandle, *chrono.SpanHandle) error) builtinMethod {
	return func(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var other *TimeDelta
		if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 1, &other); err != nil {
			return nil, err
		}
		recv := recV.(*TimeDelta)
		if recv.frozen {
			return nil, fmt.Errorf("cannot %s frozen timedelta", fnname)
		}
		if err := fn(recv.h, other.h); err != nil {
			return nil, err
		}
		return starlark.None, nil
	}
}

func timedeltaCopy(thread *starlark.Thread, fnname string, recV starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	return NewTimeDelta(recV.(*TimeDelta).h.Copy()), nil
}
