// Package chronotest provides an assert module for Starlark scripts that
// exercise the chrono bindings.
//
// Clients call LoadAssertModule to obtain the module, and SetReporter to
// route failures to the current *testing.T. See assert.star for the
// functions the module defines.
package chronotest // import "github.com/starlark-chrono/chrono/internal/chronotest"

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

const localKey = "chronotest.Reporter"

// A Reporter is a value to which errors may be reported.
// It is satisfied by *testing.T.
type Reporter interface {
	Error(args ...any)
}

// SetReporter associates an error reporter with the thread.
func SetReporter(thread *starlark.Thread, r Reporter) {
	thread.SetLocal(localKey, r)
}

// GetReporter returns the thread's error reporter. It panics if
// SetReporter was not called.
func GetReporter(thread *starlark.Thread) Reporter {
	r, ok := thread.Local(localKey).(Reporter)
	if !ok {
		panic("internal error: chronotest.SetReporter was not called")
	}
	return r
}

//go:embed assert.star
var assertSource string

var (
	once      sync.Once
	assert    starlark.StringDict
	assertErr error
)

// LoadAssertModule loads the assert module.
// It is concurrency-safe and idempotent.
func LoadAssertModule() (starlark.StringDict, error) {
	once.Do(func() {
		predeclared := starlark.StringDict{
			"error":   starlark.NewBuiltin("error", reportError),
			"catch":   starlark.NewBuiltin("catch", catch),
			"matches": starlark.NewBuiltin("matches", matches),
			"module":  starlark.NewBuiltin("module", starlarkstruct.MakeModule),
			"_freeze": starlark.NewBuiltin("freeze", freeze),
		}
		thread := &starlark.Thread{Name: "assert"}
		assert, assertErr = starlark.ExecFile(thread, "assert.star", assertSource, predeclared)
	})
	return assert, assertErr
}

// catch(f) calls f and returns its error message, or None on success.
func catch(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var fn starlark.Callable
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "fn", &fn); err != nil {
		return nil, err
	}
	if _, err := starlark.Call(thread, fn, nil, nil); err != nil {
		return starlark.String(err.Error()), nil
	}
	return starlark.None, nil
}

func matches(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var pattern, str string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "pattern", &pattern, "str", &str); err != nil {
		return nil, err
	}
	ok, err := regexp.MatchString(pattern, str)
	if err != nil {
		return nil, fmt.Errorf("matches: %s", err)
	}
	return starlark.Bool(ok), nil
}

// reportError reports its argument, prefixed by the script call stack,
// to the thread's Reporter.
func reportError(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var msg starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &msg); err != nil {
		return nil, err
	}
	var sb strings.Builder
	stk := thread.CallStack()
	stk.Pop()
	fmt.Fprintf(&sb, "%sError: ", stk)
	if s, ok := starlark.AsString(msg); ok {
		sb.WriteString(s)
	} else {
		sb.WriteString(msg.String())
	}
	GetReporter(thread).Error(sb.String())
	return starlark.None, nil
}

func freeze(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	x.Freeze()
	return x, nil
}
