package starlarkchrono_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/starlark-chrono/chrono"
	"github.com/starlark-chrono/chrono/internal/chronotest"
	"github.com/starlark-chrono/chrono/internal/chunkedfile"
	"github.com/starlark-chrono/chrono/starlarkchrono"
)

func load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	switch module {
	case "assert.star":
		return chronotest.LoadAssertModule()
	case "chrono.star":
		return starlarkchrono.LoadModule()
	}
	return nil, fmt.Errorf("load not implemented for %s", module)
}

func TestScripts(t *testing.T) {
	files, err := filepath.Glob("testdata/*.star")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, filename := range files {
		for _, chunk := range chunkedfile.Read(filename, t) {
			thread := &starlark.Thread{Name: filename, Load: load}
			chronotest.SetReporter(thread, t)
			starlarkchrono.SetNow(thread, func() (time.Time, error) {
				return time.Date(2019, time.August, 9, 9, 30, 11, 0, time.UTC), nil
			})

			_, err := starlark.ExecFile(thread, filename, chunk.Source, nil)
			switch err := err.(type) {
			case *starlark.EvalError:
				found := false
				for i := range err.CallStack {
					posn := err.CallStack.At(i).Pos
					if posn.Filename() == filename {
						chunk.GotError(int(posn.Line), err.Error())
						found = true
						break
					}
				}
				if !found {
					t.Error(err.Backtrace())
				}
			case syntax.Error:
				chunk.GotError(int(err.Pos.Line), err.Msg)
			case resolve.ErrorList:
				for _, err := range err {
					chunk.GotError(int(err.Pos.Line), err.Msg)
				}
			case nil:
				// success
			default:
				t.Errorf("\n%s", err)
			}
			chunk.Done()
		}
	}
}

func exec(t *testing.T, thread *starlark.Thread, src string) starlark.StringDict {
	t.Helper()
	globals, err := starlark.ExecFile(thread, "test.star", src, starlark.StringDict{
		starlarkchrono.ModuleName: starlarkchrono.Module,
	})
	require.NoError(t, err)
	return globals
}

func TestPerThreadNow(t *testing.T) {
	date := time.Date(2022, time.March, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	th := &starlark.Thread{}
	starlarkchrono.SetNow(th, func() (time.Time, error) { return date, nil })

	globals := exec(t, th, `
utc = chrono.datetime_now()
alias = chrono.datetime_utc()
age = chrono.datetime_rfc3339("1989-08-09T09:30:11Z").years_since()
`)
	assert.Equal(t, "2022-03-01T11:00:00+00:00", globals["utc"].String())
	assert.Equal(t, "2022-03-01T11:00:00+00:00", globals["alias"].String())
	assert.Equal(t, starlark.MakeInt(-32), globals["age"])
}

func TestPerThreadNowError(t *testing.T) {
	th := &starlark.Thread{}
	e := errors.New("no time")
	starlarkchrono.SetNow(th, func() (time.Time, error) { return time.Time{}, e })

	_, err := starlark.Call(th, starlarkchrono.Module.Members["datetime_now"], nil, nil)
	assert.True(t, errors.Is(err, e), "%v", err)
}

func TestGlobalNow(t *testing.T) {
	oldNow, oldLocal := chrono.NowFunc, chrono.LocalFunc
	t.Cleanup(func() { chrono.NowFunc, chrono.LocalFunc = oldNow, oldLocal })

	chrono.NowFunc = func() time.Time { return time.Unix(618658211, 0) }
	chrono.LocalFunc = func() *time.Location { return time.FixedZone("MDT", -6*3600) }

	res, err := starlark.Call(&starlark.Thread{}, starlarkchrono.Module.Members["datetime_local"], nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "1989-08-09T03:30:11-06:00", res.String())

	chrono.NowFunc = nil
	_, err = starlark.Call(&starlark.Thread{}, starlarkchrono.Module.Members["datetime_now"], nil, nil)
	assert.Error(t, err)
}

// A handle shared between the host and a script observes the script's
// mutations, and errors keep their kind across the script boundary.
func TestHostSharesHandles(t *testing.T) {
	h, err := chrono.FromEpoch(618658211, chrono.Seconds)
	require.NoError(t, err)

	th := &starlark.Thread{}
	_, err = starlark.ExecFile(th, "host.star", `
d.hour = 0
d.timezone = "+01:00"
`, starlark.StringDict{"d": starlarkchrono.NewDateTime(h)})
	require.NoError(t, err)
	assert.Equal(t, "1989-08-09T01:00:11+01:00", h.ToRFC3339())

	_, err = starlark.ExecFile(th, "host.star", `d.month = 13`,
		starlark.StringDict{"d": starlarkchrono.NewDateTime(h)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, chrono.ErrFieldRange), "%v", err)
	assert.Equal(t, "1989-08-09T01:00:11+01:00", h.ToRFC3339())
}

func TestModuleMembers(t *testing.T) {
	globals, err := starlarkchrono.LoadModule()
	require.NoError(t, err)
	require.Contains(t, globals, starlarkchrono.ModuleName)

	for _, name := range []string{
		"datetime_now", "datetime_local", "datetime_unix", "datetime_millis",
		"datetime_micros", "datetime_nanos", "datetime_rfc2822", "datetime_rfc3339",
		"datetime_parse", "timedelta", "timedelta_zero", "timedelta_min", "timedelta_max",
		"timedelta_seconds", "timedelta_minutes", "timedelta_hours", "timedelta_days",
		"timedelta_weeks", "timedelta_millis", "timedelta_micros", "timedelta_nanos",
	} {
		assert.Contains(t, starlarkchrono.Module.Members, name)
	}
}
