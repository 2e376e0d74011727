package repl

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func evalLine(t *testing.T, thread *starlark.Thread, globals starlark.StringDict, src string) (string, error) {
	t.Helper()
	f, err := syntax.Parse("<stdin>", src, 0)
	require.NoError(t, err)
	var out bytes.Buffer
	err = Eval(thread, f, globals, &out)
	return out.String(), err
}

func TestEvalExpressionAndStatements(t *testing.T) {
	thread := &starlark.Thread{Load: MakeLoad()}
	globals := Globals()

	out, err := evalLine(t, thread, globals, "chrono.timedelta_hours(2)\n")
	require.NoError(t, err)
	assert.Equal(t, "PT7200S\n", out)

	out, err = evalLine(t, thread, globals, "d = chrono.datetime_unix(0)\n")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = evalLine(t, thread, globals, "d.year\n")
	require.NoError(t, err)
	assert.Equal(t, "1970\n", out)

	out, err = evalLine(t, thread, globals, "None\n")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = evalLine(t, thread, globals, "chrono.datetime_rfc3339('nope')\n")
	var evalErr *starlark.EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Contains(t, evalErr.Error(), "failed to parse timestamp")
}

func TestMakeLoad(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib.star")
	require.NoError(t, os.WriteFile(lib, []byte(`epoch = chrono.datetime_unix(0)`), 0o644))
	cyclic := filepath.Join(dir, "cyclic.star")
	require.NoError(t, os.WriteFile(cyclic, []byte(`load("`+filepath.ToSlash(cyclic)+`", "x")`), 0o644))

	load := MakeLoad()
	thread := &starlark.Thread{Load: load}

	chrono, err := load(thread, "chrono.star")
	require.NoError(t, err)
	assert.Contains(t, chrono, "chrono")

	globals, err := load(thread, lib)
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01T00:00:00+00:00", globals["epoch"].String())

	again, err := load(thread, lib)
	require.NoError(t, err)
	assert.Same(t, globals["epoch"], again["epoch"])

	_, err = load(thread, cyclic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle in load graph")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.New("plain"))
	assert.Equal(t, "plain\n", buf.String())

	buf.Reset()
	_, err := starlark.ExecFile(&starlark.Thread{}, "x.star", "chrono.timedelta_days('x')", Globals())
	PrintError(&buf, err)
	assert.True(t, strings.HasPrefix(buf.String(), "Traceback"), buf.String())
}

func TestCompleter(t *testing.T) {
	var names []string
	for _, c := range completer().GetChildren() {
		names = append(names, strings.TrimSpace(string(c.GetName())))
	}
	assert.Contains(t, names, "chrono.datetime_now(")
	assert.Contains(t, names, "chrono.timedelta_seconds(")
}

func TestInterruptCancelsItem(t *testing.T) {
	thread := &starlark.Thread{Load: MakeLoad()}
	globals := Globals()
	sig := make(chan os.Signal, 1)

	f, err := syntax.Parse("<stdin>", "[x for x in range(1 << 40) if False]\n", 0)
	require.NoError(t, err)

	stop := interruptOn(thread, sig)
	errc := make(chan error, 1)
	go func() {
		errc <- Eval(thread, f, globals, io.Discard)
	}()
	sig <- os.Interrupt
	select {
	case err := <-errc:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "interrupted")
	case <-time.After(10 * time.Second):
		t.Fatal("evaluation was not interrupted")
	}
	stop()

	// The next item runs on the same thread.
	stop = interruptOn(thread, sig)
	defer stop()
	out, err := evalLine(t, thread, globals, "chrono.timedelta_minutes(1)\n")
	require.NoError(t, err)
	assert.Equal(t, "PT60S\n", out)
}
