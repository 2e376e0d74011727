// Package repl provides a read/eval/print loop for chrono scripts.
//
// It supports readline-style command editing with completion of the
// chrono builtins, and interrupts through Control-C.
//
// A line that parses as an expression is evaluated and its value printed.
// Otherwise lines are read until a blank line and the whole input is
// executed as statements.
package repl // import "github.com/starlark-chrono/chrono/repl"

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/chzyer/readline"
	"go.starlark.net/resolve"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/starlark-chrono/chrono/starlarkchrono"
)

const (
	prompt         = "chrono> "
	continuePrompt = "    ... "
)

var interrupted = make(chan os.Signal, 1)

// Globals returns a fresh global environment with the chrono module bound.
func Globals() starlark.StringDict {
	return starlark.StringDict{starlarkchrono.ModuleName: starlarkchrono.Module}
}

// REPL executes a read, eval, print loop until end of input.
//
// Before evaluating each item it sets the thread local "context" to a
// context.Context cancelled by SIGINT. SIGINT also cancels the thread, so
// a long-running item stops with an "interrupted" error.
func REPL(thread *starlark.Thread, globals starlark.StringDict) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		PrintError(os.Stderr, err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, thread, globals); err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			break
		}
	}
	fmt.Println()
}

// completer offers every member of the chrono module after "chrono.".
func completer() *readline.PrefixCompleter {
	names := make([]string, 0, len(starlarkchrono.Module.Members))
	for name := range starlarkchrono.Module.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		items = append(items, readline.PcItem(starlarkchrono.ModuleName+"."+name+"("))
	}
	return readline.NewPrefixCompleter(items...)
}

// rep reads, evaluates and prints one item. It returns an error only if
// readline failed; script errors are printed.
func rep(rl *readline.Instance, thread *starlark.Thread, globals starlark.StringDict) error {
	// Control-C during Readline returns ErrInterrupt rather than raising
	// SIGINT, so the signal only cancels evaluation.
	defer interruptOn(thread, interrupted)()

	eof := false
	rl.SetPrompt(prompt)
	readLine := func() ([]byte, error) {
		line, err := rl.Readline()
		rl.SetPrompt(continuePrompt)
		if err != nil {
			if err == io.EOF {
				eof = true
			}
			return nil, err
		}
		return []byte(line + "\n"), nil
	}

	f, err := syntax.ParseCompoundStmt("<stdin>", readLine)
	if err != nil {
		if eof {
			return io.EOF
		}
		if errors.Is(err, readline.ErrInterrupt) {
			return err
		}
		PrintError(os.Stderr, err)
		return nil
	}

	if err := Eval(thread, f, globals, os.Stdout); err != nil {
		PrintError(os.Stderr, err)
	}
	return nil
}

// Eval executes one parsed item. A sole expression is evaluated and its
// value, unless None, is written to out.
func Eval(thread *starlark.Thread, f *syntax.File, globals starlark.StringDict, out io.Writer) error {
	// Load bindings are global in the REPL.
	defer func(prev bool) { resolve.LoadBindsGlobally = prev }(resolve.LoadBindsGlobally)
	resolve.LoadBindsGlobally = true

	if expr := soleExpr(f); expr != nil {
		v, err := starlark.EvalExpr(thread, expr, globals)
		if err != nil {
			return err
		}
		if v != starlark.None {
			fmt.Fprintln(out, v)
		}
		return nil
	}
	return starlark.ExecREPLChunk(f, thread, globals)
}

// interruptOn sets the thread local "context" to a fresh context and
// starts watching sig. A signal cancels both the context and the thread,
// which stops the running item at its next step. The returned function
// stops watching and clears the cancellation so the thread can run the
// next item.
func interruptOn(thread *starlark.Thread, sig <-chan os.Signal) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	thread.SetLocal("context", ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-sig:
			cancel()
			thread.Cancel("interrupted")
		case <-ctx.Done():
		}
	}()
	return func() {
		cancel()
		<-done
		thread.Uncancel()
	}
}

func soleExpr(f *syntax.File) syntax.Expr {
	if len(f.Stmts) == 1 {
		if stmt, ok := f.Stmts[0].(*syntax.ExprStmt); ok {
			return stmt.X
		}
	}
	return nil
}

// PrintError writes err to w, or its backtrace if it is a Starlark
// evaluation error.
func PrintError(w io.Writer, err error) {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		fmt.Fprintln(w, evalErr.Backtrace())
		return
	}
	fmt.Fprintln(w, err)
}

// MakeLoad returns a sequential module loader. "chrono.star" resolves to
// the builtin chrono module; any other name is executed as a script file
// with the chrono module predeclared. Each loader has a private cache.
func MakeLoad() func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	type entry struct {
		globals starlark.StringDict
		err     error
	}

	cache := make(map[string]*entry)

	return func(thread *starlark.Thread, module string) (starlark.StringDict, error) {
		if module == starlarkchrono.ModuleName+".star" {
			return starlarkchrono.LoadModule()
		}
		e, ok := cache[module]
		if e == nil {
			if ok {
				return nil, fmt.Errorf("cycle in load graph")
			}
			// nil marks the load in progress.
			cache[module] = nil

			thread := &starlark.Thread{Name: "exec " + module, Load: thread.Load}
			globals, err := starlark.ExecFile(thread, module, nil, Globals())
			e = &entry{globals, err}
			cache[module] = e
		}
		return e.globals, e.err
	}
}
