// The chrono command runs chrono scripts. With no arguments, it starts a
// read-eval-print loop (REPL).
package main // import "github.com/starlark-chrono/chrono/cmd/chrono"

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.starlark.net/starlark"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/starlark-chrono/chrono"
	"github.com/starlark-chrono/chrono/repl"
)

// flags
var (
	showenv   = flag.Bool("showenv", false, "on success, print final global environment")
	execprog  = flag.String("c", "", "execute program `prog`")
	verbose   = flag.Bool("v", false, "log at debug level")
	localZone = flag.String("local", "", "resolve \"local\" timezones in `zone` instead of the system zone")
	syncCheck = flag.Bool("sync-check", false, "report the compiled handle profile and exit")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	flag.Parse()

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	log, err := newLogger(interactive, *verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chrono:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if *syncCheck {
		fmt.Println(profile())
		return 0
	}

	if *localZone != "" {
		loc, err := time.LoadLocation(*localZone)
		if err != nil {
			log.Error("invalid -local zone", zap.String("zone", *localZone), zap.Error(err))
			return 1
		}
		chrono.LocalFunc = func() *time.Location { return loc }
	}
	log.Debug("starting",
		zap.String("profile", profile()),
		zap.String("local", chrono.LocalFunc().String()),
		zap.Bool("interactive", interactive))

	thread := &starlark.Thread{
		Load: repl.MakeLoad(),
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Println(msg)
		},
	}
	globals := repl.Globals()

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      any
		)
		if *execprog != "" {
			filename = "cmdline"
			src = *execprog
		} else {
			filename = flag.Arg(0)
		}
		thread.Name = "exec " + filename
		log.Debug("executing", zap.String("file", filename))
		globals, err = starlark.ExecFile(thread, filename, src, globals)
		if err != nil {
			repl.PrintError(os.Stderr, err)
			log.Debug("script failed", zap.String("file", filename), zap.String("kind", chrono.KindOf(err).String()))
			return 1
		}
	case flag.NArg() == 0:
		if interactive {
			fmt.Printf("chrono (%s handles); try chrono.datetime_now()\n", profile())
		}
		thread.Name = "REPL"
		repl.REPL(thread, globals)
	default:
		log.Error("want at most one script file name", zap.Strings("args", flag.Args()))
		return 1
	}

	if *showenv {
		printEnv(os.Stderr, globals)
	}
	return 0
}

func printEnv(w io.Writer, globals starlark.StringDict) {
	for _, name := range globals.Keys() {
		if !strings.HasPrefix(name, "_") {
			fmt.Fprintf(w, "%s = %s\n", name, globals[name])
		}
	}
}

func profile() string {
	if chrono.ThreadSafe {
		return "thread-safe"
	}
	return "exclusive"
}

// newLogger returns a console logger for terminals and a JSON logger
// otherwise. Only warnings and errors are logged unless verbose is set.
func newLogger(interactive, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	if interactive {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
