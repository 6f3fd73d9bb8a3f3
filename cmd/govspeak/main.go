package main

import (
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Parse flags first to know whether to report GOMAXPROCS.
	// Errors are reported again by run with the right exit code.
	flags, _, _ := parseFlags(os.Args, io.Discard)
	logf := func(string, ...any) {}
	if flags != nil && flags.common.verbose {
		logf = newLogger(env.Stderr, zap.NewAtomicLevelAt(zap.DebugLevel)).Sugar().Debugf
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(logf))

	code := run(os.Args, env)
	undo()
	os.Exit(code)
}
