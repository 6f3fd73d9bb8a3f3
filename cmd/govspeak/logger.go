package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the console logger the CLI writes diagnostics with.
// The level can be raised or lowered after construction.
func newLogger(w io.Writer, level zap.AtomicLevel) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// resolveLogLevel picks the log level. Priority: --verbose > --quiet > configured > info.
func resolveLogLevel(quiet, verbose bool, configured string) (zapcore.Level, error) {
	switch {
	case verbose:
		return zapcore.DebugLevel, nil
	case quiet:
		return zapcore.ErrorLevel, nil
	case configured == "":
		return zapcore.InfoLevel, nil
	}

	level, err := zapcore.ParseLevel(configured)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: %v", ErrInvalidLogLevel, err)
	}
	return level, nil
}
