package macro

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry and expansion operations.
var (
	// ErrFrozen indicates a registration attempt on a frozen registry.
	ErrFrozen = errors.New("macro registry is frozen")

	// ErrInvalidPattern indicates a macro pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid macro pattern")

	// ErrNilHandler indicates a definition was registered without a handler.
	ErrNilHandler = errors.New("macro handler cannot be nil")

	// ErrMalformed marks a match whose arguments cannot be expanded.
	// Handlers wrap it; Apply leaves the match unexpanded.
	ErrMalformed = errors.New("malformed macro")

	// ErrExpansion wraps any other handler or regex failure.
	ErrExpansion = errors.New("macro expansion failed")
)

// Malformed returns an error wrapping ErrMalformed with a reason.
func Malformed(format string, args ...any) error {
	return &malformedError{msg: fmt.Sprintf(format, args...)}
}

type malformedError struct {
	msg string
}

func (e *malformedError) Error() string { return ErrMalformed.Error() + ": " + e.msg }

func (e *malformedError) Unwrap() error { return ErrMalformed }
