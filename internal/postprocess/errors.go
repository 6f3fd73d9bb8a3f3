package postprocess

import "errors"

// Sentinel errors for registry and processing failures.
var (
	// ErrFrozen indicates a registration attempt on a frozen registry.
	ErrFrozen = errors.New("post-process registry is frozen")

	// ErrNilPass indicates a registration without a pass function.
	ErrNilPass = errors.New("nil post-process pass")

	// ErrPass wraps errors returned by a pass.
	ErrPass = errors.New("post-process pass failed")
)
