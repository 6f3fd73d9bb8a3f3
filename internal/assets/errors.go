package assets

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every missing-asset error. A resolver moves on
// to its next loader only for errors matching it.
var ErrNotFound = errors.New("asset not found")

// Missing-asset errors, one per asset kind.
var (
	ErrTemplateNotFound = fmt.Errorf("template %w", ErrNotFound)
	ErrLocaleNotFound   = fmt.Errorf("locale %w", ErrNotFound)
)

// Errors that stop a lookup.
var (
	// ErrInvalidAssetName rejects names with separators, dots or traversal.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath rejects a custom asset directory that cannot be read.
	ErrInvalidBasePath = errors.New("invalid base path")

	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("path traversal detected")
)
