package main

import (
	"errors"
	"os"

	govspeak "github.com/alnah/go-govspeak"
	"github.com/alnah/go-govspeak/internal/config"
	"github.com/alnah/go-govspeak/internal/fileutil"
	"github.com/alnah/go-govspeak/internal/yamlutil"
)

// Exit codes for the govspeak CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents rendered
	ExitGeneral = 1 // General/unexpected error, including interruption
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // A document failed to render
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Combined batch errors match if any of their members matches.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, govspeak.ErrNestingTooDeep) ||
		errors.Is(err, govspeak.ErrSourceTooLarge) ||
		errors.Is(err, govspeak.ErrMacroExpansion) ||
		errors.Is(err, govspeak.ErrPostProcess) ||
		errors.Is(err, govspeak.ErrHTMLConversion) ||
		errors.Is(err, govspeak.ErrComponentRender) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, yamlutil.ErrRead) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldInvalid) ||
		errors.Is(err, govspeak.ErrInvalidLocale) ||
		errors.Is(err, govspeak.ErrInvalidElement) ||
		errors.Is(err, govspeak.ErrInvalidAssetPath) ||
		errors.Is(err, govspeak.ErrLocaleTable) ||
		errors.Is(err, fileutil.ErrExtensionEmpty) ||
		errors.Is(err, ErrReadReferences) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidLogLevel) ||
		errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrOutputIsFile) {
		return ExitUsage
	}

	return ExitGeneral
}
