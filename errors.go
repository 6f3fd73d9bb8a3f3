package govspeak

import (
	"errors"

	"github.com/alnah/go-govspeak/internal/macro"
	"github.com/alnah/go-govspeak/internal/pipeline"
	"github.com/alnah/go-govspeak/internal/postprocess"
)

// Sentinel errors for library operations.
var (
	// Render errors.
	ErrNestingTooDeep = errors.New("nested render exceeds maximum depth")
	ErrSourceTooLarge = errors.New("source exceeds maximum size")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPostProcess    = postprocess.ErrPass

	// Macro errors. A malformed macro is left unexpanded and reported as a
	// Diagnostic; any other expansion error aborts the render.
	ErrMalformedMacro = macro.ErrMalformed
	ErrMacroExpansion = macro.ErrExpansion

	// Input validation errors.
	ErrInvalidLocale  = errors.New("invalid locale")
	ErrInvalidElement = errors.New("invalid allowed element name")

	// Component and asset errors.
	ErrComponentRender  = errors.New("component rendering failed")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrLocaleTable      = errors.New("invalid locale table")
)
