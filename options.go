package govspeak

import (
	"go.uber.org/zap"

	"github.com/alnah/go-govspeak/internal/macro"
	"github.com/alnah/go-govspeak/internal/postprocess"
)

// MacroRegistry is an ordered set of macros expanded before parsing.
type MacroRegistry = macro.Registry[*Document]

// MacroHandler expands one macro match against the rendering document.
type MacroHandler = macro.Handler[*Document]

// Match is the regex match handed to a MacroHandler.
type Match = macro.Match

// PassRegistry is an ordered set of passes run over the parsed HTML.
type PassRegistry = postprocess.Registry[*Document]

// Pass mutates the parsed HTML of the rendering document.
type Pass = postprocess.Pass[*Document]

// Defaults applied by NewRenderer.
const (
	DefaultMaxDepth      = 32
	DefaultMaxSourceSize = 8 << 20
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds settings resolved by NewRenderer.
type rendererConfig struct {
	maxDepth       int
	maxSourceSize  int
	assetPath      string
	highlightStyle string
}

// WithLogger sets the logger used for render tracing and macro warnings.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l == nil {
			l = zap.NewNop()
		}
		r.logger = l
	}
}

// WithMaxDepth bounds how deeply macros may nest renders.
// Panics if n <= 0 (programmer error).
func WithMaxDepth(n int) Option {
	if n <= 0 {
		panic("govspeak: WithMaxDepth must be positive")
	}
	return func(r *Renderer) {
		r.cfg.maxDepth = n
	}
}

// WithMaxSourceSize bounds the size in bytes of a top-level source.
// Panics if n <= 0 (programmer error).
func WithMaxSourceSize(n int) Option {
	if n <= 0 {
		panic("govspeak: WithMaxSourceSize must be positive")
	}
	return func(r *Renderer) {
		r.cfg.maxSourceSize = n
	}
}

// WithMacros replaces the default macro table. The registry is frozen by
// NewRenderer; start from DefaultMacros().Clone() to extend the defaults.
func WithMacros(reg *MacroRegistry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.macros = reg
		}
	}
}

// WithPasses replaces the default post-processing passes. The registry is
// frozen by NewRenderer; start from DefaultPasses().Clone() to extend.
func WithPasses(reg *PassRegistry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.passes = reg
		}
	}
}

// WithComponents replaces the template-based component renderer.
func WithComponents(c ComponentRenderer) Option {
	return func(r *Renderer) {
		r.components = c
	}
}

// WithAssetPath sets a directory whose templates/ and locales/ override the
// embedded assets. Missing files fall back to the embedded set.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithSyntaxHighlighting enables chroma highlighting of fenced code blocks
// using the named style (e.g. "github", "monokai").
func WithSyntaxHighlighting(style string) Option {
	return func(r *Renderer) {
		r.cfg.highlightStyle = style
	}
}
