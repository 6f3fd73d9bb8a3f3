package govspeak

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-govspeak/internal/assets"
	"github.com/alnah/go-govspeak/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ ComponentRenderer      = (*templateComponents)(nil)
)

// Renderer turns govspeak sources into HTML. It holds frozen macro and pass
// registries and is safe for concurrent use.
// Create with NewRenderer, then call Render or NewDocument.
type Renderer struct {
	cfg        rendererConfig
	macros     *MacroRegistry
	passes     *PassRegistry
	converter  pipeline.HTMLConverter
	sanitizer  *pipeline.Sanitizer
	components ComponentRenderer
	locales    *localeSet
	logger     *zap.Logger
}

// Result is the outcome of a successful render.
type Result struct {
	HTML string

	// Diagnostics lists macros left unexpanded because their arguments
	// were malformed. Empty for a clean document.
	Diagnostics []Diagnostic
}

// NewRenderer creates a Renderer with the default macros, passes, components
// and locale tables. Use options to customize behavior.
// Returns error if the asset path is invalid or a template fails to parse.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			maxDepth:      DefaultMaxDepth,
			maxSourceSize: DefaultMaxSourceSize,
		},
		logger:    zap.NewNop(),
		sanitizer: pipeline.NewSanitizer(),
	}

	for _, opt := range opts {
		opt(r)
	}

	loader, err := assets.NewAssetResolver(r.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	r.logger.Debug("assets resolved",
		zap.Bool("custom", loader.HasCustomLoader()),
		zap.String("path", r.cfg.assetPath))

	if r.macros == nil {
		r.macros = DefaultMacros()
	}
	if r.passes == nil {
		r.passes = DefaultPasses()
	}
	r.macros.Freeze()
	r.passes.Freeze()

	var convOpts []pipeline.ConverterOption
	if r.cfg.highlightStyle != "" {
		convOpts = append(convOpts, pipeline.WithHighlighting(r.cfg.highlightStyle))
	}
	r.converter = pipeline.NewGoldmarkConverter(convOpts...)

	if r.components == nil {
		components, err := newTemplateComponents(loader)
		if err != nil {
			return nil, fmt.Errorf("initializing components: %w", err)
		}
		r.components = components
	}

	locales, err := newLocaleSet(loader)
	if err != nil {
		return nil, fmt.Errorf("loading locales: %w", err)
	}
	r.locales = locales

	return r, nil
}

// NewDocument wraps in for rendering. The input is copied; later changes to
// it do not affect the document.
func (r *Renderer) NewDocument(in Input) *Document {
	return &Document{
		renderer: r,
		input:    in.clone(),
		state:    &renderState{},
	}
}

// Render renders one document and returns its HTML with any diagnostics.
// The context is used for cancellation between pipeline stages.
func (r *Renderer) Render(ctx context.Context, in Input) (*Result, error) {
	doc := r.NewDocument(in)
	out, err := doc.ToHTML(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{HTML: out, Diagnostics: doc.Diagnostics()}, nil
}

var defaultRenderer = sync.OnceValues(func() (*Renderer, error) {
	return NewRenderer()
})

// ToHTML renders source with the default renderer and no references.
func ToHTML(ctx context.Context, source string) (string, error) {
	r, err := defaultRenderer()
	if err != nil {
		return "", err
	}
	return r.NewDocument(Input{Source: source}).ToHTML(ctx)
}
