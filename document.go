package govspeak

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-govspeak/internal/macro"
	"github.com/alnah/go-govspeak/internal/pipeline"
)

// Document is one govspeak source bound to a Renderer. Its HTML is computed
// once; later calls return the memoized result.
type Document struct {
	renderer *Renderer
	input    Input
	depth    int
	state    *renderState

	// ctx is the context of the render in progress, read by macro handlers
	// that render nested bodies.
	ctx context.Context

	once sync.Once
	html string
	err  error
}

// renderState is shared by a top-level document and all its nested renders.
type renderState struct {
	mu          sync.Mutex
	accordion   int
	diagnostics []Diagnostic

	// blocks holds finished HTML that macros put aside while the source is
	// still markup. Entries only refer to earlier entries.
	blocks []string
}

func (s *renderState) reset() {
	s.mu.Lock()
	s.accordion = 1
	s.diagnostics = nil
	s.blocks = nil
	s.mu.Unlock()
}

func (s *renderState) stash(html string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks = append(s.blocks, html)
	return len(s.blocks) - 1
}

func (s *renderState) block(i int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.blocks) {
		return "", false
	}
	return s.blocks[i], true
}

func (s *renderState) nextAccordion() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.accordion
	s.accordion++
	return n
}

func (s *renderState) report(d Diagnostic) {
	s.mu.Lock()
	s.diagnostics = append(s.diagnostics, d)
	s.mu.Unlock()
}

// ToHTML renders the document. The first call does the work and its result,
// error included, is returned by every later call.
// A panic in a macro handler or pass is returned as an error.
func (d *Document) ToHTML(ctx context.Context) (string, error) {
	d.once.Do(func() {
		defer func() {
			if rec := recover(); rec != nil {
				d.html, d.err = "", fmt.Errorf("internal error: %v", rec)
			}
		}()
		d.html, d.err = d.render(ctx)
	})
	return d.html, d.err
}

func (d *Document) render(ctx context.Context) (string, error) {
	r := d.renderer
	if d.depth == 0 {
		if err := d.input.Validate(); err != nil {
			return "", err
		}
		if n := len(d.input.Source); n > r.cfg.maxSourceSize {
			return "", fmt.Errorf("%w: %d bytes (max %d)", ErrSourceTooLarge, n, r.cfg.maxSourceSize)
		}
		d.state.reset()
	}
	if d.depth > r.cfg.maxDepth {
		return "", fmt.Errorf("%w: %d", ErrNestingTooDeep, r.cfg.maxDepth)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.ctx = ctx
	start := time.Now()

	text, err := d.preprocess()
	if err != nil {
		return "", err
	}

	out, err := r.converter.ToHTML(ctx, text)
	if err != nil {
		return "", err
	}
	out = d.restoreBlocks(out)

	if !d.input.DisableSanitize {
		out = r.sanitizer.Sanitize(out, d.input.AllowedElements...)
	}

	out, err = r.passes.Process(d, out)
	if err != nil {
		return "", err
	}

	r.logger.Debug("rendered document",
		zap.Int("depth", d.depth),
		zap.Int("bytes", len(d.input.Source)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// preprocess strips decoration and unsuitable characters, then expands
// every macro in registration order.
func (d *Document) preprocess() (string, error) {
	source := d.input.Source
	if !d.input.AllowExtraQuotes {
		source = pipeline.RemoveExtraQuotes(source)
	}
	source = pipeline.RemoveForbiddenCharacters(source)
	return d.renderer.macros.Apply(d, source, d.reportMalformed)
}

func (d *Document) reportMalformed(name string, err error) {
	d.state.report(Diagnostic{Macro: name, Err: err})
	d.renderer.logger.Warn("malformed macro left unexpanded",
		zap.String("macro", name),
		zap.Int("depth", d.depth),
		zap.Error(err),
	)
}

// blockToken is the stand-in for a stashed block. Private use code points
// pass through the parser as plain text.
var blockToken = regexp.MustCompile(`<p>\x{E000}(\d+)\x{E001}</p>|\x{E000}(\d+)\x{E001}`)

// block sets markup aside and returns a paragraph of its own that the parser
// leaves alone. restoreBlocks puts it back after parsing, so blank lines
// inside it (in a <pre>, say) never reach the parser.
func (d *Document) block(markup string) string {
	i := d.state.stash(strings.Trim(markup, "\n"))
	return "\n\n\ue000" + strconv.Itoa(i) + "\ue001\n\n"
}

func (d *Document) restoreBlocks(out string) string {
	if !strings.ContainsRune(out, '\ue000') {
		return out
	}
	return blockToken.ReplaceAllStringFunc(out, func(tok string) string {
		sm := blockToken.FindStringSubmatch(tok)
		n := sm[1]
		if n == "" {
			n = sm[2]
		}
		i, err := strconv.Atoi(n)
		if err != nil {
			return tok
		}
		markup, ok := d.state.block(i)
		if !ok {
			return tok
		}
		return d.restoreBlocks(markup)
	})
}

// child creates a nested document over body. It shares the render state
// and copies everything else from d.
func (d *Document) child(body string) *Document {
	in := d.input.clone()
	in.Source = body
	return &Document{
		renderer: d.renderer,
		input:    in,
		depth:    d.depth + 1,
		state:    d.state,
	}
}

func (d *Document) context() context.Context {
	if d.ctx == nil {
		return context.Background()
	}
	return d.ctx
}

// RenderNested runs the whole pipeline over body as a child of d and
// returns its HTML. Intended for macro handlers.
func (d *Document) RenderNested(body string) (string, error) {
	return d.child(body).ToHTML(d.context())
}

// Parse converts body with the external grammar only: no macros, no
// sanitizing, no passes. Intended for macro handlers.
func (d *Document) Parse(body string) (string, error) {
	return d.renderer.converter.ToHTML(d.context(), body)
}

// Locale returns the document locale, "en" when unset.
func (d *Document) Locale() string {
	if d.input.Locale == "" {
		return "en"
	}
	return d.input.Locale
}

// References returns the reference lists macros resolve against.
func (d *Document) References() References {
	return d.input.References
}

// Depth returns 0 for a top-level document and n for the nth nested render.
func (d *Document) Depth() int {
	return d.depth
}

// Diagnostics returns the macros left unexpanded during the last render,
// nested renders included.
func (d *Document) Diagnostics() []Diagnostic {
	d.state.mu.Lock()
	defer d.state.mu.Unlock()
	return slices.Clone(d.state.diagnostics)
}

func (d *Document) nextAccordion() int {
	return d.state.nextAccordion()
}

var tagsAndSpace = regexp.MustCompile(`(?:<[^>]+>|\s)+`)

// ToText renders the document and reduces it to plain text: tags and
// whitespace runs collapse to single spaces and entities are decoded.
func (d *Document) ToText(ctx context.Context) (string, error) {
	out, err := d.ToHTML(ctx)
	if err != nil {
		return "", err
	}
	return html.UnescapeString(strings.TrimSpace(tagsAndSpace.ReplaceAllString(out, " "))), nil
}

// Valid reports whether sanitizing leaves the source unchanged, that is
// whether its sanitized and unsanitized renders are identical.
func (d *Document) Valid(ctx context.Context) (bool, error) {
	render := func(disable bool) (string, error) {
		in := d.input.clone()
		in.DisableSanitize = disable
		return d.renderer.NewDocument(in).ToHTML(ctx)
	}

	clean, err := render(false)
	if err != nil {
		return false, err
	}
	dirty, err := render(true)
	if err != nil {
		return false, err
	}
	return clean == dirty, nil
}

// ContactContentIDs returns the unique [Contact: id] ids of the source, in
// order of appearance, keeping only RFC 4122 UUIDs.
func (d *Document) ContactContentIDs() ([]string, error) {
	def, ok := d.renderer.macros.Lookup("Contact")
	if !ok {
		return nil, nil
	}
	matches, err := macro.FindAll(def.Pattern, d.input.Source)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, m := range matches {
		id := m.Group(1)
		if !isContentID(id) || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// isContentID accepts canonical hyphenated UUIDs of versions 1 to 5.
func isContentID(s string) bool {
	if len(s) != 36 {
		return false
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return u.Variant() == uuid.RFC4122 && u.Version() >= 1 && u.Version() <= 5
}
