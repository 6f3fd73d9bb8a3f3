package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	highlightStyle string
}

// WithHighlighting enables chroma syntax highlighting of fenced code blocks
// using CSS classes. The style name only affects the generated stylesheet
// lookup and may be empty.
func WithHighlighting(style string) ConverterOption {
	return func(c *converterConfig) {
		if style == "" {
			style = "github"
		}
		c.highlightStyle = style
	}
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark,
// configured to behave like kramdown for the constructs govspeak relies on.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with tables, footnotes,
// definition lists, typographic quotes and block attribute lists.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	extensions := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.DefinitionList,
		extension.Typographer, // emits &lsquo; &rsquo; &ldquo; &rdquo; &hellip; &ndash; &mdash;
		extension.NewFootnote(
			extension.WithFootnoteLinkClass([]byte("footnote")),
			extension.WithFootnoteBacklinkClass([]byte("reversefootnote")),
			extension.WithFootnoteBacklinkHTML([]byte("&#8617;")),
		),
	}
	if cfg.highlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.highlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(), // {#id .class} after headings
			parser.WithASTTransformers(
				util.Prioritized(&blockAttributeTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			// Macros emit raw HTML that must pass through; the sanitizer
			// runs afterwards.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
