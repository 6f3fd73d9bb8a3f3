package pipeline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Block attribute lists follow kramdown: a line of the form
// {: .class #id key="value"} attaches to the block before it.
var (
	attrListLine  = regexp.MustCompile(`^\{:\s*(.*?)\s*\}$`)
	attrListToken = regexp.MustCompile(`\.([\w-]+)|#([\w-]+)|([\w-]+)=("[^"]*"|'[^']*')`)
)

// blockAttributeTransformer applies kramdown-style block attribute lists.
// Three placements are recognised:
//   - a paragraph consisting only of the list applies to the previous block;
//   - a list on the last line of a paragraph applies to that paragraph;
//   - a trailing table row holding only the list applies to the table.
type blockAttributeTransformer struct{}

func (t *blockAttributeTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var paragraphs, tables []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindParagraph:
			paragraphs = append(paragraphs, n)
			return ast.WalkSkipChildren, nil
		case east.KindTable:
			tables = append(tables, n)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, table := range tables {
		applyTableRowAttributes(table, source)
	}
	for _, p := range paragraphs {
		applyParagraphAttributes(p, source)
	}
}

func applyTableRowAttributes(table ast.Node, source []byte) {
	row := table.LastChild()
	if row == nil || row.Kind() != east.KindTableRow {
		return
	}
	cell := row.FirstChild()
	if cell == nil {
		return
	}
	attrs, ok := attributeList(linesText(cell, source))
	if !ok {
		return
	}
	for c := cell.NextSibling(); c != nil; c = c.NextSibling() {
		if strings.TrimSpace(linesText(c, source)) != "" {
			return
		}
	}
	table.RemoveChild(table, row)
	applyAttributes(table, attrs)
}

func applyParagraphAttributes(p ast.Node, source []byte) {
	lines := p.Lines()
	if lines.Len() == 0 {
		return
	}
	last := lines.At(lines.Len() - 1)
	attrs, ok := attributeList(string(last.Value(source)))
	if !ok {
		return
	}

	if lines.Len() == 1 {
		target := p.PreviousSibling()
		if target == nil {
			return
		}
		applyAttributes(target, attrs)
		p.Parent().RemoveChild(p.Parent(), p)
		return
	}

	// Drop the inline nodes produced by the attribute line. The line before
	// it always ends in a text node carrying the line break.
	for c := p.LastChild(); c != nil; {
		prev := c.PreviousSibling()
		p.RemoveChild(p, c)
		if tx, ok := prev.(*ast.Text); ok && (tx.SoftLineBreak() || tx.HardLineBreak()) {
			tx.SetSoftLineBreak(false)
			tx.SetHardLineBreak(false)
			break
		}
		c = prev
	}
	applyAttributes(p, attrs)
}

func linesText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSpace(b.String())
}

func attributeList(line string) (string, bool) {
	m := attrListLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

func applyAttributes(n ast.Node, attrs string) {
	var classes []string
	if v, ok := n.AttributeString("class"); ok {
		switch existing := v.(type) {
		case []byte:
			classes = strings.Fields(string(existing))
		case string:
			classes = strings.Fields(existing)
		}
	}

	for _, m := range attrListToken.FindAllStringSubmatch(attrs, -1) {
		switch {
		case m[1] != "":
			classes = append(classes, m[1])
		case m[2] != "":
			n.SetAttributeString("id", []byte(m[2]))
		case m[3] != "":
			n.SetAttributeString(m[3], []byte(m[4][1:len(m[4])-1]))
		}
	}
	if len(classes) > 0 {
		n.SetAttributeString("class", []byte(strings.Join(classes, " ")))
	}
}
