package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// namedEntities are the characters written back as named references.
// They cover what the typographer produces plus the non-breaking space.
var namedEntities = map[rune]string{
	'\u00a0': "&nbsp;",
	'\u2018': "&lsquo;",
	'\u2019': "&rsquo;",
	'\u201c': "&ldquo;",
	'\u201d': "&rdquo;",
	'\u2026': "&hellip;",
	'\u2013': "&ndash;",
	'\u2014': "&mdash;",
	'\u00ab': "&laquo;",
	'\u00bb': "&raquo;",
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "plaintext": true,
	"script": true, "style": true, "xmp": true,
}

// Render serializes the children of root.
func Render(root *html.Node) string {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		renderNode(&b, c)
	}
	return b.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	return Render(n)
}

func renderNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(b, c)
		}
	case html.TextNode:
		if n.Parent != nil && n.Parent.Type == html.ElementNode && rawTextElements[n.Parent.Data] {
			b.WriteString(n.Data)
			return
		}
		escapeText(b, n.Data)
	case html.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case html.DoctypeNode:
		b.WriteString("<!DOCTYPE ")
		b.WriteString(n.Data)
		b.WriteString(">")
	case html.ElementNode:
		renderElement(b, n)
	}
}

func renderElement(b *strings.Builder, n *html.Node) {
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		escapeAttr(b, a.Val)
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if voidElements[n.Data] && n.Namespace == "" {
		return
	}

	// The parser drops a newline directly after these start tags.
	switch n.Data {
	case "pre", "listing", "textarea":
		if c := n.FirstChild; c != nil && c.Type == html.TextNode && strings.HasPrefix(c.Data, "\n") {
			b.WriteByte('\n')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Data)
	b.WriteByte('>')
}

func escapeText(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			if e, ok := namedEntities[r]; ok {
				b.WriteString(e)
				continue
			}
			b.WriteRune(r)
		}
	}
}

func escapeAttr(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\u00a0':
			b.WriteString("&nbsp;")
		default:
			b.WriteRune(r)
		}
	}
}
