package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, s string) {
	RemoveChildren(n)
	if s != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// Attr returns the value of the attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key to val, replacing an existing value in place.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Classes returns the whitespace-separated tokens of the class attribute.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries the class token.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// Rename changes the tag name of an element.
func Rename(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

// Remove detaches n from its parent.
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// ReplaceWithHTML parses markup in the context of n's parent and swaps the
// resulting nodes in for n.
func ReplaceWithHTML(n *html.Node, markup string) error {
	parent := n.Parent
	if parent == nil {
		return nil
	}
	nodes, err := FragmentIn(markup, parent)
	if err != nil {
		return err
	}
	for _, c := range nodes {
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
	return nil
}

// SetInnerHTML replaces the children of n with the parsed markup.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := FragmentIn(markup, n)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// SoleChildOf returns the nearest ancestor whose tag is tag when n is that
// ancestor's only non-whitespace child, or nil.
func SoleChildOf(n *html.Node, tag string) *html.Node {
	p := n.Parent
	if p == nil || p.Type != html.ElementNode || p.Data != tag {
		return nil
	}
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if c == n {
			continue
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return nil
	}
	return p
}

// FirstTextNode returns the first descendant text node of n in document
// order, or nil.
func FirstTextNode(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c
		}
		if c.Type == html.ElementNode {
			if t := FirstTextNode(c); t != nil {
				return t
			}
		}
	}
	return nil
}

// ChildElements returns the element children of n.
func ChildElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Transform parses markup as a fragment, lets fn mutate it and serializes
// the result. Used by macros that adjust HTML they generated.
func Transform(markup string, fn func(root *html.Node) error) (string, error) {
	root, err := Fragment(markup)
	if err != nil {
		return "", err
	}
	if err := fn(root); err != nil {
		return "", err
	}
	return Render(root), nil
}
