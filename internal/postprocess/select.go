package postprocess

import (
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var selectors sync.Map // string -> cascadia.Selector

// Select returns the nodes under root matching the CSS selector, in
// document order. Compiled selectors are cached. An invalid selector
// panics; selectors are fixed at build time.
func Select(root *html.Node, selector string) []*html.Node {
	return compiled(selector).MatchAll(root)
}

// SelectFirst returns the first node matching selector, or nil.
func SelectFirst(root *html.Node, selector string) *html.Node {
	return compiled(selector).MatchFirst(root)
}

func compiled(selector string) cascadia.Selector {
	if s, ok := selectors.Load(selector); ok {
		return s.(cascadia.Selector)
	}
	actual, _ := selectors.LoadOrStore(selector, cascadia.MustCompile(selector))
	return actual.(cascadia.Selector)
}
