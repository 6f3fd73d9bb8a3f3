package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment parses content as an HTML5 fragment in a <body> context and
// returns a DocumentNode container holding the parsed nodes.
func Fragment(content string) (*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(content), bodyContext())
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// FragmentIn parses content as children of the given element.
// Non-element contexts fall back to <body>.
func FragmentIn(content string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = bodyContext()
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:      html.ElementNode,
		DataAtom:  context.DataAtom,
		Data:      context.Data,
		Namespace: context.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}
	return nodes, nil
}

func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
}
