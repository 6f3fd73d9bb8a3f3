// Package dom wraps golang.org/x/net/html for fragment-level DOM work:
// parsing HTML fragments into a container node, small mutation helpers
// used by post-processing passes, and a serializer that writes typographic
// characters as named entities.
package dom
