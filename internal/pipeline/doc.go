// Package pipeline implements the text and HTML stages around govspeak's
// external grammar.
//
// The stages are:
//   - Source clean-up (blockquote quote decoration, characters unsuitable
//     for markup)
//   - Markdown to HTML conversion via goldmark, configured to follow
//     kramdown where govspeak depends on it (footnote classes, typographic
//     entities, block attribute lists)
//   - Sanitization via bluemonday with a govspeak allow-list
//
// Macro expansion and DOM post-processing live in their own packages; the
// root govspeak package wires all stages together.
package pipeline
