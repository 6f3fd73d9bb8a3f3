package macro

import "github.com/dlclark/regexp2"

// NewParagraph is a lookbehind that anchors a pattern to the start of the
// input or the start of a paragraph.
const NewParagraph = `(?<=\A|\n\n|\r\n\r\n)`

// Bracketed returns the default {::name}...{:/name} pattern.
func Bracketed(name string) string {
	n := regexp2.Escape(name)
	return `(?s)\{::` + n + `\}(.*?)\{:/` + n + `\}`
}

// SurroundedBy returns the pattern for a block opened and closed by the
// same token. The closing token's last character is optional, and a block
// with no closing token runs to the end of its line.
func SurroundedBy(open string) string {
	o := regexp2.Escape(open)
	return `(?s)(?:\r|\n|^)` + o + `(.*?)` + o + `? *(\r|\n|$)`
}

// Between returns the pattern for a block with distinct open and close
// tokens. The close token is required.
func Between(open, close string) string {
	return `(?s)(?:\r|\n|^)` + regexp2.Escape(open) + `(.*?)` + regexp2.Escape(close) + ` *(\r|\n|$)?`
}
