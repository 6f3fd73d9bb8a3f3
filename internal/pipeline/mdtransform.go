package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Quote decoration around a blockquote line: > "text" becomes > text.
	blockquoteExtraQuotes = regexp.MustCompile(
		"(?m)^>[ \\t]*[\"\u201c\u201d\u201e\u201f\u2033\u2036]*([^ \\t\\n].+?)[\"\u201c\u201d\u201e\u201f\u2033\u2036]*[ \\t]*$",
	)
)

// RemoveExtraQuotes strips straight and typographic quote marks that
// authors wrap around blockquote lines.
func RemoveExtraQuotes(content string) string {
	return blockquoteExtraQuotes.ReplaceAllString(content, "> $1")
}

// RemoveForbiddenCharacters drops code points that are not suitable for
// markup: control characters other than whitespace, surrogates,
// noncharacters and the W3C unicode-xml character list.
func RemoveForbiddenCharacters(content string) string {
	if strings.IndexFunc(content, forbidden) < 0 {
		return content
	}
	return strings.Map(func(r rune) rune {
		if forbidden(r) {
			return -1
		}
		return r
	}, content)
}

func forbidden(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r' || r == '\u0085':
		return false
	case r < 0x20, r >= 0x7f && r <= 0x9f:
		return true
	case r >= 0xd800 && r <= 0xdfff:
		return true
	case r >= 0xfdd0 && r <= 0xfdef:
		return true
	case r&0xfffe == 0xfffe:
		return true
	}
	return unsuitableForMarkup(r)
}

// unsuitableForMarkup reports characters from https://www.w3.org/TR/unicode-xml/#Charlist.
func unsuitableForMarkup(r rune) bool {
	switch {
	case r == 0x0340, r == 0x0341, r == 0x17a3, r == 0x17d3:
		return true
	case r == 0x2028, r == 0x2029:
		return true
	case r >= 0x202a && r <= 0x202e:
		return true
	case r >= 0x206a && r <= 0x206f:
		return true
	case r >= 0xfff9 && r <= 0xfffc:
		return true
	case r == 0xfeff:
		return true
	case r >= 0x1d173 && r <= 0x1d17a:
		return true
	}
	return false
}
