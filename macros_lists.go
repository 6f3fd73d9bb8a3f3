package govspeak

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-govspeak/internal/dom"
	"github.com/alnah/go-govspeak/internal/macro"
)

// orderedMarker matches an ordered list marker, optionally behind a bullet,
// so it can be escaped into literal text.
var orderedMarker = regexp.MustCompile(`(?m)^(\s*(?:[*+-]\s+)?)(\d+)([.)])(\s)`)

// expandLegislativeList parses the body with ordered list markers disabled,
// so numbering stays as authored, then turns the bullet lists into ordered
// ones.
func expandLegislativeList(d *Document, m Match) (string, error) {
	body := orderedMarker.ReplaceAllString(strings.TrimSpace(m.Group(1)), `${1}${2}\${3}${4}`)
	out, err := d.Parse(body)
	if err != nil {
		return "", err
	}
	out = strings.ReplaceAll(out, "<ul>", "<ol>")
	out = strings.ReplaceAll(out, "</ul>", "</ol>")
	out = strings.Replace(out, "<ol>", `<ol class="legislative-list">`, 1)
	return d.block(out), nil
}

var stepLine = regexp.MustCompile(`s(\d+)\.\s(.*)(?:\n|$)`)

func expandNumberedList(d *Document, m Match) (string, error) {
	body := m.Group(1)

	var b strings.Builder
	b.WriteString(`<ol class="steps">` + "\n")
	last := 0
	for _, loc := range stepLine.FindAllStringSubmatchIndex(body, -1) {
		b.WriteString(body[last:loc[0]])
		item, err := d.RenderNested(strings.TrimSpace(body[loc[4]:loc[5]]))
		if err != nil {
			return "", err
		}
		b.WriteString("<li>" + item + "</li>\n")
		last = loc[1]
	}
	b.WriteString(body[last:])
	b.WriteString("</ol>")
	return d.block(b.String()), nil
}

// expandPriorityList marks the first K top-level items of the rendered body
// as primary. Nested items are never counted.
func expandPriorityList(d *Document, m Match) (string, error) {
	limit, err := strconv.Atoi(m.Group(1))
	if err != nil {
		return "", macro.Malformed("priority count %q: %v", m.Group(1), err)
	}

	out, err := d.RenderNested(strings.TrimSpace(m.Group(2)))
	if err != nil {
		return "", err
	}

	out, err = dom.Transform(out, func(root *html.Node) error {
		tagged := 0
		for _, list := range dom.ChildElements(root) {
			if list.Data != "ul" && list.Data != "ol" {
				continue
			}
			for _, item := range dom.ChildElements(list) {
				if tagged >= limit {
					return nil
				}
				if item.Data == "li" {
					dom.SetAttr(item, "class", "primary-item")
					tagged++
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return d.block(out), nil
}
