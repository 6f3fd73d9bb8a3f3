package govspeak

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"

	"github.com/alnah/go-govspeak/internal/macro"
)

func mustSection(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.Multiline)
	re.MatchTimeout = macro.DefaultMatchTimeout
	return re
}

var (
	accordionSection = mustSection(`(?s)\$Heading\s*(.*?)\s*\$EndHeading\s*\$Summary\s*(.*?)\s*\$EndSummary\s*\$Content\s*(.*?)\s*\$EndContent`)
	detailsSection   = mustSection(`(?s)\$Heading\s*(.*?)\s*\$EndHeading\s*\$Content\s*(.*?)\s*\$EndContent`)
	figureAlt        = mustSection(`(?s)\$Alt\s*(.*?)\s*\$EndAlt`)
	figureURL        = mustSection(`(?s)\$URL\s*(.*?)\s*\$EndURL`)
	figureCaption    = mustSection(`(?s)\$Caption\s*(.*?)\s*\$EndCaption`)
	youtubeID        = mustSection(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)
)

// expandAccordion renders each heading/summary/content triple as a section.
// The accordion number comes from the document-wide counter; section
// numbers restart at 1 in every accordion.
func expandAccordion(d *Document, m Match) (string, error) {
	sections, err := macro.FindAll(accordionSection, m.Group(1))
	if err != nil {
		return "", err
	}

	n := strconv.Itoa(d.nextAccordion())
	var b strings.Builder
	b.WriteString(`<div class="govuk-accordion" data-module="govuk-accordion" id="accordion-` + n + `">`)
	for i, s := range sections {
		idx := strconv.Itoa(i + 1)
		heading := "accordion-" + n + "-heading-" + idx

		summary := ""
		if text := strings.TrimSpace(s.Group(2)); text != "" {
			if summary, err = d.RenderNested("<div>" + text + "</div>"); err != nil {
				return "", err
			}
		}
		content, err := d.RenderNested(strings.TrimSpace(s.Group(3)))
		if err != nil {
			return "", err
		}

		b.WriteString(`<div class="govuk-accordion__section ">`)
		b.WriteString(`<div class="govuk-accordion__section-header">`)
		b.WriteString(`<h2 class="govuk-accordion__section-heading">`)
		b.WriteString(`<span class="govuk-accordion__section-button" id="` + heading + `">` + s.Group(1) + `</span>`)
		b.WriteString(`</h2>`)
		b.WriteString(summary)
		b.WriteString(`</div>`)
		b.WriteString(`<div id="accordion-` + n + `-content-` + idx + `" class="govuk-accordion__section-content" aria-labelledby="` + heading + `">`)
		b.WriteString(`<div class='govuk-body'>` + content + `</div>`)
		b.WriteString(`</div>`)
		b.WriteString(`</div>`)
	}
	b.WriteString("</div>")
	return d.block(b.String()), nil
}

func expandYoutubeVideo(_ *Document, m Match) (string, error) {
	id, ok, err := macro.FindFirst(youtubeID, m.Group(2))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", macro.Malformed("no video id in %q", m.Group(2))
	}

	src := "https://www.youtube.com/embed/" + html.EscapeString(id.Group(2)) +
		"?enablejsapi=1&amp;origin=https%3A%2F%2Fwww.early-career-framework.education.gov.uk"
	title := ""
	if m.Matched(1) {
		title = ` title="` + html.EscapeString(m.Group(1)) + `"`
	}
	return `<iframe class="govspeak-embed-video" width="625" height="345" src="` + src + `"` + title +
		` frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen=""></iframe>`, nil
}

func expandFigure(_ *Document, m Match) (string, error) {
	body := m.Group(1)
	parts := make(map[string]string, 3)
	for _, p := range []struct {
		name string
		re   *regexp2.Regexp
	}{{"Alt", figureAlt}, {"URL", figureURL}, {"Caption", figureCaption}} {
		part, ok, err := macro.FindFirst(p.re, body)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", macro.Malformed("figure without $%s", p.name)
		}
		parts[p.name] = part.Group(1)
	}

	return `<figure class="image embedded">` +
		`<div class="img"><img src="` + html.EscapeString(parts["URL"]) + `" alt="` + html.EscapeString(parts["Alt"]) + `"></div>` +
		`<figcaption><p>` + parts["Caption"] + `</p></figcaption>` +
		`</figure>`, nil
}

func expandDetails(d *Document, m Match) (string, error) {
	sections, err := macro.FindAll(detailsSection, m.Group(1))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, s := range sections {
		summary, err := d.RenderNested(s.Group(1))
		if err != nil {
			return "", err
		}
		summary = strings.ReplaceAll(strings.ReplaceAll(summary, "<p>", ""), "</p>", "")

		content, err := d.RenderNested(strings.TrimSpace(s.Group(2)))
		if err != nil {
			return "", err
		}

		b.WriteString(`<details class="govuk-details" data-module="govuk-details">`)
		b.WriteString(`<summary class="govuk-details__summary">`)
		b.WriteString(`<span class="govuk-details__summary-text">` + summary + `</span>`)
		b.WriteString(`</summary>`)
		b.WriteString(`<div class="govuk-details__text">`)
		b.WriteString(content)
		b.WriteString(`</div>`)
		b.WriteString(`</details>`)
	}
	return d.block(b.String()), nil
}
