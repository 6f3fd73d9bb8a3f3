package govspeak

import (
	"regexp"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
	"golang.org/x/net/html"

	"github.com/alnah/go-govspeak/internal/dom"
	"github.com/alnah/go-govspeak/internal/macro"
	"github.com/alnah/go-govspeak/internal/postprocess"
)

// DefaultMacros returns the shared, frozen default macro table.
// Call Clone on it to build an extended table for WithMacros.
func DefaultMacros() *MacroRegistry {
	return defaultMacros()
}

// Later definitions see the output of earlier ones, so more specific tokens
// come first: $CTA before $C, $Figure before $A.
var defaultMacros = sync.OnceValue(func() *MacroRegistry {
	r := macro.NewRegistry[*Document]()

	r.MustRegister("button", `(?:\r|\n|^)\{button(.*?)\}\s*\[([^\]]+)\]\(([^)]+)\)\s*\{/button\}(?:\r|\n|$)`, expandButton)
	r.MustRegister("highlight-answer", "", nestedBlock("highlight-answer"))
	r.MustRegister("stat-headline", `(?s)\{stat-headline\}(.*?)\{/stat-headline\}`, nestedBlock("stat-headline"))
	r.MustRegister("external", macro.Between("x[", ")x"), expandExternal)
	r.MustRegister("informational", macro.SurroundedBy("^"),
		noteBlock(`<div role="note" aria-label="Information" class="application-notice info-notice">`+"\n"))
	r.MustRegister("important", macro.SurroundedBy("@"), expandImportant)
	r.MustRegister("helpful", macro.SurroundedBy("%"),
		noteBlock(`<div role="note" aria-label="Warning" class="application-notice help-notice">`+"\n"))
	r.MustRegister("barchart", `\{barchart(.*?)\}`, expandBarchart)
	r.MustRegister("attached-image", `^!!([0-9]+)`, expandAttachedImage)
	r.MustRegister("embed attachment inline", `\[embed:attachments:inline:\s*(.*?)\s*\]`, expandInlineAttachment)
	r.MustRegister("attachment image", `\[embed:attachments:image:\s*(.*?)\s*\]`, expandAttachmentImage)
	r.MustRegister("legislative list", `(?s)`+macro.NewParagraph+`\$LegislativeList\s*$(.*?)\$EndLegislativeList`, expandLegislativeList)
	r.MustRegister("numbered list", `^[ \t]*((s\d+\.\s.*(?:\n|$))+)`, expandNumberedList)
	for _, region := range devolvedRegions {
		r.MustRegister("devolved-"+region.key, `(?s):`+regexp2.Escape(region.key)+`:(.*?):`+regexp2.Escape(region.key)+`:`, devolvedBlock(region))
	}
	r.MustRegister("Priority list", `(?s)`+macro.NewParagraph+`\$PriorityList:(\d+)\s*$(.*?)(?:^\s*$|\Z)`, expandPriorityList)
	r.MustRegister("embed link", `\[embed:link:\s*(.*?)\s*\]`, expandEmbedLink)
	r.MustRegister("Contact", `\[Contact:\s*(.*?)\s*\]`, expandContact)
	r.MustRegister("Image", macro.NewParagraph+`\[Image:\s*(.*?)\s*\]`, expandImage)
	r.MustRegister("Attachment", macro.NewParagraph+`\[Attachment:\s*(.*?)\s*\]`, placeholder("govspeak-embed-attachment"))
	r.MustRegister("AttachmentLink", `\[AttachmentLink:\s*(.*?)\s*\]`, placeholder("govspeak-embed-attachment-link"))
	r.MustRegister("Accordion", `(?s)\$Accordion\s*$(.*?)\s*\$EndAccordion`, expandAccordion)
	r.MustRegister("YoutubeVideo", `(?s)\$YoutubeVideo(?:\[(.*?)\])?\((.*?)\)\$EndYoutubeVideo`, expandYoutubeVideo)
	r.MustRegister("Figure", `(?s)\$Figure\s*$(.*?)\s*\$EndFigure`, expandFigure)
	r.MustRegister("Details", `(?s)\$Details\s*$(.*?)\s*\$EndDetails`, expandDetails)

	for _, w := range wrappedBlocks {
		r.MustRegister(w.class, macro.SurroundedBy(w.token), wrapWithDiv(w.class, w.nested))
	}

	r.MustRegister("address", macro.SurroundedBy("$A"), expandAddress)

	return r.Freeze()
})

type wrappedBlock struct {
	class  string
	token  string
	nested bool
}

var wrappedBlocks = []wrappedBlock{
	{class: "section", token: "$Section", nested: true},
	{class: "call-to-action", token: "$CTA", nested: true},
	{class: "summary", token: "$!"},
	{class: "form-download", token: "$D"},
	{class: "contact", token: "$C"},
	{class: "place", token: "$P", nested: true},
	{class: "information", token: "$I", nested: true},
	{class: "additional-information", token: "$AI"},
	{class: "example", token: "$E", nested: true},
}

// nestedBlock wraps a nested render of group 1 in a div of class.
func nestedBlock(class string) MacroHandler {
	return noteBlock(`<div class="` + class + `">` + "\n")
}

// noteBlock wraps a nested render of group 1 after the given opening tag.
func noteBlock(open string) MacroHandler {
	return func(d *Document, m Match) (string, error) {
		body, err := d.RenderNested(strings.TrimSpace(m.Group(1)))
		if err != nil {
			return "", err
		}
		return d.block(open + body + "</div>"), nil
	}
}

// wrapWithDiv wraps group 1, rendered whole or only parsed, in a div.
func wrapWithDiv(class string, nested bool) MacroHandler {
	return func(d *Document, m Match) (string, error) {
		body := strings.TrimSpace(m.Group(1)) + "\n"
		render := d.Parse
		if nested {
			render = d.RenderNested
		}
		content, err := render(body)
		if err != nil {
			return "", err
		}
		return d.block("<div class=\"" + class + "\">\n" + content + "</div>"), nil
	}
}

var firstParagraph = regexp.MustCompile(`(?m)^<p>(.*)</p>$`)

func expandImportant(d *Document, m Match) (string, error) {
	body, err := d.RenderNested(strings.TrimSpace(m.Group(1)))
	if err != nil {
		return "", err
	}
	if loc := firstParagraph.FindStringSubmatchIndex(body); loc != nil {
		body = body[:loc[0]] + "<p><strong>" + body[loc[2]:loc[3]] + "</strong></p>" + body[loc[1]:]
	}
	return d.block(`<div role="note" aria-label="Important" class="advisory">` + body + "</div>"), nil
}

var trackingCode = regexp.MustCompile(`cross-domain-tracking:(.[^\s*]+)`)

func expandButton(_ *Document, m Match) (string, error) {
	attrs := m.Group(1)
	text := html.EscapeString(strings.TrimSpace(m.Group(2)))
	href := html.EscapeString(strings.TrimSpace(m.Group(3)))

	classes := "govuk-button"
	if strings.Contains(attrs, "secondary") {
		classes += " govuk-button--secondary"
	}

	var data strings.Builder
	if strings.Contains(attrs, "start") {
		data.WriteString(" data-start='true'")
	}
	if sm := trackingCode.FindStringSubmatch(attrs); sm != nil {
		data.WriteString(" data-module='cross-domain-tracking'")
		data.WriteString(" data-tracking-code='" + html.EscapeString(strings.TrimSpace(sm[1])) + "'")
		data.WriteString(" data-tracking-name='govspeakButtonTracker'")
	}

	return "\n" + `<a role="button" class="` + classes + `" href="` + href + `"` + data.String() + ">" + text + "</a>\n", nil
}

func expandExternal(d *Document, m Match) (string, error) {
	out, err := d.Parse("[" + strings.TrimSpace(m.Group(1)) + ")")
	if err != nil {
		return "", err
	}
	out, err = dom.Transform(out, func(root *html.Node) error {
		for _, a := range postprocess.Select(root, "a") {
			dom.SetAttr(a, "rel", "external")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return leadingBreak(m.Text()) + out, nil
}

// leadingBreak returns the line break a pattern consumed before its token.
func leadingBreak(match string) string {
	if strings.HasPrefix(match, "\r") || strings.HasPrefix(match, "\n") {
		return "\n"
	}
	return ""
}

func expandBarchart(_ *Document, m Match) (string, error) {
	opts := m.Group(1)
	parts := []string{"{:", ".js-barchart-table"}
	if strings.Contains(opts, "stacked") {
		parts = append(parts, ".mc-stacked")
	}
	if strings.Contains(opts, "compact") {
		parts = append(parts, ".compact")
	}
	if strings.Contains(opts, "negative") {
		parts = append(parts, ".mc-negative")
	}
	parts = append(parts, ".mc-auto-outdent", "}")
	return strings.Join(parts, " "), nil
}

type devolvedRegion struct {
	key  string
	name string
}

var devolvedRegions = []devolvedRegion{
	{key: "scotland", name: "Scotland"},
	{key: "england", name: "England"},
	{key: "england-wales", name: "England and Wales"},
	{key: "northern-ireland", name: "Northern Ireland"},
	{key: "wales", name: "Wales"},
	{key: "london", name: "London"},
}

func devolvedBlock(region devolvedRegion) MacroHandler {
	return func(d *Document, m Match) (string, error) {
		body, err := d.RenderNested(strings.TrimSpace(m.Group(1)))
		if err != nil {
			return "", err
		}
		return d.block(`<div class="devolved-content ` + region.key + `">` + "\n" +
			`<p class="devolved-header">This section applies to ` + region.name + "</p>\n" +
			`<div class="devolved-body">` + body + "</div>\n" +
			"</div>"), nil
	}
}

func expandAddress(_ *Document, m Match) (string, error) {
	body := strings.Replace(m.Group(1), "\n", "", 1)
	body = strings.ReplaceAll(body, "\n", "<br />")
	return "\n" + `<div class="address"><div class="adr org fn"><p>` + "\n" + body + "\n</p></div></div>\n\n", nil
}
