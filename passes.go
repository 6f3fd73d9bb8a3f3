package govspeak

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/net/html"

	"github.com/alnah/go-govspeak/internal/dom"
	"github.com/alnah/go-govspeak/internal/postprocess"
)

// DefaultPasses returns the shared, frozen default post-processing passes.
// Call Clone on it to build an extended list for WithPasses.
func DefaultPasses() *PassRegistry {
	return defaultPasses()
}

var defaultPasses = sync.OnceValue(func() *PassRegistry {
	r := postprocess.NewRegistry[*Document]()
	r.MustRegister("add class to last p of blockquote", markLastBlockquoteParagraph)
	r.MustRegister("fix image attachment escaping", restoreFigureWrappers)
	r.MustRegister("embed attachment HTML", embedAttachments("govspeak-embed-attachment", ComponentAttachment, true))
	r.MustRegister("embed attachment link HTML", embedAttachments("govspeak-embed-attachment-link", ComponentAttachmentLink, false))
	r.MustRegister("add table headers and row / column scopes", scopeTableHeaders)
	r.MustRegister("use component for buttons", buttonComponents)
	r.MustRegister("use custom footnotes", labelFootnotes)
	r.MustRegister("add tabindex=0 to tables", focusableTables)
	for _, class := range []string{"section", "call-to-action", "information"} {
		r.MustRegister("add index id to "+class, indexChildIDs(class))
	}
	return r.Freeze()
})

func markLastBlockquoteParagraph(_ *Document, root *html.Node) error {
	for _, p := range postprocess.Select(root, "blockquote p:last-child") {
		dom.SetAttr(p, "class", "last-child")
	}
	return nil
}

var (
	escapedWrapper    = regexp.MustCompile(`&lt;div class="img"&gt;|&lt;figcaption&gt;`)
	escapedImgDiv     = regexp.MustCompile(`(?s)&lt;(div class="img")&gt;(.*?)&lt;(/div)&gt;`)
	escapedFigcaption = regexp.MustCompile(`(?s)&lt;(figcaption)&gt;(.*?)&lt;(/figcaption)&gt;`)
)

// restoreFigureWrappers undoes the escaping of the block tags renderImage
// emits when a figure ends up inside inline content.
func restoreFigureWrappers(_ *Document, root *html.Node) error {
	for _, fig := range postprocess.Select(root, "figure.image") {
		inner := dom.InnerHTML(fig)
		if !escapedWrapper.MatchString(inner) {
			continue
		}
		inner = escapedImgDiv.ReplaceAllString(inner, "<$1>$2<$3>")
		inner = escapedFigcaption.ReplaceAllString(inner, "<$1>$2<$3>")
		if err := dom.SetInnerHTML(fig, inner); err != nil {
			return err
		}
	}
	return nil
}

// embedAttachments swaps attachment placeholders for the named component.
// Block placeholders also replace a paragraph they are the only child of.
func embedAttachments(tag, component string, block bool) Pass {
	return func(d *Document, root *html.Node) error {
		for _, el := range postprocess.Select(root, tag) {
			id, _ := dom.Attr(el, "id")
			a, ok := d.attachmentByID(id)
			if !ok {
				dom.Remove(el)
				continue
			}

			out, err := d.component(component, d.attachmentData(a))
			if err != nil {
				return err
			}

			target := el
			if block {
				if p := dom.SoleChildOf(el, "p"); p != nil {
					target = p
				}
			}
			if err := dom.ReplaceWithHTML(target, strings.TrimSpace(out)); err != nil {
				return err
			}
		}
		return nil
	}
}

var (
	headerMarker = regexp.MustCompile(`(?m)^# `)
	rowMarker    = regexp.MustCompile(`(?m)^#($|\s.*$)`)
	rowPrefix    = regexp.MustCompile(`(?m)^#($|\s)`)
)

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// scopeTableHeaders strips "# " markers from header cells and promotes
// "#"-marked first body cells to row headers. "#word" is left alone.
func scopeTableHeaders(_ *Document, root *html.Node) error {
	for _, th := range postprocess.Select(root, "thead th") {
		text := dom.Text(th)
		stripped := headerMarker.ReplaceAllString(text, "")
		if isBlank(stripped) {
			dom.SetText(th, "")
			dom.Rename(th, "td")
			continue
		}
		if stripped != text {
			dom.SetText(th, stripped)
		}
		dom.SetAttr(th, "scope", "col")
	}

	for _, td := range postprocess.Select(root, ":not(thead) tr td:first-child") {
		if !rowMarker.MatchString(dom.Text(td)) {
			continue
		}
		// Strip only the first text node so links in the cell survive.
		if t := dom.FirstTextNode(td); t != nil {
			t.Data = rowPrefix.ReplaceAllString(t.Data, "")
		}
		dom.Rename(td, "th")
		dom.SetAttr(td, "scope", "row")
	}
	return nil
}

// buttonComponents swaps macro-generated buttons for the button component.
// Component output carries gem-c-button and is not matched again.
func buttonComponents(d *Document, root *html.Node) error {
	for _, el := range postprocess.Select(root, ".govuk-button:not(.gem-c-button)") {
		href, _ := dom.Attr(el, "href")
		start, _ := dom.Attr(el, "data-start")
		module, _ := dom.Attr(el, "data-module")
		code, _ := dom.Attr(el, "data-tracking-code")
		name, _ := dom.Attr(el, "data-tracking-name")

		out, err := d.component(ComponentButton, ButtonData{
			Text:         dom.Text(el),
			Href:         href,
			Start:        start != "",
			Secondary:    dom.HasClass(el, "govuk-button--secondary"),
			Module:       module,
			TrackingCode: code,
			TrackingName: name,
		})
		if err != nil {
			return err
		}
		if err := dom.ReplaceWithHTML(el, strings.TrimSpace(out)); err != nil {
			return err
		}
	}
	return nil
}

func labelFootnotes(_ *Document, root *html.Node) error {
	for _, a := range postprocess.Select(root, "a.footnote") {
		href, _ := dom.Attr(a, "href")
		number := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, href)
		dom.SetText(a, fmt.Sprintf("[footnote %s]", number))
	}

	for _, el := range postprocess.Select(root, "[role='doc-backlink']") {
		label := "go to where this is referenced"
		if sup := postprocess.SelectFirst(el, "sup"); sup != nil {
			label += " " + dom.Text(sup)
		}
		dom.SetAttr(el, "aria-label", label)
	}
	return nil
}

func focusableTables(_ *Document, root *html.Node) error {
	for _, table := range postprocess.Select(root, "table") {
		if class, _ := dom.Attr(table, "class"); strings.Contains(class, "js-barchart-table") {
			continue
		}
		dom.SetAttr(table, "tabindex", "0")
	}
	return nil
}

// indexChildIDs prefixes the ids of the direct children of the nth div.class
// with class-header-n, keeping anchors unique across repeated containers.
func indexChildIDs(class string) Pass {
	return func(_ *Document, root *html.Node) error {
		for i, div := range postprocess.Select(root, "div."+class) {
			for _, child := range dom.ChildElements(div) {
				if id, ok := dom.Attr(child, "id"); ok {
					dom.SetAttr(child, "id", fmt.Sprintf("%s-header-%d-%s", class, i+1, id))
				}
			}
		}
		return nil
	}
}
