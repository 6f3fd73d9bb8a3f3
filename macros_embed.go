package govspeak

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Reference macros expand to "" when their id does not resolve.

func expandAttachedImage(d *Document, m Match) (string, error) {
	n, err := strconv.Atoi(m.Group(1))
	images := d.input.References.Images
	if err != nil || n < 1 || n > len(images) {
		return "", nil
	}
	return d.renderImage(imageFigure(images[n-1])), nil
}

func expandImage(d *Document, m Match) (string, error) {
	for _, img := range d.input.References.Images {
		if img.ID == m.Group(1) {
			return d.renderImage(imageFigure(img)), nil
		}
	}
	return "", nil
}

func (d *Document) attachmentByContentID(id string) (Attachment, bool) {
	for _, a := range d.input.References.Attachments {
		if a.ContentID == id {
			return a, true
		}
	}
	return Attachment{}, false
}

func (d *Document) attachmentByID(id string) (Attachment, bool) {
	for _, a := range d.input.References.Attachments {
		if a.ID == id {
			return a, true
		}
	}
	return Attachment{}, false
}

// expandInlineAttachment renders the deprecated inline embed as a linked
// title followed by its attributes.
func expandInlineAttachment(d *Document, m Match) (string, error) {
	a, ok := d.attachmentByContentID(m.Group(1))
	if !ok {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("<span")
	if a.ID != "" {
		b.WriteString(` id="attachment_` + html.EscapeString(a.ID) + `"`)
	}
	b.WriteString(` class="attachment-inline">`)
	// The macro output must stay on one line.
	title := strings.ReplaceAll(a.Title, "\n", " ")
	b.WriteString(`<a href="` + html.EscapeString(a.URL) + `">` + html.EscapeString(title) + "</a>")
	if attrs := d.attachmentAttributes(a); attrs != "" {
		b.WriteString(" (" + string(attrs) + ")")
	}
	b.WriteString("</span>")
	return b.String(), nil
}

func expandAttachmentImage(d *Document, m Match) (string, error) {
	a, ok := d.attachmentByContentID(m.Group(1))
	if !ok {
		return "", nil
	}
	return d.renderImage(attachmentFigure(a)), nil
}

func expandEmbedLink(d *Document, m Match) (string, error) {
	for _, l := range d.input.References.Links {
		if l.ContentID != m.Group(1) {
			continue
		}
		if l.URL == "" {
			return l.Title, nil
		}
		return "[" + l.Title + "](" + l.URL + ")", nil
	}
	return "", nil
}

func expandContact(d *Document, m Match) (string, error) {
	for _, c := range d.input.References.Contacts {
		if c.ContentID == m.Group(1) {
			return d.component(ComponentContact, d.contactData(c))
		}
	}
	return "", nil
}

// placeholder emits an element the attachment passes later swap for the
// matching component.
func placeholder(tag string) MacroHandler {
	return func(d *Document, m Match) (string, error) {
		id := m.Group(1)
		if _, ok := d.attachmentByID(id); !ok {
			return "", nil
		}
		return "<" + tag + ` id="` + html.EscapeString(id) + `"></` + tag + ">", nil
	}
}
