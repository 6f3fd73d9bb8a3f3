package govspeak

import (
	"html"
	"html/template"
	"net/url"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
)

// figureImage is what renderImage needs from an image or an attachment.
type figureImage struct {
	ID      string
	URL     string
	AltText string
	Caption string
	Credit  string
}

func imageFigure(img Image) figureImage {
	return figureImage(img)
}

func attachmentFigure(a Attachment) figureImage {
	return figureImage{ID: a.ID, URL: a.URL, AltText: a.Title}
}

// renderImage writes an embedded image figure. The markup is kept on as few
// lines as possible because parsers escape block tags nested inside inline
// content; the figure pass restores them.
func (d *Document) renderImage(img figureImage) string {
	var b strings.Builder
	b.WriteString("<figure")
	if img.ID != "" {
		b.WriteString(` id="attachment_` + html.EscapeString(img.ID) + `"`)
	}
	b.WriteString(` class="image embedded">`)
	b.WriteString(`<div class="img"><img src="` + html.EscapeString(img.URL) + `" alt="` + html.EscapeString(img.AltText) + `"></div>`)

	caption := strings.TrimSpace(img.Caption)
	credit := strings.TrimSpace(img.Credit)
	if caption != "" || credit != "" {
		lines := []string{"<figcaption>"}
		if caption != "" {
			lines = append(lines, "<p>"+caption+"</p>")
		}
		if credit != "" {
			lines = append(lines, "<p>"+d.localeStrings().imageCredit(credit)+"</p>")
		}
		lines = append(lines, "</figcaption>")
		b.WriteString(strings.Join(lines, "\n"))
	}

	b.WriteString("</figure>")
	return b.String()
}

// fileTypes maps attachment extensions to their human-readable type.
var fileTypes = map[string]string{
	"chm":  "MS Compiled HTML Help",
	"csv":  `<abbr title="Comma-separated Values">CSV</abbr>`,
	"diff": "Plain text differences",
	"doc":  "MS Word Document",
	"docx": "MS Word Document",
	"dot":  "MS Word Document Template",
	"dxf":  `<abbr title="Drawing Exchange Format">DXF</abbr>`,
	"eps":  `<abbr title="Encapsulated PostScript">EPS</abbr>`,
	"gif":  `<abbr title="Graphics Interchange Format">GIF</abbr>`,
	"gml":  `<abbr title="Geography Markup Language">GML</abbr>`,
	"ics":  "iCalendar file",
	"jpg":  "JPEG",
	"odp":  `<abbr title="OpenDocument Presentation">ODP</abbr>`,
	"ods":  `<abbr title="OpenDocument Spreadsheet">ODS</abbr>`,
	"odt":  `<abbr title="OpenDocument Text">ODT</abbr>`,
	"pdf":  `<abbr title="Portable Document Format">PDF</abbr>`,
	"png":  `<abbr title="Portable Network Graphic">PNG</abbr>`,
	"ppt":  "MS PowerPoint Presentation",
	"pptx": "MS PowerPoint Presentation",
	"ps":   `<abbr title="PostScript">PS</abbr>`,
	"rdf":  `<abbr title="Resource Description Framework">RDF</abbr>`,
	"rtf":  `<abbr title="Rich Text Format">RTF</abbr>`,
	"sch":  `<abbr title="XML Schema">XSD</abbr>`,
	"txt":  "Plain text",
	"wsdl": `<abbr title="Web Services Description Language">WSDL</abbr>`,
	"xls":  "MS Excel Spreadsheet",
	"xlsm": "MS Excel Macro-Enabled Workbook",
	"xlsx": "MS Excel Spreadsheet",
	"xlt":  "MS Excel Spreadsheet Template",
	"xml":  `<abbr title="XML Document">XML</abbr>`,
	"xsd":  `<abbr title="XML Schema">XSD</abbr>`,
	"xslt": `<abbr title="Extensible Stylesheet Language Transformation">XSLT</abbr>`,
	"zip":  `<abbr title="Zip archive">ZIP</abbr>`,
}

// fileExtension returns the lower-case extension of the URL path.
func fileExtension(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

// attachmentAttributes describes an attachment: its type, size and length,
// or its URL when it is hosted elsewhere.
func (d *Document) attachmentAttributes(a Attachment) template.HTML {
	var attrs []string
	ext := fileExtension(a.URL)
	switch {
	case ext == "html":
		attrs = append(attrs, `<span class="type">HTML</span>`)
	case a.External:
		attrs = append(attrs, `<span class="url">`+html.EscapeString(a.URL)+`</span>`)
	default:
		if t, ok := fileTypes[ext]; ok {
			attrs = append(attrs, `<span class="type">`+t+`</span>`)
		}
		if a.FileSize > 0 {
			attrs = append(attrs, `<span class="file-size">`+humanize.Bytes(uint64(a.FileSize))+`</span>`)
		}
		if a.NumberOfPages > 0 {
			attrs = append(attrs, `<span class="page-length">`+d.localeStrings().pages(a.NumberOfPages)+`</span>`)
		}
	}
	return template.HTML(strings.Join(attrs, ", ")) // #nosec G203 -- built from escaped parts
}

func (d *Document) attachmentData(a Attachment) AttachmentData {
	return AttachmentData{
		ID:         a.ID,
		Title:      a.Title,
		URL:        a.URL,
		Attributes: d.attachmentAttributes(a),
	}
}

// contactData adapts a Contact for the contact component.
func (d *Document) contactData(c Contact) ContactData {
	data := ContactData{
		ID:               c.ID,
		Title:            c.Title,
		Description:      strings.TrimSpace(c.Description),
		Emails:           c.EmailAddresses,
		Phones:           c.PhoneNumbers,
		Forms:            c.ContactFormLinks,
		ContactFormLabel: d.localeStrings().ContactForm,
	}
	for _, a := range c.PostAddresses {
		var lines []AddressLine
		for _, l := range []AddressLine{
			{Class: "fn", Value: a.Title},
			{Class: "street-address", Value: a.StreetAddress},
			{Class: "locality", Value: a.Locality},
			{Class: "region", Value: a.Region},
			{Class: "postal-code", Value: a.PostalCode},
			{Class: "country-name", Value: a.WorldLocation},
		} {
			if l.Value = strings.TrimSpace(l.Value); l.Value != "" {
				lines = append(lines, l)
			}
		}
		if len(lines) > 0 {
			data.Addresses = append(data.Addresses, AddressData{Lines: lines})
		}
	}
	return data
}
