package govspeak

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-govspeak/internal/assets"
)

// Component names understood by a ComponentRenderer.
const (
	ComponentButton         = assets.TemplateButton
	ComponentAttachment     = assets.TemplateAttachment
	ComponentAttachmentLink = assets.TemplateAttachmentLink
	ComponentContact        = assets.TemplateContact
)

// ComponentRenderer renders the publishing components that macros and passes
// embed. data is one of ButtonData, AttachmentData or ContactData.
type ComponentRenderer interface {
	Render(name string, data any) (string, error)
}

// ButtonData feeds the button component.
type ButtonData struct {
	Text         string
	Href         string
	Start        bool
	Secondary    bool
	Module       string
	TrackingCode string
	TrackingName string
}

// AttachmentData feeds the attachment and attachment link components.
type AttachmentData struct {
	ID         string
	Title      string
	URL        string
	Attributes template.HTML
}

// ContactData feeds the contact component.
type ContactData struct {
	ID               string
	Title            string
	Description      string
	Addresses        []AddressData
	Emails           []EmailAddress
	Phones           []PhoneNumber
	Forms            []ContactFormLink
	ContactFormLabel string
}

// AddressData is one postal address split into classed lines.
type AddressData struct {
	Lines []AddressLine
}

// AddressLine is one hCard property of an address.
type AddressLine struct {
	Class string
	Value string
}

// templateComponents renders components with html/template.
type templateComponents struct {
	templates map[string]*template.Template
}

func newTemplateComponents(loader assets.AssetLoader) (*templateComponents, error) {
	c := &templateComponents{templates: make(map[string]*template.Template, len(assets.ComponentTemplates))}
	for _, name := range assets.ComponentTemplates {
		content, err := loader.LoadTemplate(name)
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", ErrComponentRender, name, err)
		}
		c.templates[name] = tmpl
	}
	return c, nil
}

// Render executes the named template.
func (c *templateComponents) Render(name string, data any) (string, error) {
	tmpl, ok := c.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown component %q", ErrComponentRender, name)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrComponentRender, name, err)
	}
	return b.String(), nil
}

// component renders name with the renderer's components.
func (d *Document) component(name string, data any) (string, error) {
	return d.renderer.components.Render(name, data)
}
