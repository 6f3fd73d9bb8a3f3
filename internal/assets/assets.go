package assets

// Component template names.
const (
	TemplateButton         = "button"
	TemplateAttachment     = "attachment"
	TemplateAttachmentLink = "attachment_link"
	TemplateContact        = "contact"
)

// DefaultLocale is the locale used when a requested one has no table.
const DefaultLocale = "en"

// ComponentTemplates lists every template a component renderer needs.
var ComponentTemplates = []string{
	TemplateButton,
	TemplateAttachment,
	TemplateAttachmentLink,
	TemplateContact,
}
