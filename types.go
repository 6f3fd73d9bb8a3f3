package govspeak

import (
	"fmt"
	"regexp"
	"slices"
)

// Image is an entry of References.Images, addressed by ID from [Image: id]
// or by position from !!n.
type Image struct {
	ID      string `yaml:"id"`
	URL     string `yaml:"url"`
	AltText string `yaml:"alt_text"`
	Caption string `yaml:"caption"`
	Credit  string `yaml:"credit"`
}

// Attachment is an entry of References.Attachments. [Attachment: id] and
// [AttachmentLink: id] resolve by ID; the deprecated embed forms resolve by
// ContentID.
type Attachment struct {
	ID            string `yaml:"id"`
	ContentID     string `yaml:"content_id"`
	Title         string `yaml:"title"`
	URL           string `yaml:"url"`
	ContentType   string `yaml:"content_type"`
	FileSize      int64  `yaml:"file_size"`
	NumberOfPages int    `yaml:"number_of_pages"`
	External      bool   `yaml:"external"`
}

// Link is an entry of References.Links, resolved by [embed:link: content-id].
type Link struct {
	ContentID string `yaml:"content_id"`
	Title     string `yaml:"title"`
	URL       string `yaml:"url"`
}

// Contact is an entry of References.Contacts, resolved by [Contact: content-id].
type Contact struct {
	ID               string            `yaml:"id"`
	ContentID        string            `yaml:"content_id"`
	Title            string            `yaml:"title"`
	Description      string            `yaml:"description"`
	EmailAddresses   []EmailAddress    `yaml:"email_addresses"`
	PhoneNumbers     []PhoneNumber     `yaml:"phone_numbers"`
	ContactFormLinks []ContactFormLink `yaml:"contact_form_links"`
	PostAddresses    []PostAddress     `yaml:"post_addresses"`
}

// EmailAddress is one e-mail entry of a Contact.
type EmailAddress struct {
	Title string `yaml:"title"`
	Email string `yaml:"email"`
}

// PhoneNumber is one telephone entry of a Contact.
type PhoneNumber struct {
	Title  string `yaml:"title"`
	Number string `yaml:"number"`
}

// ContactFormLink is one web form of a Contact.
type ContactFormLink struct {
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Description string `yaml:"description"`
}

// PostAddress is one postal address of a Contact.
type PostAddress struct {
	Title         string `yaml:"title"`
	StreetAddress string `yaml:"street_address"`
	Locality      string `yaml:"locality"`
	Region        string `yaml:"region"`
	PostalCode    string `yaml:"postal_code"`
	WorldLocation string `yaml:"world_location"`
}

// References holds the read-only lists macros resolve against.
type References struct {
	Images      []Image      `yaml:"images"`
	Attachments []Attachment `yaml:"attachments"`
	Links       []Link       `yaml:"links"`
	Contacts    []Contact    `yaml:"contacts"`
}

func (r References) clone() References {
	return References{
		Images:      slices.Clone(r.Images),
		Attachments: slices.Clone(r.Attachments),
		Links:       slices.Clone(r.Links),
		Contacts:    slices.Clone(r.Contacts),
	}
}

// Input holds one document and its per-render options.
type Input struct {
	Source string

	// DisableSanitize skips the allow-list sanitizer.
	DisableSanitize bool

	// AllowedElements are kept by the sanitizer in addition to its defaults.
	AllowedElements []string

	// AllowExtraQuotes keeps quote marks around blockquote lines.
	AllowExtraQuotes bool

	// Locale selects the string table used by components ("en" when empty).
	Locale string

	References References
}

var (
	localePattern  = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)
	elementPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
)

// Validate checks the locale and the allowed element names.
func (in *Input) Validate() error {
	if in.Locale != "" && !localePattern.MatchString(in.Locale) {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, in.Locale)
	}
	for _, el := range in.AllowedElements {
		if !elementPattern.MatchString(el) {
			return fmt.Errorf("%w: %q", ErrInvalidElement, el)
		}
	}
	return nil
}

// clone returns a copy sharing no slices with in.
func (in Input) clone() Input {
	out := in
	out.AllowedElements = slices.Clone(in.AllowedElements)
	out.References = in.References.clone()
	return out
}

// Diagnostic records a macro match that was left unexpanded.
type Diagnostic struct {
	Macro string
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.Macro, d.Err)
}
