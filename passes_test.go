package govspeak

import (
	"strings"
	"testing"

	"github.com/alnah/go-govspeak/internal/dom"
)

func TestScopeTableHeaders(t *testing.T) {
	t.Parallel()

	source := "| # Name | Values |\n" +
		"|--------|--------|\n" +
		"| #      | empty  |\n" +
		"| #Example | b    |\n" +
		"| # Row  | c      |\n"
	got := compact(renderSource(t, source))

	for _, want := range []string{
		`<table tabindex="0">`,
		`<th scope="col">Name</th>`,
		`<th scope="col">Values</th>`,
		`<tr><th scope="row"></th><td>empty</td></tr>`,
		`<tr><td>#Example</td><td>b</td></tr>`,
		`<tr><th scope="row">Row</th><td>c</td></tr>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
}

func TestScopeTableHeaders_BlankHeaderBecomesCell(t *testing.T) {
	t.Parallel()

	got := compact(renderSource(t, "|   | Values |\n|---|---|\n| a | b |\n"))
	if !strings.Contains(got, `<thead><tr><td></td><th scope="col">Values</th></tr></thead>`) {
		t.Errorf("blank header not demoted: %s", got)
	}
}

func TestMarkLastBlockquoteParagraph(t *testing.T) {
	t.Parallel()

	got := renderSource(t, "> first\n>\n> last")
	if !strings.Contains(got, `<p class="last-child">last</p>`) {
		t.Errorf("last paragraph not marked: %s", got)
	}
	if strings.Contains(got, `<p class="last-child">first</p>`) {
		t.Errorf("first paragraph marked: %s", got)
	}
}

func TestLabelFootnotes(t *testing.T) {
	t.Parallel()

	got := renderSource(t, "Some text[^1]\n\n[^1]: The note")
	for _, want := range []string{
		"[footnote 1]",
		`aria-label="go to where this is referenced"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
}

func TestIndexChildIDs(t *testing.T) {
	t.Parallel()

	got := renderSource(t, "$Section\n## Heading\n$Section\n\n$Section\n## Heading\n$Section")
	for _, want := range []string{
		`id="section-header-1-heading"`,
		`id="section-header-2-heading"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
}

func TestRestoreFigureWrappers(t *testing.T) {
	t.Parallel()

	root, err := dom.Fragment(`<figure class="image embedded">&lt;div class="img"&gt;<img src="/a.png" alt="A">&lt;/div&gt;` +
		`&lt;figcaption&gt;<p>Caption</p>&lt;/figcaption&gt;</figure>`)
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	if err := restoreFigureWrappers(nil, root); err != nil {
		t.Fatalf("restoreFigureWrappers() error = %v", err)
	}

	got := dom.Render(root)
	want := `<figure class="image embedded"><div class="img"><img src="/a.png" alt="A"></div>` +
		`<figcaption><p>Caption</p></figcaption></figure>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestRestoreFigureWrappers_LeavesOtherFiguresAlone(t *testing.T) {
	t.Parallel()

	const markup = `<figure class="chart">&lt;div class="img"&gt;</figure>`
	root, err := dom.Fragment(markup)
	if err != nil {
		t.Fatalf("Fragment() error = %v", err)
	}
	if err := restoreFigureWrappers(nil, root); err != nil {
		t.Fatalf("restoreFigureWrappers() error = %v", err)
	}
	if got := dom.Render(root); got != markup {
		t.Errorf("got %s, want unchanged", got)
	}
}

func testAttachment() Attachment {
	return Attachment{
		ID:            "a1",
		ContentID:     "2a9b2a4d-c7ba-44ea-a8b6-5ce3fc1a2b34",
		Title:         "Annual report",
		URL:           "/government/uploads/report.pdf",
		FileSize:      2048,
		NumberOfPages: 3,
	}
}

func TestEmbedAttachments(t *testing.T) {
	t.Parallel()

	refs := References{Attachments: []Attachment{testAttachment()}}

	tests := []struct {
		name    string
		source  string
		want    []string
		exclude []string
	}{
		{
			name:   "block attachment",
			source: "[Attachment: a1]",
			want: []string{
				`<section class="gem-c-attachment" id="attachment_a1">`,
				`<a href="/government/uploads/report.pdf" class="govuk-link gem-c-attachment__link">Annual report</a>`,
				`<abbr title="Portable Document Format">PDF</abbr>`,
				`<span class="file-size">2.0 kB</span>`,
				`<span class="page-length">3 pages</span>`,
			},
			exclude: []string{"govspeak-embed-attachment", "<p><section"},
		},
		{
			name:   "inline attachment link",
			source: "Read [AttachmentLink: a1] now",
			want: []string{
				`<p>Read <span class="gem-c-attachment-link"><a href="/government/uploads/report.pdf" class="govuk-link">Annual report</a>`,
				"</span> now</p>",
			},
			exclude: []string{"govspeak-embed-attachment-link"},
		},
		{
			name:    "missing attachment",
			source:  "Before\n\n[Attachment: missing]\n\nAfter",
			want:    []string{"<p>Before</p>", "<p>After</p>"},
			exclude: []string{"govspeak-embed-attachment", "gem-c-attachment"},
		},
		{
			name:   "deprecated inline embed",
			source: "See [embed:attachments:inline:2a9b2a4d-c7ba-44ea-a8b6-5ce3fc1a2b34]",
			want: []string{
				`<span id="attachment_a1" class="attachment-inline"><a href="/government/uploads/report.pdf">Annual report</a>`,
			},
		},
		{
			name:   "deprecated image embed",
			source: "[embed:attachments:image:2a9b2a4d-c7ba-44ea-a8b6-5ce3fc1a2b34]",
			want: []string{
				`<figure id="attachment_a1" class="image embedded"><div class="img"><img src="/government/uploads/report.pdf" alt="Annual report"></div></figure>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := compact(render(t, Input{Source: tt.source, References: refs}).HTML)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("missing %s in %s", want, got)
				}
			}
			for _, unwanted := range tt.exclude {
				if strings.Contains(got, unwanted) {
					t.Errorf("unexpected %s in %s", unwanted, got)
				}
			}
		})
	}
}

func TestImages(t *testing.T) {
	t.Parallel()

	refs := References{Images: []Image{
		{ID: "img1", URL: "/a.png", AltText: "A cat", Caption: "The cat", Credit: "Crown"},
		{ID: "img2", URL: "/b.png", AltText: "A dog"},
	}}

	tests := []struct {
		name   string
		in     Input
		want   []string
		absent string
	}{
		{
			name: "by id with caption and credit",
			in:   Input{Source: "[Image: img1]", References: refs},
			want: []string{
				`<figure id="attachment_img1" class="image embedded"><div class="img"><img src="/a.png" alt="A cat"></div>`,
				`<figcaption><p>The cat</p><p>Image credit: Crown</p></figcaption></figure>`,
			},
		},
		{
			name:   "by id without caption",
			in:     Input{Source: "[Image: img2]", References: refs},
			want:   []string{`<img src="/b.png" alt="A dog"></div></figure>`},
			absent: "figcaption",
		},
		{
			name: "by position",
			in:   Input{Source: "!!2", References: refs},
			want: []string{`<figure id="attachment_img2" class="image embedded">`},
		},
		{
			name: "welsh credit",
			in:   Input{Source: "[Image: img1]", Locale: "cy", References: refs},
			want: []string{"<p>Credyd delwedd: Crown</p>"},
		},
		{
			name: "regional locale falls back to base",
			in:   Input{Source: "[Image: img1]", Locale: "cy-GB", References: refs},
			want: []string{"<p>Credyd delwedd: Crown</p>"},
		},
		{
			name: "unknown locale falls back to english",
			in:   Input{Source: "[Image: img1]", Locale: "fr", References: refs},
			want: []string{"<p>Image credit: Crown</p>"},
		},
		{
			name:   "unknown id",
			in:     Input{Source: "[Image: nope]", References: refs},
			absent: "<figure",
		},
		{
			name:   "position out of range",
			in:     Input{Source: "!!3", References: refs},
			absent: "<figure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := compact(render(t, tt.in).HTML)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("missing %s in %s", want, got)
				}
			}
			if tt.absent != "" && strings.Contains(got, tt.absent) {
				t.Errorf("unexpected %s in %s", tt.absent, got)
			}
		})
	}
}

func TestContact(t *testing.T) {
	t.Parallel()

	const id = "4f3383e4-48a2-4461-a41d-f85ea8b89ba0"
	refs := References{Contacts: []Contact{{
		ID:          "c1",
		ContentID:   id,
		Title:       "Help desk",
		Description: "Open weekdays",
		EmailAddresses: []EmailAddress{
			{Title: "Enquiries", Email: "help@example.com"},
		},
		PhoneNumbers: []PhoneNumber{
			{Title: "Telephone", Number: "0300 123 4567"},
		},
		ContactFormLinks: []ContactFormLink{
			{Link: "https://example.com/form"},
		},
		PostAddresses: []PostAddress{
			{Title: "Head office", StreetAddress: "1 High Street", PostalCode: "AB1 2CD"},
		},
	}}}

	got := compact(render(t, Input{Source: "[Contact:" + id + "]", References: refs}).HTML)
	for _, want := range []string{
		`<div id="contact_c1" class="contact postal-address">`,
		`<h3>Help desk</h3>`,
		`<span class="fn">Head office</span><br><span class="street-address">1 High Street</span>`,
		`<span class="postal-code">AB1 2CD</span>`,
		`<a href="mailto:help@example.com" class="email">help@example.com</a>`,
		`<span class="type">Contact form</span><a href="https://example.com/form">https://example.com/form</a>`,
		"0300 123 4567",
		`<div class="comments">Open weekdays</div>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
	if strings.Contains(got, "locality") {
		t.Errorf("empty address lines must be omitted: %s", got)
	}
}

func TestEmbedLink(t *testing.T) {
	t.Parallel()

	refs := References{Links: []Link{
		{ContentID: "5572fee5-f38f-4641-8ffa-64fed9230ad4", Title: "Example", URL: "https://example.com"},
		{ContentID: "d9a1f3c2-1b5e-4c7d-9f0a-2b3c4d5e6f70", Title: "No address"},
	}}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "with url",
			source: "[embed:link:5572fee5-f38f-4641-8ffa-64fed9230ad4]",
			want:   `<p><a href="https://example.com">Example</a></p>`,
		},
		{
			name:   "without url",
			source: "[embed:link:d9a1f3c2-1b5e-4c7d-9f0a-2b3c4d5e6f70]",
			want:   `<p>No address</p>`,
		},
		{
			name:   "unknown id",
			source: "Before [embed:link:unknown] after",
			want:   `<p>Before  after</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := compact(render(t, Input{Source: tt.source, References: refs}).HTML)
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}
