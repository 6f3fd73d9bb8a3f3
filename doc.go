// Package govspeak renders govspeak, the Markdown dialect used for
// government guidance, into sanitized HTML.
//
// # Quick Start
//
// Create a renderer once and render documents with it:
//
//	r, err := govspeak.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, govspeak.Input{
//	    Source: "^ Applications close on 1 May ^",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// A Renderer is safe for concurrent use. For one-off renders use ToHTML.
//
// # Rendering Pipeline
//
// Each document goes through these stages:
//
//  1. Preprocessing: quote decoration around blockquotes and characters
//     unsuitable for markup are removed
//  2. Macro expansion: every macro ($CTA, {button}, [Image: id], ...) is
//     applied in registration order as one substitution over the text
//  3. Parsing with goldmark (tables, footnotes, block attribute lists)
//  4. Sanitizing with an allow-list policy (bluemonday)
//  5. Post-processing: ordered passes over the HTML tree (table scopes,
//     attachment and button components, footnote labels, ...)
//
// Macros that contain govspeak (notes, sections, accordions, ...) render
// their body as a nested document through the same pipeline. Nesting is
// bounded by WithMaxDepth.
//
// # References
//
// Images, attachments, links and contacts are passed with the input and
// looked up by the macros that embed them. A reference that does not
// resolve expands to nothing:
//
//	result, err := r.Render(ctx, govspeak.Input{
//	    Source: "[Image: chart]",
//	    References: govspeak.References{
//	        Images: []govspeak.Image{{ID: "chart", URL: "/chart.png", AltText: "Chart"}},
//	    },
//	})
//
// # Diagnostics
//
// A macro whose arguments cannot be expanded, such as a video link without
// an id, is left as written and reported in Result.Diagnostics. Other
// failures abort the render.
//
// # Customization
//
// Macro and pass tables are frozen and shared. Extend a copy:
//
//	macros := govspeak.DefaultMacros().Clone()
//	macros.MustRegister("shout", `\{shout\}(.*?)\{/shout\}`,
//	    func(d *govspeak.Document, m govspeak.Match) (string, error) {
//	        return strings.ToUpper(m.Group(1)), nil
//	    })
//	r, err := govspeak.NewRenderer(govspeak.WithMacros(macros))
//
// Component templates and locale tables can be overridden from a directory
// with WithAssetPath:
//
//	assets/
//	├── locales/
//	│   └── cy.yml
//	└── templates/
//	    └── button.html
package govspeak
