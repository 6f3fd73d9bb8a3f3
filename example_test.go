package govspeak_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-govspeak"
)

// Example demonstrates rendering a source with the default renderer.
func Example() {
	out, err := govspeak.ToHTML(context.Background(), "@ Check your eligibility @")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(out, `<p><strong>Check your eligibility</strong></p>`) {
		fmt.Println("important callout rendered")
	}
	// Output: important callout rendered
}

// Example_references demonstrates resolving embedded images and attachments.
func Example_references() {
	r, err := govspeak.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := r.Render(context.Background(), govspeak.Input{
		Source: "[Image: chart]\n\n[Attachment: report]",
		References: govspeak.References{
			Images: []govspeak.Image{
				{ID: "chart", URL: "/chart.png", AltText: "Sales chart", Credit: "ONS"},
			},
			Attachments: []govspeak.Attachment{
				{ID: "report", Title: "Annual report", URL: "/report.pdf", NumberOfPages: 12},
			},
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(res.HTML, "Image credit: ONS"))
	fmt.Println(strings.Contains(res.HTML, `<section class="gem-c-attachment" id="attachment_report">`))
	fmt.Println(strings.Contains(res.HTML, "12 pages"))
	// Output:
	// true
	// true
	// true
}

// Example_diagnostics demonstrates inspecting macros left unexpanded.
func Example_diagnostics() {
	r, err := govspeak.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := r.Render(context.Background(), govspeak.Input{
		Source: "$YoutubeVideo(https://example.com/not-a-video)$EndYoutubeVideo",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, d := range res.Diagnostics {
		fmt.Println(d.Macro)
	}
	// Output: YoutubeVideo
}

// Example_customMacro demonstrates extending the default macro table.
func Example_customMacro() {
	macros := govspeak.DefaultMacros().Clone()
	macros.MustRegister("shout", `\{shout\}(.*?)\{/shout\}`, func(_ *govspeak.Document, m govspeak.Match) (string, error) {
		return strings.ToUpper(m.Group(1)), nil
	})

	r, err := govspeak.NewRenderer(govspeak.WithMacros(macros))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := r.Render(context.Background(), govspeak.Input{Source: "{shout}quiet please{/shout}"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Print(res.HTML)
	// Output: <p>QUIET PLEASE</p>
}

// Example_toText demonstrates reducing a document to plain text.
func Example_toText() {
	r, err := govspeak.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	text, err := r.NewDocument(govspeak.Input{Source: "$A\n10 Downing Street\nLondon\n$A"}).ToText(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(text)
	// Output: 10 Downing Street London
}
