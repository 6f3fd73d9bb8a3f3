// Package postprocess runs ordered structural fixups over rendered HTML.
//
// A Registry holds named passes. Process parses the HTML once as a body
// fragment, hands the live tree to every pass in registration order and
// serializes the result with internal/dom.
//
// Passes select nodes with CSS selectors through Select and mutate the
// tree in place:
//
//	r := postprocess.NewRegistry[*Doc]()
//	r.MustRegister("tabindex", func(_ *Doc, root *html.Node) error {
//	    for _, t := range postprocess.Select(root, "table") {
//	        dom.SetAttr(t, "tabindex", "0")
//	    }
//	    return nil
//	})
//	out, err := r.Freeze().Process(doc, input)
package postprocess
