package macro

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
)

// Reporter receives matches left unexpanded because their handler returned
// an ErrMalformed error.
type Reporter func(name string, err error)

// Apply runs every definition, in registration order, as one global
// substitution over the evolving buffer.
func (r *Registry[C]) Apply(ctx C, source string, report Reporter) (string, error) {
	for _, d := range r.Definitions() {
		out, err := d.apply(ctx, source, report)
		if err != nil {
			return "", err
		}
		source = out
	}
	return source, nil
}

func (d Definition[C]) apply(ctx C, source string, report Reporter) (string, error) {
	// regexp2 evaluators cannot fail, so the first handler error is kept
	// and the remaining matches are returned untouched.
	var failure error
	out, err := d.Pattern.ReplaceFunc(source, func(m regexp2.Match) string {
		if failure != nil {
			return m.String()
		}
		replacement, herr := d.Handler(ctx, newMatch(&m))
		if herr == nil {
			return replacement
		}
		if errors.Is(herr, ErrMalformed) {
			if report != nil {
				report(d.Name, herr)
			}
			return m.String()
		}
		failure = herr
		return m.String()
	}, -1, -1)
	if failure != nil {
		return "", fmt.Errorf("macro %q: %w", d.Name, failure)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExpansion, d.Name, err)
	}
	return out, nil
}
