package postprocess

import (
	"fmt"
	"sync"

	"golang.org/x/net/html"

	"github.com/alnah/go-govspeak/internal/dom"
)

// Pass mutates the parsed fragment rooted at root.
type Pass[C any] func(ctx C, root *html.Node) error

// Step is a named pass.
type Step[C any] struct {
	Title string
	Pass  Pass[C]
}

// Registry is an ordered list of passes. It is append-only until frozen and
// safe for concurrent Process calls afterwards.
type Registry[C any] struct {
	mu     sync.RWMutex
	steps  []Step[C]
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{}
}

// Register appends a pass.
func (r *Registry[C]) Register(title string, pass Pass[C]) error {
	if pass == nil {
		return fmt.Errorf("%w: %q", ErrNilPass, title)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("%w: cannot add %q", ErrFrozen, title)
	}
	r.steps = append(r.steps, Step[C]{Title: title, Pass: pass})
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry[C]) MustRegister(title string, pass Pass[C]) {
	if err := r.Register(title, pass); err != nil {
		panic(err)
	}
}

// Freeze makes the registry immutable and returns it.
func (r *Registry[C]) Freeze() *Registry[C] {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
	return r
}

// Frozen reports whether Freeze has been called.
func (r *Registry[C]) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Clone returns an unfrozen copy holding the same passes.
func (r *Registry[C]) Clone() *Registry[C] {
	return &Registry[C]{steps: r.Steps()}
}

// Steps returns a copy of the registered passes in order.
func (r *Registry[C]) Steps() []Step[C] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Step[C], len(r.steps))
	copy(out, r.steps)
	return out
}

// Len returns the number of passes.
func (r *Registry[C]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps)
}

// Process parses content, runs every pass in order and serializes the tree.
func (r *Registry[C]) Process(ctx C, content string) (string, error) {
	root, err := dom.Fragment(content)
	if err != nil {
		return "", err
	}

	for _, step := range r.Steps() {
		if err := step.Pass(ctx, root); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrPass, step.Title, err)
		}
	}
	return dom.Render(root), nil
}
