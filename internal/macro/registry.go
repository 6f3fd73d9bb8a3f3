package macro

import (
	"fmt"
	"sync"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultMatchTimeout bounds a single regex evaluation so that adversarial
// input cannot stall a render through catastrophic backtracking.
const DefaultMatchTimeout = 2 * time.Second

// Handler expands one match into replacement text.
// C is the per-render context type supplied by the caller of Apply.
type Handler[C any] func(ctx C, m Match) (string, error)

// Definition is one registered macro.
type Definition[C any] struct {
	Name    string
	Pattern *regexp2.Regexp
	Handler Handler[C]
}

// Registry is an ordered, freezable list of macro definitions.
type Registry[C any] struct {
	mu      sync.RWMutex
	defs    []Definition[C]
	frozen  bool
	timeout time.Duration
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{timeout: DefaultMatchTimeout}
}

// Register compiles pattern and appends a definition.
// An empty pattern selects the bracket form {::name}...{:/name}.
func (r *Registry[C]) Register(name, pattern string, h Handler[C]) error {
	if h == nil {
		return fmt.Errorf("%w: %q", ErrNilHandler, name)
	}
	if pattern == "" {
		pattern = Bracketed(name)
	}

	re, err := regexp2.Compile(pattern, regexp2.Multiline)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPattern, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, name)
	}
	if r.timeout > 0 {
		re.MatchTimeout = r.timeout
	}
	r.defs = append(r.defs, Definition[C]{Name: name, Pattern: re, Handler: h})
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for package-level tables built at init time.
func (r *Registry[C]) MustRegister(name, pattern string, h Handler[C]) {
	if err := r.Register(name, pattern, h); err != nil {
		panic(err)
	}
}

// Freeze makes the registry immutable and returns it.
func (r *Registry[C]) Freeze() *Registry[C] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
	return r
}

// Frozen reports whether Freeze has been called.
func (r *Registry[C]) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Clone returns an unfrozen copy sharing the compiled patterns.
func (r *Registry[C]) Clone() *Registry[C] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry[C]{timeout: r.timeout, defs: make([]Definition[C], len(r.defs))}
	copy(c.defs, r.defs)
	return c
}

// Definitions returns a copy of the definitions in registration order.
func (r *Registry[C]) Definitions() []Definition[C] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition[C], len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of definitions.
func (r *Registry[C]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// Lookup returns the first definition registered under name.
func (r *Registry[C]) Lookup(name string) (Definition[C], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.defs {
		if d.Name == name {
			return d, true
		}
	}
	return Definition[C]{}, false
}
