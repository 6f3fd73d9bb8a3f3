// Package macro implements the ordered text-rewrite engine that expands
// govspeak macros before the markdown grammar runs.
//
// # Registry
//
// A Registry is an ordered list of Definitions. Each definition pairs a
// regular expression with a Handler that turns one match into replacement
// text. Registration order is precedence: Apply runs every definition once,
// in order, as a global substitution over the buffer produced by the
// definitions before it. Apply never iterates to a fixpoint, so a macro never
// sees the output of macros registered after it.
//
// Registries are mutable until Freeze is called. A frozen registry rejects
// further registrations and is safe for concurrent use.
//
// # Pattern dialect
//
// Patterns are compiled with github.com/dlclark/regexp2 so lookbehind, \A
// and \Z are available. Every pattern is compiled in multiline mode: ^ and $
// match at line boundaries. Patterns that need . to cross newlines start
// with (?s).
//
// # Handler errors
//
// A handler error wrapping ErrMalformed leaves that match unexpanded and is
// reported through the Reporter passed to Apply. Any other error aborts
// Apply.
package macro
