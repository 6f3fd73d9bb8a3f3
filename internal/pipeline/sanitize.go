package pipeline

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer removes markup outside the govspeak allow-list.
type Sanitizer struct {
	mu       sync.Mutex
	policies map[string]*bluemonday.Policy
}

// NewSanitizer creates a Sanitizer. Policies are built lazily per set of
// extra allowed elements and reused afterwards.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policies: make(map[string]*bluemonday.Policy)}
}

// Sanitize cleans content, additionally keeping the named elements.
func (s *Sanitizer) Sanitize(content string, allowed ...string) string {
	return s.policy(allowed).Sanitize(content)
}

func (s *Sanitizer) policy(allowed []string) *bluemonday.Policy {
	extras := normalizeElements(allowed)
	key := strings.Join(extras, ",")

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.policies[key]; ok {
		return p
	}
	p := newPolicy(extras)
	s.policies[key] = p
	return p
}

func normalizeElements(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// youtubeEmbed restricts iframe sources to the video embeds produced by the
// YoutubeVideo macro.
var youtubeEmbed = regexp.MustCompile(`^https://www\.youtube(-nocookie)?\.com/embed/[^"<>\s]*$`)

func newPolicy(extras []string) *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)

	p.AllowAttrs("id", "class", "role", "aria-label", "aria-labelledby").Globally()
	p.AllowDataAttributes()
	p.AllowAttrs("rel").OnElements("a")
	p.AllowAttrs("draggable").OnElements("a")
	p.AllowStyles("text-align").OnElements("th", "td")
	p.AllowElements("figure", "figcaption", "details", "summary")
	p.AllowAttrs("id").OnElements("govspeak-embed-attachment", "govspeak-embed-attachment-link")

	p.AllowAttrs("src").Matching(youtubeEmbed).OnElements("iframe")
	p.AllowAttrs("width", "height").Matching(bluemonday.Number).OnElements("iframe")
	p.AllowAttrs("title", "frameborder", "allow", "allowfullscreen").OnElements("iframe")

	// bluemonday drops attribute-less elements unless told otherwise.
	if len(extras) > 0 {
		p.AllowElements(extras...)
		p.AllowNoAttrs().OnElements(extras...)
	}
	return p
}
