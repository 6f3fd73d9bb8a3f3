package pipeline

import (
	"strings"
	"testing"
)

func TestSanitizer_Sanitize(t *testing.T) {
	t.Parallel()

	s := NewSanitizer()

	tests := []struct {
		name     string
		input    string
		allowed  []string
		contains []string
		excludes []string
	}{
		{
			name:     "script removed",
			input:    `<p>ok</p><script>alert(1)</script>`,
			contains: []string{"<p>ok</p>"},
			excludes: []string{"script", "alert"},
		},
		{
			name:     "govspeak attributes kept",
			input:    `<div role="note" aria-label="Information" class="application-notice info-notice" id="x" data-module="m"><p>i</p></div>`,
			contains: []string{`role="note"`, `aria-label="Information"`, `class="application-notice info-notice"`, `id="x"`, `data-module="m"`},
		},
		{
			name:     "no nofollow added",
			input:    `<a href="https://example.com" rel="external">x</a>`,
			contains: []string{`rel="external"`},
			excludes: []string{"nofollow"},
		},
		{
			name:     "attachment placeholder kept",
			input:    `<govspeak-embed-attachment id="a1"></govspeak-embed-attachment>`,
			contains: []string{`<govspeak-embed-attachment id="a1">`},
		},
		{
			name:     "youtube embed kept",
			input:    `<iframe src="https://www.youtube.com/embed/x?enablejsapi=1" width="625" title="t"></iframe>`,
			contains: []string{"<iframe", `src="https://www.youtube.com/embed/x?enablejsapi=1"`, `width="625"`, `title="t"`},
		},
		{
			name:     "other iframe sources dropped",
			input:    `<iframe src="https://evil.example/embed/x" width="625"></iframe>`,
			excludes: []string{"evil.example"},
		},
		{
			name:     "extra element allowed on request",
			input:    `<uncommon-element>some content</uncommon-element>`,
			allowed:  []string{"uncommon-element"},
			contains: []string{"<uncommon-element>some content</uncommon-element>"},
		},
		{
			name:     "extra element keeps global attributes",
			input:    `<uncommon-element class="x" onclick="y()">some content</uncommon-element>`,
			allowed:  []string{"Uncommon-Element"},
			contains: []string{`<uncommon-element class="x">some content</uncommon-element>`},
		},
		{
			name:     "unknown element removed by default",
			input:    `<uncommon-element>some content</uncommon-element>`,
			contains: []string{"some content"},
			excludes: []string{"uncommon-element"},
		},
		{
			name:     "event handler stripped",
			input:    `<p onclick="x()">p</p>`,
			contains: []string{"<p>p</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Sanitize(tt.input, tt.allowed...)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("Sanitize(%q) = %q, should not contain %q", tt.input, got, unwanted)
				}
			}
		})
	}
}

func TestSanitizer_PolicyReuse(t *testing.T) {
	t.Parallel()

	s := NewSanitizer()
	a := s.policy([]string{"iframe", "Script "})
	b := s.policy([]string{"script", "iframe", "iframe"})
	if a != b {
		t.Error("policy() built a new policy for an equivalent element set")
	}
}
