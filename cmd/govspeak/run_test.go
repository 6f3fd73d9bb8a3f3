package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(stdin string) testEnv {
	var stdout, stderr bytes.Buffer
	return testEnv{
		Environment: &Environment{
			Stdin:  strings.NewReader(stdin),
			Stdout: &stdout,
			Stderr: &stderr,
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	if code := run([]string{"govspeak", "--version"}, env.Environment); code != ExitSuccess {
		t.Fatalf("run() = %d, want %d", code, ExitSuccess)
	}
	if got := env.stdout.String(); got != "govspeak dev\n" {
		t.Errorf("stdout = %q, want version line", got)
	}
}

func TestRun_Stdin(t *testing.T) {
	t.Parallel()

	env := newTestEnv("@ Check your eligibility @")
	if code := run([]string{"govspeak", "-"}, env.Environment); code != ExitSuccess {
		t.Fatalf("run() = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}
	if got := env.stdout.String(); !strings.Contains(got, `class="advisory"`) {
		t.Errorf("stdout = %s, want important callout", got)
	}
}

func TestRun_StdinText(t *testing.T) {
	t.Parallel()

	env := newTestEnv("$A\n10 Downing Street\nLondon\n$A")
	if code := run([]string{"govspeak", "--text", "-"}, env.Environment); code != ExitSuccess {
		t.Fatalf("run() = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}
	if got := env.stdout.String(); got != "10 Downing Street London\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRun_StdinToFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "page.html")
	env := newTestEnv("text")
	if code := run([]string{"govspeak", "-o", out, "-"}, env.Environment); code != ExitSuccess {
		t.Fatalf("run() = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}
	if got := readFile(t, out); !strings.Contains(got, "<p>text</p>") {
		t.Errorf("output = %q", got)
	}
}

func TestRun_Directory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := filepath.Join(root, "src")
	out := filepath.Join(root, "out")
	refs := filepath.Join(root, "refs.yaml")

	writeFile(t, filepath.Join(src, "a.md"), "[Image: chart]")
	writeFile(t, filepath.Join(src, "guides", "b.govspeak"), "$CTA\nCall to action\n$CTA")
	writeFile(t, filepath.Join(src, "skip.txt"), "not a source")
	writeFile(t, refs, "images:\n  - id: chart\n    url: /chart.png\n    alt_text: Chart\n    credit: ONS\n")

	env := newTestEnv("")
	code := run([]string{"govspeak", "-w", "2", "-r", refs, "--locale", "cy", "-o", out, src}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}

	if got := readFile(t, filepath.Join(out, "a.html")); !strings.Contains(got, "Credyd delwedd: ONS") {
		t.Errorf("a.html = %s, want welsh image credit", got)
	}
	if got := readFile(t, filepath.Join(out, "guides", "b.html")); !strings.Contains(got, `class="call-to-action"`) {
		t.Errorf("b.html = %s, want call to action", got)
	}
	if _, err := os.Stat(filepath.Join(out, "skip.html")); !os.IsNotExist(err) {
		t.Error("non-source file was rendered")
	}
	if got := env.stdout.String(); !strings.Contains(got, "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q, want summary", got)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfgPath := filepath.Join(root, "govspeak.yaml")
	src := filepath.Join(root, "page.md")
	writeFile(t, cfgPath, "output:\n  text: true\n")
	writeFile(t, src, "$C help $C")

	env := newTestEnv("")
	if code := run([]string{"govspeak", "-q", "-c", cfgPath, src}, env.Environment); code != ExitSuccess {
		t.Fatalf("run() = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}
	if got := readFile(t, filepath.Join(root, "page.txt")); got != "help\n" {
		t.Errorf("page.txt = %q, want %q", got, "help\n")
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet stdout = %q, want empty", env.stdout)
	}
}

func TestRun_ExitCodes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	deep := filepath.Join(root, "deep.md")
	writeFile(t, deep, "^ @ deep @ ^")
	notes := filepath.Join(root, "notes.txt")
	writeFile(t, notes, "plain")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no input", args: []string{"govspeak"}, want: ExitIO},
		{name: "too many inputs", args: []string{"govspeak", "a.md", "b.md"}, want: ExitUsage},
		{name: "unknown flag", args: []string{"govspeak", "--nope"}, want: ExitUsage},
		{name: "help", args: []string{"govspeak", "--help"}, want: ExitSuccess},
		{name: "missing file", args: []string{"govspeak", filepath.Join(root, "missing.md")}, want: ExitIO},
		{name: "wrong extension", args: []string{"govspeak", notes}, want: ExitUsage},
		{name: "invalid locale", args: []string{"govspeak", "--locale", "en_GB!", deep}, want: ExitUsage},
		{name: "invalid element", args: []string{"govspeak", "--allow-element", "1bad", deep}, want: ExitUsage},
		{name: "missing config", args: []string{"govspeak", "-c", filepath.Join(root, "nope.yaml"), deep}, want: ExitUsage},
		{name: "missing references", args: []string{"govspeak", "-r", filepath.Join(root, "nope.yaml"), deep}, want: ExitIO},
		{name: "bad workers", args: []string{"govspeak", "-w", "-1", deep}, want: ExitUsage},
		{name: "bad asset path", args: []string{"govspeak", "--asset-path", filepath.Join(root, "none"), deep}, want: ExitUsage},
		{name: "nesting too deep", args: []string{"govspeak", "--max-depth", "1", "-o", filepath.Join(root, "out"), deep}, want: ExitRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			if got := run(tt.args, env.Environment); got != tt.want {
				t.Errorf("run(%v) = %d, want %d; stderr: %s", tt.args[1:], got, tt.want, env.stderr)
			}
		})
	}
}

func TestRun_ErrorsLogged(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	_ = run([]string{"govspeak", filepath.Join(t.TempDir(), "missing.md")}, env.Environment)
	if got := env.stderr.String(); !strings.Contains(got, "govspeak failed") || !strings.Contains(got, "missing.md") {
		t.Errorf("stderr = %q, want logged failure", got)
	}
}

func TestRun_PrintConfig(t *testing.T) {
	t.Parallel()

	env := newTestEnv("")
	code := run([]string{"govspeak", "--print-config", "--locale", "cy", "--max-depth", "4"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("run() = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr)
	}
	for _, want := range []string{"locale: cy", "maxDepth: 4"} {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("stdout = %q, missing %q", env.stdout, want)
		}
	}
}
