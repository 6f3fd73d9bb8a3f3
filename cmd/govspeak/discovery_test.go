package main

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(path, []byte("# "+f), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Source discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, "a.md", "sub/b.govspeak", "sub/c.markdown", "notes.txt", "sub/d.html")

	t.Run("directory next to sources", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(root, "", "html")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}

		var outputs []string
		for _, f := range files {
			outputs = append(outputs, f.OutputPath)
		}
		want := []string{
			filepath.Join(root, "a.html"),
			filepath.Join(root, "sub", "b.html"),
			filepath.Join(root, "sub", "c.html"),
		}
		if !slices.Equal(outputs, want) {
			t.Errorf("outputs = %v, want %v", outputs, want)
		}
	})

	t.Run("directory mirrored into output", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "site")
		files, err := discoverFiles(root, out, "txt")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("got %d files, want 3", len(files))
		}
		if want := filepath.Join(out, "sub", "b.txt"); files[1].OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", files[1].OutputPath, want)
		}
	})

	t.Run("directory into output file", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(root, "out.html", "html")
		if !errors.Is(err, ErrOutputIsFile) {
			t.Errorf("error = %v, want ErrOutputIsFile", err)
		}
	})

	t.Run("single file into output file", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(filepath.Join(root, "a.md"), "page.html", "html")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 || files[0].OutputPath != "page.html" {
			t.Errorf("files = %+v, want single page.html", files)
		}
	})

	t.Run("single file with wrong extension", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(root, "notes.txt"), "", "html")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(root, "missing.md"), "", "html")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path resolution
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{name: "next to source", input: "docs/a.md", want: "docs/a.html"},
		{name: "into directory", input: "docs/a.md", outputDir: "out", want: "out/a.html"},
		{name: "mirrored", input: "docs/sub/a.md", outputDir: "out", baseDir: "docs", want: "out/sub/a.html"},
		{name: "explicit file", input: "docs/a.md", outputDir: "page.HTML", want: "page.HTML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(filepath.FromSlash(tt.input), filepath.FromSlash(tt.outputDir), filepath.FromSlash(tt.baseDir), "html")
			if err != nil {
				t.Fatalf("resolveOutputPath() error = %v", err)
			}
			if want := filepath.FromSlash(tt.want); got != want {
				t.Errorf("resolveOutputPath(%q) = %q, want %q", tt.input, got, want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{MaxWorkers, false},
		{-1, true},
		{MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr != (err != nil) {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
