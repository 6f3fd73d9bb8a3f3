package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"

	govspeak "github.com/alnah/go-govspeak"
	"github.com/alnah/go-govspeak/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadSource  = errors.New("failed to read source file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// renderParams holds the per-document settings shared by every file.
type renderParams struct {
	input govspeak.Input // Source is set per file
	text  bool
}

// extension returns the output file extension.
func (p *renderParams) extension() string {
	if p.text {
		return "txt"
	}
	return "html"
}

// render renders source and returns the output with the diagnostics it produced.
func (p *renderParams) render(ctx context.Context, r DocumentRenderer, source string) (string, []govspeak.Diagnostic, error) {
	in := p.input
	in.Source = source
	doc := r.NewDocument(in)

	var (
		out string
		err error
	)
	if p.text {
		out, err = doc.ToText(ctx)
		out += "\n"
	} else {
		out, err = doc.ToHTML(ctx)
	}
	if err != nil {
		return "", nil, err
	}
	return out, doc.Diagnostics(), nil
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath   string
	OutputPath  string
	Diagnostics []govspeak.Diagnostic
	Err         error
	Duration    time.Duration
}

// renderBatch renders files concurrently using the worker pool.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire(ctx)
			if err != nil {
				for idx := range jobs {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(r)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders a single file and writes its output.
func renderFile(ctx context.Context, r DocumentRenderer, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}

	data, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered or user-provided path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		return result
	}

	out, diags, err := params.render(ctx, r, string(data))
	if err != nil {
		result.Err = err
		return result
	}
	result.Diagnostics = diags

	if err := writeOutput(f.OutputPath, out); err != nil {
		result.Err = err
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// writeOutput creates the parent directory and writes content atomically.
func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports successful renders to w and returns the failures
// combined into one error.
func printResults(results []RenderResult, quiet, verbose bool, w io.Writer) error {
	summary := countResults(results)

	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.InputPath, r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(w, "%s -> %s (%v, %d unexpanded)\n",
				r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), len(r.Diagnostics))
		} else {
			fmt.Fprintf(w, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(w, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return errs
}
