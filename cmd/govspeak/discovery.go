package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-govspeak/internal/fileutil"
)

// MaxWorkers bounds --workers.
const MaxWorkers = 64

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md, .markdown or .govspeak extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputIsFile       = errors.New("output must be a directory when rendering a directory")
)

// FileToRender represents a single source to render.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the sources to render under inputPath. Output files get
// the given extension and mirror the input tree when outputDir is set.
func discoverFiles(inputPath, outputDir, extension string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsSource(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		outPath, err := resolveOutputPath(inputPath, outputDir, "", extension)
		if err != nil {
			return nil, err
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if isOutputFile(outputDir, extension) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsFile, outputDir)
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsSource(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, outputDir, inputPath, extension)
		if err != nil {
			return err
		}
		files = append(files, FileToRender{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for a source file.
func resolveOutputPath(inputPath, outputDir, baseInputDir, extension string) (string, error) {
	if outputDir == "" {
		return fileutil.ReplaceExtension(inputPath, extension)
	}

	if isOutputFile(outputDir, extension) {
		return outputDir, nil
	}

	rel := filepath.Base(inputPath)
	if baseInputDir != "" {
		if r, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			rel = r
		}
	}
	return fileutil.ReplaceExtension(filepath.Join(outputDir, rel), extension)
}

// isOutputFile reports whether output names a file rather than a directory.
func isOutputFile(output, extension string) bool {
	return output != "" && strings.EqualFold(filepath.Ext(output), "."+extension)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
