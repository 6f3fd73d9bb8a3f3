package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	govspeak "github.com/alnah/go-govspeak"
	"github.com/alnah/go-govspeak/internal/config"
	"github.com/alnah/go-govspeak/internal/yamlutil"
)

// Sentinel errors for command setup.
var (
	ErrTooManyInputs   = errors.New("expected a single file, directory or -")
	ErrReadReferences  = errors.New("failed to load references")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

const (
	// stdinPath selects standard input as the source.
	stdinPath = "-"

	// maxReferencesSize caps the references file.
	maxReferencesSize = 8 << 20
)

// run executes the command and returns the process exit code.
func run(args []string, env *Environment) int {
	f, paths, err := parseFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	if f.common.version {
		fmt.Fprintf(env.Stdout, "govspeak %s\n", Version)
		return ExitSuccess
	}

	lvl, _ := resolveLogLevel(f.common.quiet, f.common.verbose, "")
	level := zap.NewAtomicLevelAt(lvl)
	logger := newLogger(env.Stderr, level)
	defer func() { _ = logger.Sync() }()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := execute(ctx, f, paths, env, logger, level); err != nil {
		logger.Error("govspeak failed", zap.Errors("errors", multierr.Errors(err)))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// execute resolves configuration, builds the renderer and renders the input.
func execute(ctx context.Context, f *cliFlags, paths []string, env *Environment, logger *zap.Logger, level zap.AtomicLevel) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(logger)

	workers := f.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := resolveConfig(f, envCfg)
	if err != nil {
		return err
	}
	if !f.common.quiet && !f.common.verbose && cfg.Log.Level != "" {
		lvl, err := resolveLogLevel(false, false, cfg.Log.Level)
		if err != nil {
			return err
		}
		level.SetLevel(lvl)
	}

	if f.common.printConfig {
		out, err := yamlutil.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	if len(paths) == 0 {
		return ErrNoInput
	}
	if len(paths) > 1 {
		return fmt.Errorf("%w: got %d arguments", ErrTooManyInputs, len(paths))
	}

	refs, err := loadReferences(cfg.References.Path)
	if err != nil {
		return err
	}

	params := &renderParams{
		input: govspeak.Input{
			DisableSanitize:  !cfg.Input.SanitizeEnabled(),
			AllowedElements:  cfg.Input.AllowedElements,
			AllowExtraQuotes: cfg.Input.AllowExtraQuotes,
			Locale:           cfg.Input.Locale,
			References:       refs,
		},
		text: cfg.Output.Text,
	}
	if err := params.input.Validate(); err != nil {
		return err
	}

	renderer, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	output := f.output.path
	if output == "" {
		output = cfg.Output.DefaultDir
	}

	if paths[0] == stdinPath {
		return renderStdin(ctx, renderer, params, f.output.path, env)
	}

	files, err := discoverFiles(paths[0], output, params.extension())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no source files in %s", ErrNoInput, paths[0])
	}

	pool := NewWorkerPool(renderer, resolvePoolSize(workers))
	defer pool.Close()
	logger.Debug("rendering", zap.Int("files", len(files)), zap.Int("workers", pool.Size()))

	results := renderBatch(ctx, pool, files, params)
	return printResults(results, f.common.quiet, f.common.verbose, env.Stdout)
}

// resolveConfig loads the config file if one is named, then applies
// environment variables and flags over it.
func resolveConfig(f *cliFlags, envCfg *envConfig) (*config.Config, error) {
	name := f.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, err
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadReferences reads the references YAML file. An empty path yields no references.
func loadReferences(path string) (govspeak.References, error) {
	var refs govspeak.References
	if path == "" {
		return refs, nil
	}
	if err := yamlutil.DecodeFile(path, &refs, yamlutil.Strict(), yamlutil.WithMaxSize(maxReferencesSize)); err != nil {
		return refs, fmt.Errorf("%w: %w", ErrReadReferences, err)
	}
	return refs, nil
}

// newRenderer builds a renderer from the resolved config.
func newRenderer(cfg *config.Config, logger *zap.Logger) (*govspeak.Renderer, error) {
	opts := []govspeak.Option{govspeak.WithLogger(logger.Named("render"))}
	if cfg.Render.MaxDepth > 0 {
		opts = append(opts, govspeak.WithMaxDepth(cfg.Render.MaxDepth))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, govspeak.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Render.Highlight != "" {
		opts = append(opts, govspeak.WithSyntaxHighlighting(cfg.Render.Highlight))
	}
	return govspeak.NewRenderer(opts...)
}

// renderStdin renders standard input to output, or to stdout when output is empty.
func renderStdin(ctx context.Context, r DocumentRenderer, params *renderParams, output string, env *Environment) error {
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	out, _, err := params.render(ctx, r, string(data))
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := io.WriteString(env.Stdout, out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if isOutputFile(output, params.extension()) {
		return writeOutput(output, out)
	}
	if err := os.MkdirAll(output, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return writeOutput(filepath.Join(output, "stdin."+params.extension()), out)
}
