package main

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-govspeak/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // GOVSPEAK_CONFIG: config file name or path
	Locale     string // GOVSPEAK_LOCALE: component locale
	OutputDir  string // GOVSPEAK_OUTPUT_DIR: default output directory
	References string // GOVSPEAK_REFERENCES: references YAML file
	AssetPath  string // GOVSPEAK_ASSET_PATH: custom asset directory
	Highlight  string // GOVSPEAK_HIGHLIGHT: chroma style
	LogLevel   string // GOVSPEAK_LOG_LEVEL: debug, info, warn, error
	Workers    int    // GOVSPEAK_WORKERS: parallel workers
}

// knownEnvVars lists valid GOVSPEAK_* environment variables.
var knownEnvVars = map[string]bool{
	"GOVSPEAK_CONFIG":     true,
	"GOVSPEAK_LOCALE":     true,
	"GOVSPEAK_OUTPUT_DIR": true,
	"GOVSPEAK_REFERENCES": true,
	"GOVSPEAK_ASSET_PATH": true,
	"GOVSPEAK_HIGHLIGHT":  true,
	"GOVSPEAK_LOG_LEVEL":  true,
	"GOVSPEAK_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("GOVSPEAK_CONFIG"),
		Locale:     os.Getenv("GOVSPEAK_LOCALE"),
		OutputDir:  os.Getenv("GOVSPEAK_OUTPUT_DIR"),
		References: os.Getenv("GOVSPEAK_REFERENCES"),
		AssetPath:  os.Getenv("GOVSPEAK_ASSET_PATH"),
		Highlight:  os.Getenv("GOVSPEAK_HIGHLIGHT"),
		LogLevel:   os.Getenv("GOVSPEAK_LOG_LEVEL"),
	}

	if workers := os.Getenv("GOVSPEAK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized GOVSPEAK_* variable.
func warnUnknownEnvVars(logger *zap.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "GOVSPEAK_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", zap.String("name", name))
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// Precedence: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Locale != "" && cfg.Input.Locale == "" {
		cfg.Input.Locale = env.Locale
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.References != "" && cfg.References.Path == "" {
		cfg.References.Path = env.References
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Highlight != "" && cfg.Render.Highlight == "" {
		cfg.Render.Highlight = env.Highlight
	}
	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
}

// mergeFlags applies explicitly set flags over the config.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.input.locale != "" {
		cfg.Input.Locale = f.input.locale
	}
	if f.input.noSanitize {
		no := false
		cfg.Input.Sanitize = &no
	}
	if f.input.allowExtraQuotes {
		cfg.Input.AllowExtraQuotes = true
	}
	if len(f.input.allowElements) > 0 {
		cfg.Input.AllowedElements = append(cfg.Input.AllowedElements, f.input.allowElements...)
	}
	if f.input.references != "" {
		cfg.References.Path = f.input.references
	}
	if f.render.assetPath != "" {
		cfg.Assets.BasePath = f.render.assetPath
	}
	if f.render.highlight != "" {
		cfg.Render.Highlight = f.render.highlight
	}
	if f.render.maxDepth != 0 {
		cfg.Render.MaxDepth = f.render.maxDepth
	}
	if f.output.text {
		cfg.Output.Text = true
	}
}
