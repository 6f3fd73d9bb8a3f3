package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-govspeak/internal/fileutil"
	"github.com/alnah/go-govspeak/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldInvalid    = errors.New("invalid field value")
)

// Field length limits.
const (
	MaxPathLength    = 4096
	MaxLocaleLength  = 35 // BCP 47 practical limit
	MaxElementLength = 64
	MaxStyleLength   = 50
	MaxLevelLength   = 10
	MaxElements      = 100
)

// MaxRenderDepth bounds render.maxDepth.
const MaxRenderDepth = 64

// Config holds the CLI settings read from a YAML file.
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	Assets     AssetsConfig     `yaml:"assets"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	References ReferencesConfig `yaml:"references"`
	Log        LogConfig        `yaml:"log"`
}

// RenderConfig defines renderer options.
type RenderConfig struct {
	MaxDepth  int    `yaml:"maxDepth"`  // 0 = library default
	Highlight string `yaml:"highlight"` // chroma style name, empty = off
}

// AssetsConfig defines where custom templates and locale tables live.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// InputConfig defines per-document options.
type InputConfig struct {
	Locale           string   `yaml:"locale"`
	AllowExtraQuotes bool     `yaml:"allowExtraQuotes"`
	AllowedElements  []string `yaml:"allowedElements"`
	Sanitize         *bool    `yaml:"sanitize"` // nil = true
}

// SanitizeEnabled reports whether the sanitizer should run.
func (c InputConfig) SanitizeEnabled() bool {
	return c.Sanitize == nil || *c.Sanitize
}

// OutputConfig defines output options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
	Text       bool   `yaml:"text"`       // write plain text instead of HTML
}

// ReferencesConfig points at the YAML file holding images, attachments, links and contacts.
type ReferencesConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines CLI logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

var validLevels = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	if c.Render.MaxDepth < 0 || c.Render.MaxDepth > MaxRenderDepth {
		return fmt.Errorf("%w: render.maxDepth must be between 0 and %d, got %d",
			ErrFieldInvalid, MaxRenderDepth, c.Render.MaxDepth)
	}
	if err := validateFieldLength("render.highlight", c.Render.Highlight, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.locale", c.Input.Locale, MaxLocaleLength); err != nil {
		return err
	}
	if len(c.Input.AllowedElements) > MaxElements {
		return fmt.Errorf("%w: input.allowedElements (%d entries, max %d)",
			ErrFieldTooLong, len(c.Input.AllowedElements), MaxElements)
	}
	for i, el := range c.Input.AllowedElements {
		if err := validateFieldLength(fmt.Sprintf("input.allowedElements[%d]", i), el, MaxElementLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("references.path", c.References.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("log.level", c.Log.Level, MaxLevelLength); err != nil {
		return err
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("%w: log.level %q (want debug, info, warn or error)", ErrFieldInvalid, c.Log.Level)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched for in the current directory and then in
// the user config directory under go-govspeak/.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.Decode(data, &cfg, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-govspeak", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
