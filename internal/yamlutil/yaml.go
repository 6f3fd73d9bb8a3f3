// Package yamlutil decodes the YAML documents govspeak reads: configuration
// files, reference lists and locale tables.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultMaxSize limits YAML input to prevent memory exhaustion (1MB).
const DefaultMaxSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrRead           = errors.New("yamlutil: cannot read file")
)

// DecodeOption configures Decode and DecodeFile.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict  bool
	maxSize int
}

// Strict rejects keys that do not map to a destination field.
func Strict() DecodeOption {
	return func(c *decodeConfig) { c.strict = true }
}

// WithMaxSize overrides DefaultMaxSize. Non-positive values are ignored.
func WithMaxSize(n int) DecodeOption {
	return func(c *decodeConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// Decode parses data into v.
func Decode(data []byte, v any, opts ...DecodeOption) error {
	cfg := decodeConfig{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > cfg.maxSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), cfg.maxSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var yopts []yaml.DecodeOption
	if cfg.strict {
		yopts = append(yopts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yopts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeFile reads path and decodes it into v.
func DecodeFile(path string, v any, opts ...DecodeOption) error {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	if err := Decode(data, v, opts...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Marshal serializes v, used by the CLI to print the effective configuration.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
