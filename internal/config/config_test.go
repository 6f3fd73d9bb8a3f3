package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if cfg.Render.MaxDepth != 0 {
		t.Errorf("Render.MaxDepth = %d, want 0", cfg.Render.MaxDepth)
	}
	if !cfg.Input.SanitizeEnabled() {
		t.Error("Input.SanitizeEnabled() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error %q should name the field %q", err, tt.fieldName)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	yes := true

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid config passes validation",
			cfg: Config{
				Render: RenderConfig{MaxDepth: 8, Highlight: "github"},
				Input: InputConfig{
					Locale:          "cy",
					AllowedElements: []string{"x-widget"},
					Sanitize:        &yes,
				},
				Log: LogConfig{Level: "debug"},
			},
		},
		{
			name:    "negative depth",
			cfg:     Config{Render: RenderConfig{MaxDepth: -1}},
			wantErr: ErrFieldInvalid,
		},
		{
			name:    "depth above limit",
			cfg:     Config{Render: RenderConfig{MaxDepth: MaxRenderDepth + 1}},
			wantErr: ErrFieldInvalid,
		},
		{
			name:    "locale too long",
			cfg:     Config{Input: InputConfig{Locale: strings.Repeat("a", MaxLocaleLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "too many elements",
			cfg:     Config{Input: InputConfig{AllowedElements: make([]string, MaxElements+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "element too long",
			cfg:     Config{Input: InputConfig{AllowedElements: []string{strings.Repeat("x", MaxElementLength+1)}}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "references path too long",
			cfg:     Config{References: ReferencesConfig{Path: strings.Repeat("p", MaxPathLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown log level",
			cfg:     Config{Log: LogConfig{Level: "loud"}},
			wantErr: ErrFieldInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInputConfig_SanitizeEnabled(t *testing.T) {
	no := false
	if (InputConfig{Sanitize: &no}).SanitizeEnabled() {
		t.Error("SanitizeEnabled() = true with sanitize: false")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `render:
  maxDepth: 4
  highlight: "monokai"
input:
  locale: "cy"
  sanitize: false
  allowedElements: ["x-widget"]
output:
  text: true
references:
  path: "refs.yaml"
log:
  level: "warn"
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Render.MaxDepth != 4 {
			t.Errorf("Render.MaxDepth = %d, want 4", cfg.Render.MaxDepth)
		}
		if cfg.Render.Highlight != "monokai" {
			t.Errorf("Render.Highlight = %q, want monokai", cfg.Render.Highlight)
		}
		if cfg.Input.Locale != "cy" {
			t.Errorf("Input.Locale = %q, want cy", cfg.Input.Locale)
		}
		if cfg.Input.SanitizeEnabled() {
			t.Error("Input.SanitizeEnabled() = true, want false")
		}
		if len(cfg.Input.AllowedElements) != 1 || cfg.Input.AllowedElements[0] != "x-widget" {
			t.Errorf("Input.AllowedElements = %v, want [x-widget]", cfg.Input.AllowedElements)
		}
		if !cfg.Output.Text {
			t.Error("Output.Text = false, want true")
		}
		if cfg.References.Path != "refs.yaml" {
			t.Errorf("References.Path = %q, want refs.yaml", cfg.References.Path)
		}
		if cfg.Log.Level != "warn" {
			t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
		}
	})

	t.Run("missing file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key returns ErrConfigParse", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(configPath, []byte("render:\n  color: red\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("log:\n  level: loud\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrFieldInvalid) {
			t.Errorf("error = %v, want ErrFieldInvalid", err)
		}
	})

	t.Run("name resolves in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "site.yml"), []byte("render:\n  maxDepth: 2\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Render.MaxDepth != 2 {
			t.Errorf("Render.MaxDepth = %d, want 2", cfg.Render.MaxDepth)
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := LoadConfig("missing-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing-config.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}
