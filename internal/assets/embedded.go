package assets

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html locales/*.yml
var bundled embed.FS

// EmbeddedLoader serves the component templates and locale tables built into
// the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTemplate returns templates/{name}.html.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	content, err := e.read("templates", name, ".html", ErrTemplateNotFound)
	return string(content), err
}

// LoadLocale returns locales/{name}.yml.
func (e *EmbeddedLoader) LoadLocale(name string) ([]byte, error) {
	return e.read("locales", name, ".yml", ErrLocaleNotFound)
}

func (e *EmbeddedLoader) read(dir, name, ext string, notFound error) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	content, err := bundled.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", notFound, name)
	}
	return content, nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
