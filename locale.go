package govspeak

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-govspeak/internal/assets"
	"github.com/alnah/go-govspeak/internal/yamlutil"
)

// localeTable holds the strings components and presenters need.
// Values may reference %{name} placeholders.
type localeTable struct {
	ImageCredit string      `yaml:"image_credit"`
	ContactForm string      `yaml:"contact_form"`
	Pages       pluralTable `yaml:"pages"`
}

type pluralTable struct {
	One   string `yaml:"one"`
	Other string `yaml:"other"`
}

func (t *localeTable) imageCredit(credit string) string {
	return interpolate(t.ImageCredit, "credit", credit)
}

func (t *localeTable) pages(n int) string {
	format := t.Pages.Other
	if n == 1 && t.Pages.One != "" {
		format = t.Pages.One
	}
	return interpolate(format, "count", strconv.Itoa(n))
}

func interpolate(format, name, value string) string {
	return strings.ReplaceAll(format, "%{"+name+"}", value)
}

// localeSet loads locale tables on first use and caches them, fallbacks
// included.
type localeSet struct {
	loader assets.AssetLoader

	mu     sync.Mutex
	tables map[string]*localeTable
}

// newLocaleSet loads the default table eagerly so a broken asset directory
// fails at construction.
func newLocaleSet(loader assets.AssetLoader) (*localeSet, error) {
	s := &localeSet{loader: loader, tables: make(map[string]*localeTable)}
	t, err := s.decode(assets.DefaultLocale)
	if err != nil {
		return nil, err
	}
	s.tables[assets.DefaultLocale] = t
	return s, nil
}

// lookup returns the table for locale, trying "en-GB", then "en", then the
// default locale.
func (s *localeSet) lookup(locale string) (*localeTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tables[locale]; ok {
		return t, nil
	}

	candidates := []string{locale}
	if base, _, ok := strings.Cut(locale, "-"); ok {
		candidates = append(candidates, base)
	}

	for _, name := range candidates {
		if t, ok := s.tables[name]; ok {
			s.tables[locale] = t
			return t, nil
		}
		t, err := s.decode(name)
		if errors.Is(err, assets.ErrLocaleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			continue
		}
		if err != nil {
			return nil, err
		}
		s.tables[name] = t
		s.tables[locale] = t
		return t, nil
	}

	t := s.tables[assets.DefaultLocale]
	s.tables[locale] = t
	return t, nil
}

func (s *localeSet) decode(name string) (*localeTable, error) {
	data, err := s.loader.LoadLocale(name)
	if err != nil {
		return nil, err
	}
	var t localeTable
	if err := yamlutil.Decode(data, &t, yamlutil.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLocaleTable, name, err)
	}
	return &t, nil
}

// localeStrings returns the locale table of d. A table that fails to load
// is logged and replaced by the default one.
func (d *Document) localeStrings() *localeTable {
	t, err := d.renderer.locales.lookup(d.Locale())
	if err != nil {
		d.renderer.logger.Warn("falling back to default locale",
			zap.String("locale", d.Locale()),
			zap.Error(err),
		)
		t, _ = d.renderer.locales.lookup(assets.DefaultLocale)
	}
	return t
}
