package assets

import "errors"

// AssetResolver looks assets up in a chain of loaders: the custom directory
// when one is configured, then the embedded set. A loader that reports the
// asset missing passes the lookup on; any other error ends it.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver creates an AssetResolver over the embedded assets, with
// customBasePath in front of them when it is not empty.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, custom)
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

// LoadTemplate returns the first template named name found along the chain.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return lookup(r.chain, func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// LoadLocale returns the first locale table named name found along the chain.
func (r *AssetResolver) LoadLocale(name string) ([]byte, error) {
	return lookup(r.chain, func(l AssetLoader) ([]byte, error) { return l.LoadLocale(name) })
}

// HasCustomLoader reports whether a custom directory heads the chain.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

func lookup[T any](chain []AssetLoader, load func(AssetLoader) (T, error)) (T, error) {
	var (
		zero T
		err  error
	)
	for _, l := range chain {
		var v T
		if v, err = load(l); err == nil {
			return v, nil
		}
		if !isNotFoundError(err) {
			return zero, err
		}
	}
	return zero, err
}

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

var _ AssetLoader = (*AssetResolver)(nil)
