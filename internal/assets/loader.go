package assets

// AssetLoader defines the contract for loading component templates and
// locale tables. Implementations may load from embedded assets, the
// filesystem, or any other store.
type AssetLoader interface {
	// LoadTemplate loads an HTML component template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadLocale loads a YAML locale table by name (without .yml extension).
	// Returns ErrLocaleNotFound if the locale doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLocale(name string) ([]byte, error)
}
