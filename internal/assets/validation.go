package assets

import (
	"fmt"
	"regexp"
)

// maxAssetNameLength bounds template and locale names.
const maxAssetNameLength = 64

var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Names are letters, digits, '-' and '_' (e.g. "attachment_link", "en-GB");
// anything else, including path separators and dots, yields ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidAssetName, len(name), maxAssetNameLength)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
