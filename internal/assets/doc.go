// Package assets provides component templates and locale tables for
// govspeak rendering.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in component templates (button,
// attachment, attachment_link, contact) and the en and cy locale tables.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the renderer. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is
// not found. This enables overriding a single template or locale while
// keeping the remaining defaults.
//
// # Directory Structure
//
// Assets are organized by type:
//
//	{basePath}/
//	├── templates/
//	│   └── {name}.html          # html/template component (e.g. button.html)
//	└── locales/
//	    └── {name}.yml           # locale strings (e.g. cy.yml)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
