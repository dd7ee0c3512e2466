// Package assets provides the PDF style sheets used by the renderer.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in sheets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in style sheets (default, compact)
// embedded at compile time.
//
// FilesystemLoader allows users to provide their own sheets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the sheet is not
// found. This enables overriding a single sheet while keeping the others.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.yaml          # style sheet (e.g., compact.yaml)
//
// Sheets are returned as raw YAML; parsing belongs to the renderer so that
// every document gets a freshly built style set.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
