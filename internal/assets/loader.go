package assets

// AssetLoader defines the contract for loading style sheets.
type AssetLoader interface {
	// LoadStyle loads a style sheet by name (without .yaml extension).
	// Returns ErrStyleNotFound if the sheet doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
