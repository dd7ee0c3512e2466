package assets

import (
	"fmt"
	"regexp"
)

// MaxStyleNameLength bounds a style name, excluding the .yaml extension.
const MaxStyleNameLength = 64

// styleNamePattern accepts names such as "default", "compact" or "report_v2".
// No dots, so neither an extension nor a traversal can be smuggled in.
var styleNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateStyleName checks that name can be turned into styles/<name>.yaml.
func ValidateStyleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxStyleNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), MaxStyleNameLength)
	}
	if !styleNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
