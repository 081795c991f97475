package text

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFont is returned when font data cannot be parsed. No partial
	// Font is ever returned alongside it.
	ErrInvalidFont = errors.New("text: invalid font data")

	// ErrAtlasFull is returned when a glyph cannot be placed even after the
	// atlas has grown to its maximum height.
	ErrAtlasFull = errors.New("text: glyph atlas full")

	// ErrInvalidSize is returned for non-positive glyph or font sizes.
	ErrInvalidSize = errors.New("text: invalid size")

	// ErrFontsDisabled is returned by the font loaders of builds tagged nofont.
	ErrFontsDisabled = errors.New("text: built without font support (nofont)")

	// ErrNoFont is returned when a Text without a font is laid out, including
	// after Text.Release.
	ErrNoFont = errors.New("text: no font")
)

// GrowthRequiredError is returned by Packer.Allocate when the rectangle fits
// only once the atlas is Height pixels tall. Nothing is committed; the caller
// grows its texture, calls Packer.Grow and allocates again.
type GrowthRequiredError struct {
	Height int
}

func (e *GrowthRequiredError) Error() string {
	return fmt.Sprintf("text: atlas must grow to height %d", e.Height)
}

// AtlasConfigError reports an unusable AtlasConfig field.
type AtlasConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *AtlasConfigError) Error() string {
	return fmt.Sprintf("text: atlas config %s=%d: %s", e.Field, e.Value, e.Reason)
}
