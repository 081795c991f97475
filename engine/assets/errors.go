package assets

import "errors"

var (
	// ErrFailedToLoadAsset is returned when an asset file cannot be read.
	ErrFailedToLoadAsset = errors.New("failed to load asset")

	// ErrInvalidTexture is returned when image data cannot be decoded.
	ErrInvalidTexture = errors.New("invalid texture data")
)
