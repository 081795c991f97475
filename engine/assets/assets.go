// Package assets resolves engine asset paths and decodes them into the raw
// forms the renderer and font cache consume.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root is the directory asset paths are resolved against.
var Root = "assets"

// Path returns the on-disk path of an asset in the given kind directory
// ("fonts", "textures", "shaders"). Absolute paths are returned unchanged.
func Path(kind, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(Root, kind, rel)
}

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrFailedToLoadAsset, path, err)
	}
	return b, nil
}
