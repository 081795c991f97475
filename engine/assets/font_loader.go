package assets

// ReadFont returns the raw bytes of a TrueType/OpenType file under
// <Root>/fonts. The bytes are not validated; parsing is the font
// backend's job.
func ReadFont(relPath string) ([]byte, error) {
	return readFile(Path("fonts", relPath))
}
