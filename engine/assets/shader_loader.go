package assets

// LoadShader reads a GLSL source file under <Root>/shaders.
func LoadShader(name string) (string, error) {
	b, err := readFile(Path("shaders", name))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
