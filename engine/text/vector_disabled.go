//go:build nofont

package text

import "github.com/hubastard/quill/engine/core"

// VectorFontBuilder is unavailable in builds tagged nofont. Every
// constructor returns ErrFontsDisabled.
type VectorFontBuilder struct{}

func NewVectorFontBuilder(string) (*VectorFontBuilder, error) { return nil, ErrFontsDisabled }

func NewVectorFontBuilderFromData([]byte) (*VectorFontBuilder, error) { return nil, ErrFontsDisabled }

func (*VectorFontBuilder) Build(core.Renderer, FontOptions) (*Font, error) {
	return nil, ErrFontsDisabled
}

func (*VectorFontBuilder) WithSize(core.Renderer, float32) (*Font, error) {
	return nil, ErrFontsDisabled
}

func LoadVectorFont(core.Renderer, string, float32) (*Font, error) { return nil, ErrFontsDisabled }

func LoadVectorFontData(core.Renderer, []byte, float32) (*Font, error) { return nil, ErrFontsDisabled }
