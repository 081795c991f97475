//go:build !nofont

package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// harfBuzzShaper shapes lines with go-text's HarfBuzz port. Glyph ids are
// indices into the same font file, so they match the sfnt rasterizer's.
type harfBuzzShaper struct {
	face *gotext.Face
	size fixed.Int26_6
	hb   shaping.HarfbuzzShaper
	lang language.Language
}

func newHarfBuzzShaper(data []byte, size float32) (*harfBuzzShaper, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: shaping: %w", ErrInvalidFont, err)
	}
	return &harfBuzzShaper{
		face: face,
		size: fixed.Int26_6(size*64 + 0.5),
		lang: language.NewLanguage("en"),
	}, nil
}

func (s *harfBuzzShaper) Shape(line []rune) []ShapedGlyph {
	if len(line) == 0 {
		return nil
	}
	out := s.hb.Shape(shaping.Input{
		Text:      line,
		RunStart:  0,
		RunEnd:    len(line),
		Direction: di.DirectionLTR,
		Face:      s.face,
		Size:      s.size,
		Script:    scriptOf(line),
		Language:  s.lang,
	})

	glyphs := make([]ShapedGlyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		var r rune
		if idx := g.TextIndex(); idx >= 0 && idx < len(line) {
			r = line[idx]
		}
		glyphs[i] = ShapedGlyph{
			ID:       GlyphID(g.GlyphID),
			Rune:     r,
			XAdvance: toFloat(g.Advance),
			XOffset:  toFloat(g.XOffset),
			YOffset:  toFloat(g.YOffset),
		}
	}
	return glyphs
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(line []rune) language.Script {
	for _, r := range line {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
