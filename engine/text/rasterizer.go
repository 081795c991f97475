package text

import "image"

// GlyphID is a glyph index in a font. Zero is the font's missing-glyph
// (notdef) glyph.
type GlyphID uint32

// Metrics are vertical font metrics in pixels. Descent is measured
// downwards from the baseline, so it is positive for most fonts.
type Metrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// LineHeight is the distance between consecutive baselines.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// GlyphBitmap is the coverage of one glyph. Offset locates the mask's
// top-left pixel relative to the pen position on the baseline, Y down.
type GlyphBitmap struct {
	Mask   *image.Alpha
	Offset image.Point
}

// Empty reports whether the glyph has no visible pixels.
func (b GlyphBitmap) Empty() bool { return b.Mask == nil || b.Mask.Rect.Empty() }

// pixels returns the mask as w*h tightly packed bytes.
func (b GlyphBitmap) pixels() (w, h int, pix []byte) {
	r := b.Mask.Rect
	w, h = r.Dx(), r.Dy()
	if b.Mask.Stride == w {
		return w, h, b.Mask.Pix[:w*h]
	}
	pix = make([]byte, 0, w*h)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := b.Mask.PixOffset(r.Min.X, y)
		pix = append(pix, b.Mask.Pix[i:i+w]...)
	}
	return w, h, pix
}

// Rasterizer turns glyphs of one font at one size into coverage masks.
type Rasterizer interface {
	Metrics() Metrics
	// GlyphIndex maps a rune to its glyph, or 0 when the font lacks it.
	GlyphIndex(r rune) GlyphID
	// Advance is the horizontal advance of id in pixels.
	Advance(id GlyphID) float32
	// Kern is the pair adjustment between a and b in pixels.
	Kern(a, b GlyphID) float32
	Rasterize(id GlyphID) (GlyphBitmap, error)
}
