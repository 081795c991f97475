package text

// ShapedGlyph is one positioned glyph of a shaped line. Offsets are Y up,
// as fonts define them; XAdvance already includes kerning.
type ShapedGlyph struct {
	ID       GlyphID
	Rune     rune // first rune of the glyph's cluster
	XAdvance float32
	XOffset  float32
	YOffset  float32
}

// Shaper converts a line of runes (no newlines) into glyphs in visual order.
type Shaper interface {
	Shape(line []rune) []ShapedGlyph
}

// runeShaper maps each rune to one glyph and applies pair kerning. It is
// the default shaper and needs nothing beyond the rasterizer.
type runeShaper struct {
	r Rasterizer
}

// NewRuneShaper returns a shaper mapping runes one to one onto glyphs.
func NewRuneShaper(r Rasterizer) Shaper { return runeShaper{r: r} }

func (s runeShaper) Shape(line []rune) []ShapedGlyph {
	if len(line) == 0 {
		return nil
	}
	out := make([]ShapedGlyph, len(line))
	for i, r := range line {
		id := s.r.GlyphIndex(r)
		out[i] = ShapedGlyph{ID: id, Rune: r, XAdvance: s.r.Advance(id)}
		if i > 0 {
			out[i-1].XAdvance += s.r.Kern(out[i-1].ID, id)
		}
	}
	return out
}
