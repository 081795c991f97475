package text

import "github.com/hubastard/quill/engine/gfx/renderer2d"

// Quad is one glyph of laid-out text. Position is in layout space with the
// first line's top at y=0; UV is normalised against the atlas size at the
// time the geometry was built.
type Quad struct {
	Position renderer2d.Rectangle
	UV       renderer2d.Rectangle
	Glyph    GlyphID
}

// TextGeometry is the result of FontCache.Render. It is never modified after
// it is returned.
type TextGeometry struct {
	Quads []Quad
	// Bounds is the union of all quads. HasBounds is false when nothing
	// visible was laid out.
	Bounds    renderer2d.Rectangle
	HasBounds bool
	// Size is the advance box: widest line by number of lines × line height.
	Size [2]float32
	// Generation is the atlas generation the UVs were computed against.
	Generation uint64
}

// QuadBatch receives the quads of drawn text.
type QuadBatch = renderer2d.QuadBatch
