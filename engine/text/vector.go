//go:build !nofont

package text

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/hubastard/quill/engine/assets"
	"github.com/hubastard/quill/engine/core"
)

// VectorFontBuilder holds parsed TrueType/OpenType data so several sizes
// can be built without reading or parsing the file again.
type VectorFontBuilder struct {
	data []byte
	font *sfnt.Font
}

// NewVectorFontBuilder reads and parses a font under <assets>/fonts.
func NewVectorFontBuilder(relPath string) (*VectorFontBuilder, error) {
	data, err := assets.ReadFont(relPath)
	if err != nil {
		return nil, err
	}
	return NewVectorFontBuilderFromData(data)
}

// NewVectorFontBuilderFromData parses font data held in memory, such as an
// embedded file.
func NewVectorFontBuilderFromData(data []byte) (*VectorFontBuilder, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	return &VectorFontBuilder{data: data, font: f}, nil
}

// Build creates a font with its own atlas.
func (b *VectorFontBuilder) Build(dev core.Renderer, opts FontOptions) (*Font, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: font size %v", ErrInvalidSize, opts.Size)
	}
	r, err := newSFNTRasterizer(b.font, opts.Size)
	if err != nil {
		return nil, err
	}

	var s Shaper
	if opts.Shaping == ShapingHarfBuzz {
		if s, err = newHarfBuzzShaper(b.data, opts.Size); err != nil {
			return nil, err
		}
	}

	cache, err := NewFontCache(dev, r, s, opts.Atlas)
	if err != nil {
		return nil, err
	}
	core.Logger().Debug("text: font built", "size", opts.Size, "glyphs", b.font.NumGlyphs())
	return NewFont(cache), nil
}

// WithSize builds a font of the given pixel size with the default atlas and
// simple shaping.
func (b *VectorFontBuilder) WithSize(dev core.Renderer, size float32) (*Font, error) {
	return b.Build(dev, FontOptions{Size: size, Atlas: DefaultAtlasConfig()})
}

// LoadVectorFont loads a font under <assets>/fonts at the given size.
func LoadVectorFont(dev core.Renderer, relPath string, size float32) (*Font, error) {
	b, err := NewVectorFontBuilder(relPath)
	if err != nil {
		return nil, err
	}
	return b.WithSize(dev, size)
}

// LoadVectorFontData builds a font from in-memory font data.
func LoadVectorFontData(dev core.Renderer, data []byte, size float32) (*Font, error) {
	b, err := NewVectorFontBuilderFromData(data)
	if err != nil {
		return nil, err
	}
	return b.WithSize(dev, size)
}

// sfntRasterizer renders glyph outlines with an anti-aliasing scanline
// rasterizer. Hinting is off so layout scales linearly with size.
type sfntRasterizer struct {
	f       *sfnt.Font
	ppem    fixed.Int26_6
	buf     sfnt.Buffer
	metrics Metrics
	z       vector.Rasterizer
}

func newSFNTRasterizer(f *sfnt.Font, size float32) (*sfntRasterizer, error) {
	r := &sfntRasterizer{f: f, ppem: fixed.Int26_6(size*64 + 0.5)}
	m, err := f.Metrics(&r.buf, r.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: metrics: %w", ErrInvalidFont, err)
	}
	asc, desc := toFloat(m.Ascent), toFloat(m.Descent)
	r.metrics = Metrics{
		Ascent:  asc,
		Descent: desc,
		LineGap: max(toFloat(m.Height)-asc-desc, 0),
	}
	return r, nil
}

func toFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }

func (r *sfntRasterizer) Metrics() Metrics { return r.metrics }

func (r *sfntRasterizer) GlyphIndex(c rune) GlyphID {
	x, err := r.f.GlyphIndex(&r.buf, c)
	if err != nil {
		return 0
	}
	return GlyphID(x)
}

func (r *sfntRasterizer) Advance(id GlyphID) float32 {
	adv, err := r.f.GlyphAdvance(&r.buf, sfnt.GlyphIndex(id), r.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return toFloat(adv)
}

func (r *sfntRasterizer) Kern(a, b GlyphID) float32 {
	k, err := r.f.Kern(&r.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), r.ppem, font.HintingNone)
	if err != nil {
		return 0 // most pairs have no entry (sfnt.ErrNotFound)
	}
	return toFloat(k)
}

func (r *sfntRasterizer) Rasterize(id GlyphID) (GlyphBitmap, error) {
	segs, err := r.f.LoadGlyph(&r.buf, sfnt.GlyphIndex(id), r.ppem, nil)
	if err != nil {
		return GlyphBitmap{}, fmt.Errorf("load glyph %d: %w", id, err)
	}
	b := segs.Bounds()
	minX, minY := b.Min.X.Floor(), b.Min.Y.Floor()
	maxX, maxY := b.Max.X.Ceil(), b.Max.Y.Ceil()
	w, h := maxX-minX, maxY-minY
	if len(segs) == 0 || w <= 0 || h <= 0 {
		return GlyphBitmap{}, nil
	}

	// Outlines are Y down with the origin on the pen; shift them so the
	// bounding box starts at (0, 0).
	ox, oy := float32(minX), float32(minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return toFloat(p.X) - ox, toFloat(p.Y) - oy
	}

	r.z.Reset(w, h)
	r.z.DrawOp = draw.Src
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			r.z.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			r.z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			r.z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return GlyphBitmap{Mask: mask, Offset: image.Pt(minX, minY)}, nil
}
