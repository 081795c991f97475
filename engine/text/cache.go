package text

import (
	"errors"
	"image"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/hubastard/quill/engine/core"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
)

// glyphEntry is a rasterised glyph: where it lives in the atlas and where
// its mask sits relative to the pen.
type glyphEntry struct {
	rect   Rect
	offset image.Point
}

// FontCache lays out text for one font at one size, rasterising glyphs into
// its atlas on first use.
//
// A FontCache is not safe for concurrent use. All calls must come from the
// thread owning the graphics device.
type FontCache struct {
	rast    Rasterizer
	shaper  Shaper
	atlas   *Atlas
	metrics Metrics

	glyphs map[GlyphID]glyphEntry
	// failed holds glyphs that could not be rasterised or placed. They render
	// blank and are not retried until Reset.
	failed map[GlyphID]struct{}
}

// NewFontCache creates a cache and its atlas. A nil shaper selects the
// rune-by-rune shaper with kerning.
func NewFontCache(dev core.Renderer, r Rasterizer, s Shaper, cfg AtlasConfig) (*FontCache, error) {
	atlas, err := NewAtlas(dev, cfg)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = NewRuneShaper(r)
	}
	return &FontCache{
		rast:    r,
		shaper:  s,
		atlas:   atlas,
		metrics: r.Metrics(),
		glyphs:  make(map[GlyphID]glyphEntry),
		failed:  make(map[GlyphID]struct{}),
	}, nil
}

// Render lays out s, one line per '\n', with the first baseline at the
// ascent. There is no wrapping. Whitespace advances the pen without
// producing a quad.
//
// Glyphs that cannot be rasterised or do not fit in the atlas are skipped
// and logged once. A device error aborts the call.
func (c *FontCache) Render(s string) (*TextGeometry, error) {
	s = norm.NFC.String(s)

	type placed struct {
		id   GlyphID
		rect Rect
		x, y float32
	}
	var glyphs []placed

	lineHeight := c.metrics.LineHeight()
	baseline := c.metrics.Ascent
	var width float32
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			baseline += lineHeight
		}
		var penX float32
		for _, g := range c.shaper.Shape([]rune(line)) {
			if !unicode.IsSpace(g.Rune) {
				e, ok, err := c.glyph(g.ID, g.Rune)
				if err != nil {
					return nil, err
				}
				if ok && !e.rect.Empty() {
					glyphs = append(glyphs, placed{
						id:   g.ID,
						rect: e.rect,
						x:    penX + g.XOffset + float32(e.offset.X),
						y:    baseline - g.YOffset + float32(e.offset.Y),
					})
				}
			}
			penX += g.XAdvance
		}
		width = max(width, penX)
	}

	// UVs use the atlas size after every glyph of this call is placed, since
	// a later glyph may have grown the atlas.
	aw, ah := c.atlas.Size()
	geom := &TextGeometry{
		Quads:      make([]Quad, 0, len(glyphs)),
		Size:       [2]float32{width, float32(len(lines)) * lineHeight},
		Generation: c.atlas.Generation(),
	}
	for _, g := range glyphs {
		pos := renderer2d.Rectangle{X: g.x, Y: g.y, W: float32(g.rect.W), H: float32(g.rect.H)}
		src := renderer2d.Rectangle{X: float32(g.rect.X), Y: float32(g.rect.Y), W: float32(g.rect.W), H: float32(g.rect.H)}
		geom.Quads = append(geom.Quads, Quad{
			Position: pos,
			UV:       renderer2d.UVRect(src, aw, ah),
			Glyph:    g.id,
		})
		if geom.HasBounds {
			geom.Bounds = geom.Bounds.Union(pos)
		} else {
			geom.Bounds, geom.HasBounds = pos, true
		}
	}
	return geom, nil
}

// glyph returns the cached entry for id, rasterising and placing it on
// first use. ok is false for glyphs that are skipped.
func (c *FontCache) glyph(id GlyphID, r rune) (e glyphEntry, ok bool, err error) {
	if e, ok := c.glyphs[id]; ok {
		return e, true, nil
	}
	if _, bad := c.failed[id]; bad {
		return glyphEntry{}, false, nil
	}

	bmp, err := c.rast.Rasterize(id)
	if err != nil {
		c.skip(id, r, err)
		return glyphEntry{}, false, nil
	}
	if bmp.Empty() {
		c.glyphs[id] = glyphEntry{}
		return glyphEntry{}, true, nil
	}

	w, h, pix := bmp.pixels()
	rect, err := c.atlas.Place(id, w, h, pix)
	if err != nil {
		if errors.Is(err, ErrAtlasFull) || errors.Is(err, ErrInvalidSize) {
			c.skip(id, r, err)
			return glyphEntry{}, false, nil
		}
		return glyphEntry{}, false, err
	}
	e = glyphEntry{rect: rect, offset: bmp.Offset}
	c.glyphs[id] = e
	return e, true, nil
}

func (c *FontCache) skip(id GlyphID, r rune, err error) {
	c.failed[id] = struct{}{}
	core.Logger().Warn("text: glyph skipped", "glyph", uint32(id), "rune", string(r), "err", err)
}

// Generation is the atlas generation. Geometry stamped with a different
// value must be rebuilt before drawing.
func (c *FontCache) Generation() uint64 { return c.atlas.Generation() }

func (c *FontCache) Metrics() Metrics      { return c.metrics }
func (c *FontCache) LineHeight() float32   { return c.metrics.LineHeight() }
func (c *FontCache) Texture() core.Texture { return c.atlas.Texture() }
func (c *FontCache) Atlas() *Atlas         { return c.atlas }

// Reset forgets every rasterised glyph and clears the atlas. The
// generation advances, so all outstanding geometry becomes stale.
func (c *FontCache) Reset() error {
	if err := c.atlas.Reset(); err != nil {
		return err
	}
	clear(c.glyphs)
	clear(c.failed)
	return nil
}

// Release frees the atlas texture.
func (c *FontCache) Release() { c.atlas.Release() }
