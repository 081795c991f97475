package text

import (
	"errors"
	"image"
	"testing"
	"unicode"

	"github.com/hubastard/quill/engine/core"
	"github.com/hubastard/quill/engine/gfx/headless"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
)

// squareRasterizer renders every visible rune as a size×size square whose
// coverage is the low byte of the rune. Glyph ids are the runes themselves.
type squareRasterizer struct {
	size  int
	fail  map[rune]bool
	calls map[GlyphID]int
}

func newSquareRasterizer(size int) *squareRasterizer {
	return &squareRasterizer{size: size, fail: map[rune]bool{}, calls: map[GlyphID]int{}}
}

func (f *squareRasterizer) Metrics() Metrics          { return Metrics{Ascent: float32(f.size)} }
func (f *squareRasterizer) GlyphIndex(r rune) GlyphID { return GlyphID(r) }
func (f *squareRasterizer) Advance(GlyphID) float32   { return float32(f.size) }
func (f *squareRasterizer) Kern(a, b GlyphID) float32 { return 0 }

func (f *squareRasterizer) Rasterize(id GlyphID) (GlyphBitmap, error) {
	f.calls[id]++
	if f.fail[rune(id)] {
		return GlyphBitmap{}, errors.New("no outline")
	}
	if unicode.IsSpace(rune(id)) {
		return GlyphBitmap{}, nil
	}
	m := image.NewAlpha(image.Rect(0, 0, f.size, f.size))
	for i := range m.Pix {
		m.Pix[i] = byte(id)
	}
	return GlyphBitmap{Mask: m, Offset: image.Pt(0, -f.size)}, nil
}

func testConfig(width, height, maxHeight int) AtlasConfig {
	return AtlasConfig{Width: width, InitialHeight: height, MaxHeight: maxHeight, Filter: core.FilterNearest}
}

func newTestCache(t *testing.T, dev *headless.Device, cfg AtlasConfig) (*FontCache, *squareRasterizer) {
	t.Helper()
	r := newSquareRasterizer(8)
	c, err := NewFontCache(dev, r, nil, cfg)
	if err != nil {
		t.Fatalf("NewFontCache: %v", err)
	}
	return c, r
}

func headlessTexture(t *testing.T, tex core.Texture) *headless.Texture {
	t.Helper()
	ht, ok := tex.(*headless.Texture)
	if !ok {
		t.Fatalf("texture is %T, want *headless.Texture", tex)
	}
	return ht
}

type pushedQuad struct {
	tex    core.Texture
	coords [8]float32
	params renderer2d.DrawParams
}

// recordingBatch is a QuadBatch that remembers every quad.
type recordingBatch struct {
	current core.Texture
	quads   []pushedQuad
}

func (b *recordingBatch) SetTexture(tex core.Texture) { b.current = tex }

func (b *recordingBatch) PushQuad(x1, y1, x2, y2, u1, v1, u2, v2 float32, params renderer2d.DrawParams) {
	b.quads = append(b.quads, pushedQuad{
		tex:    b.current,
		coords: [8]float32{x1, y1, x2, y2, u1, v1, u2, v2},
		params: params,
	})
}
