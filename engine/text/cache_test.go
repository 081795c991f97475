package text

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hubastard/quill/engine/core"
	"github.com/hubastard/quill/engine/gfx/headless"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
)

func TestFontCache_RenderTwoGlyphsNoGrowth(t *testing.T) {
	dev := headless.New()
	c, _ := newTestCache(t, dev, testConfig(16, 8, 64))

	g, err := c.Render("AB")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Quads) != 2 {
		t.Fatalf("quads = %d, want 2", len(g.Quads))
	}
	if r, _ := c.Atlas().Lookup('A'); r != (Rect{0, 0, 8, 8}) {
		t.Errorf("A placed at %+v, want {0 0 8 8}", r)
	}
	if r, _ := c.Atlas().Lookup('B'); r != (Rect{8, 0, 8, 8}) {
		t.Errorf("B placed at %+v, want {8 0 8 8}", r)
	}
	if c.Generation() != 0 || g.Generation != 0 {
		t.Errorf("generation = %d (geometry %d), want 0", c.Generation(), g.Generation)
	}

	wantPos := []renderer2d.Rectangle{{X: 0, Y: 0, W: 8, H: 8}, {X: 8, Y: 0, W: 8, H: 8}}
	wantUV := []renderer2d.Rectangle{{X: 0, Y: 0, W: 0.5, H: 1}, {X: 0.5, Y: 0, W: 0.5, H: 1}}
	for i, q := range g.Quads {
		if q.Position != wantPos[i] {
			t.Errorf("quad %d position = %+v, want %+v", i, q.Position, wantPos[i])
		}
		if q.UV != wantUV[i] {
			t.Errorf("quad %d uv = %+v, want %+v", i, q.UV, wantUV[i])
		}
	}
	if !g.HasBounds || g.Bounds != (renderer2d.Rectangle{W: 16, H: 8}) {
		t.Errorf("bounds = %+v (%v), want 16x8", g.Bounds, g.HasBounds)
	}
}

func TestFontCache_RenderGrowsNarrowAtlas(t *testing.T) {
	dev := headless.New()
	c, _ := newTestCache(t, dev, testConfig(8, 8, 64))

	// Place A alone first so its pixels can be compared across growth.
	if _, err := c.Render("A"); err != nil {
		t.Fatal(err)
	}
	before := headlessTexture(t, c.Texture()).Region(0, 0, 8, 8)

	g, err := c.Render("AB")
	if err != nil {
		t.Fatal(err)
	}
	if c.Generation() != 1 || g.Generation != 1 {
		t.Errorf("generation = %d (geometry %d), want 1", c.Generation(), g.Generation)
	}
	if _, h := c.Atlas().Size(); h != 16 {
		t.Errorf("atlas height = %d, want 16", h)
	}
	if r, _ := c.Atlas().Lookup('B'); r != (Rect{0, 8, 8, 8}) {
		t.Errorf("B placed at %+v, want {0 8 8 8}", r)
	}
	after := headlessTexture(t, c.Texture()).Region(0, 0, 8, 8)
	if !bytes.Equal(before, after) {
		t.Error("A's pixels changed across growth")
	}
}

func TestFontCache_UVsUseFinalAtlasSize(t *testing.T) {
	c, _ := newTestCache(t, headless.New(), testConfig(8, 8, 64))

	// A is placed before the growth B triggers in the same call.
	g, err := c.Render("AB")
	if err != nil {
		t.Fatal(err)
	}
	want := []renderer2d.Rectangle{{X: 0, Y: 0, W: 1, H: 0.5}, {X: 0, Y: 0.5, W: 1, H: 0.5}}
	for i, q := range g.Quads {
		if q.UV != want[i] {
			t.Errorf("quad %d uv = %+v, want %+v", i, q.UV, want[i])
		}
	}
}

func TestFontCache_GlyphsRasterizedOnce(t *testing.T) {
	c, r := newTestCache(t, headless.New(), testConfig(64, 8, 64))

	for i := 0; i < 3; i++ {
		if _, err := c.Render("AAB"); err != nil {
			t.Fatal(err)
		}
	}
	if r.calls['A'] != 1 || r.calls['B'] != 1 {
		t.Errorf("rasterize calls A=%d B=%d, want 1 each", r.calls['A'], r.calls['B'])
	}
}

func TestFontCache_Layout(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPos  []renderer2d.Rectangle
		wantSize [2]float32
	}{
		{
			name:     "space advances without a quad",
			input:    "A B",
			wantPos:  []renderer2d.Rectangle{{X: 0, Y: 0, W: 8, H: 8}, {X: 16, Y: 0, W: 8, H: 8}},
			wantSize: [2]float32{24, 8},
		},
		{
			name:     "newline resets pen",
			input:    "AB\nC",
			wantPos:  []renderer2d.Rectangle{{X: 0, Y: 0, W: 8, H: 8}, {X: 8, Y: 0, W: 8, H: 8}, {X: 0, Y: 8, W: 8, H: 8}},
			wantSize: [2]float32{16, 16},
		},
		{
			name:     "trailing newline adds a line",
			input:    "A\n",
			wantPos:  []renderer2d.Rectangle{{X: 0, Y: 0, W: 8, H: 8}},
			wantSize: [2]float32{8, 16},
		},
		{
			name:     "multi-byte runes",
			input:    "é€",
			wantPos:  []renderer2d.Rectangle{{X: 0, Y: 0, W: 8, H: 8}, {X: 8, Y: 0, W: 8, H: 8}},
			wantSize: [2]float32{16, 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCache(t, headless.New(), testConfig(64, 8, 64))
			g, err := c.Render(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if len(g.Quads) != len(tt.wantPos) {
				t.Fatalf("quads = %d, want %d", len(g.Quads), len(tt.wantPos))
			}
			for i, q := range g.Quads {
				if q.Position != tt.wantPos[i] {
					t.Errorf("quad %d = %+v, want %+v", i, q.Position, tt.wantPos[i])
				}
			}
			if g.Size != tt.wantSize {
				t.Errorf("size = %v, want %v", g.Size, tt.wantSize)
			}
		})
	}
}

func TestFontCache_NormalizesToNFC(t *testing.T) {
	c, _ := newTestCache(t, headless.New(), testConfig(64, 8, 64))

	g, err := c.Render("e\u0301")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Quads) != 1 || g.Quads[0].Glyph != GlyphID('\u00e9') {
		t.Errorf("quads = %+v, want a single é", g.Quads)
	}
}

func TestFontCache_EmptyAndBlank(t *testing.T) {
	c, _ := newTestCache(t, headless.New(), testConfig(64, 8, 64))

	for _, s := range []string{"", "   "} {
		g, err := c.Render(s)
		if err != nil {
			t.Fatal(err)
		}
		if len(g.Quads) != 0 || g.HasBounds {
			t.Errorf("Render(%q): quads=%d hasBounds=%v", s, len(g.Quads), g.HasBounds)
		}
	}
}

func TestFontCache_SkipsGlyphWhenAtlasFull(t *testing.T) {
	c, r := newTestCache(t, headless.New(), testConfig(8, 8, 8))

	g, err := c.Render("AB")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(g.Quads) != 1 || g.Quads[0].Glyph != 'A' {
		t.Fatalf("quads = %+v, want only A", g.Quads)
	}
	if g.Size[0] != 16 {
		t.Errorf("width = %v, want 16 (B keeps its advance)", g.Size[0])
	}

	if _, err := c.Render("B"); err != nil {
		t.Fatal(err)
	}
	if r.calls['B'] != 1 {
		t.Errorf("B rasterized %d times, want 1 (not retried)", r.calls['B'])
	}
}

func TestFontCache_SkipsGlyphOnRasterError(t *testing.T) {
	c, r := newTestCache(t, headless.New(), testConfig(64, 8, 64))
	r.fail['X'] = true

	g, err := c.Render("AXB")
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Quads) != 2 {
		t.Fatalf("quads = %d, want 2", len(g.Quads))
	}
	if g.Quads[1].Position.X != 16 {
		t.Errorf("B at x=%v, want 16", g.Quads[1].Position.X)
	}
}

func TestFontCache_PlatformErrorAborts(t *testing.T) {
	dev := headless.New()
	c, _ := newTestCache(t, dev, testConfig(8, 8, 64))

	dev.FailCreate = true
	_, err := c.Render("AB")
	if !errors.Is(err, core.ErrPlatform) {
		t.Fatalf("err = %v, want ErrPlatform", err)
	}

	dev.FailCreate = false
	g, err := c.Render("AB")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(g.Quads) != 2 {
		t.Errorf("retry quads = %d, want 2", len(g.Quads))
	}
}

func TestFontCache_Reset(t *testing.T) {
	c, r := newTestCache(t, headless.New(), testConfig(16, 8, 64))
	c.Render("AB")

	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	if c.Generation() != 1 {
		t.Errorf("generation = %d, want 1", c.Generation())
	}
	g, err := c.Render("B")
	if err != nil {
		t.Fatal(err)
	}
	if r.calls['B'] != 2 {
		t.Errorf("B rasterized %d times, want 2", r.calls['B'])
	}
	if rb, _ := c.Atlas().Lookup('B'); rb != (Rect{0, 0, 8, 8}) {
		t.Errorf("B after reset at %+v", rb)
	}
	if g.Generation != 1 {
		t.Errorf("geometry generation = %d, want 1", g.Generation)
	}
}
