package ui

import (
	"image"
	"testing"
	"unicode"

	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/core"
	"github.com/hubastard/quill/engine/gfx/headless"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
	"github.com/hubastard/quill/engine/text"
)

// monoRasterizer draws every visible rune as an 8×10 block on a 10px line.
type monoRasterizer struct{}

func (monoRasterizer) Metrics() text.Metrics          { return text.Metrics{Ascent: 10} }
func (monoRasterizer) GlyphIndex(r rune) text.GlyphID { return text.GlyphID(r) }
func (monoRasterizer) Advance(text.GlyphID) float32   { return 8 }
func (monoRasterizer) Kern(a, b text.GlyphID) float32 { return 0 }
func (monoRasterizer) Rasterize(id text.GlyphID) (text.GlyphBitmap, error) {
	if unicode.IsSpace(rune(id)) {
		return text.GlyphBitmap{}, nil
	}
	m := image.NewAlpha(image.Rect(0, 0, 8, 10))
	return text.GlyphBitmap{Mask: m, Offset: image.Pt(0, -10)}, nil
}

func newTestFont(t *testing.T) *text.Font {
	t.Helper()
	return newTestFontOn(t, headless.New())
}

func newTestFontOn(t *testing.T, dev *headless.Device) *text.Font {
	t.Helper()
	cfg := text.AtlasConfig{Width: 128, InitialHeight: 16, MaxHeight: 256, Filter: core.FilterNearest}
	c, err := text.NewFontCache(dev, monoRasterizer{}, nil, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return text.NewFont(c)
}

type solidQuad struct {
	x, y, w, h float32
	color      colors.Color
}

type recordingCanvas struct {
	solids   []solidQuad
	textured int
}

func (c *recordingCanvas) SetTexture(core.Texture) {}
func (c *recordingCanvas) PushQuad(x1, y1, x2, y2, u1, v1, u2, v2 float32, p renderer2d.DrawParams) {
	c.textured++
}
func (c *recordingCanvas) DrawQuad(x, y, w, h float32, color colors.Color, _ float32) {
	c.solids = append(c.solids, solidQuad{x, y, w, h, color})
}

func TestLabel_SizesFromTextGeometry(t *testing.T) {
	ctx := &Context{DefaultFont: newTestFont(t)}
	l := Label("abc\nde").Padding(2)

	got := l.Layout(ctx, Constraints{}).Size
	if got != [2]float32{28, 24} {
		t.Errorf("size = %v, want [28 24]", got)
	}
}

func TestLabel_Wraps(t *testing.T) {
	ctx := &Context{DefaultFont: newTestFont(t)}
	l := Label("aa bb cc").MaxWidth(48)

	l.Layout(ctx, Constraints{})
	if got := l.Content(); got != "aa bb\ncc" {
		t.Errorf("wrapped = %q", got)
	}
}

func TestLabel_KeepsGeometryWhenUnchanged(t *testing.T) {
	ctx := &Context{DefaultFont: newTestFont(t)}
	l := Label("hi")
	l.Layout(ctx, Constraints{})

	l.SetText("hi")
	l.Layout(ctx, Constraints{})
	if l.txt.State() != text.TextFresh {
		t.Errorf("state = %v, want fresh", l.txt.State())
	}

	l.SetText("ho")
	l.Layout(ctx, Constraints{})
	if l.Content() != "ho" {
		t.Errorf("content = %q", l.Content())
	}
}

func TestLabel_DrawPushesGlyphs(t *testing.T) {
	canvas := &recordingCanvas{}
	ctx := &Context{DefaultFont: newTestFont(t), Renderer: canvas}
	l := Label("a b")
	l.Layout(ctx, Constraints{})
	l.Draw(ctx)

	if canvas.textured != 2 {
		t.Errorf("glyph quads = %d, want 2", canvas.textured)
	}
}

func TestView_StacksChildren(t *testing.T) {
	tests := []struct {
		name  string
		flow  LayoutDirection
		align Align
		want  [][2]float32 // child positions
		size  [2]float32
	}{
		{"vertical", LayoutVertical, AlignStart, [][2]float32{{4, 4}, {4, 18}}, [2]float32{32, 32}},
		{"horizontal", LayoutHorizontal, AlignStart, [][2]float32{{4, 4}, {32, 4}}, [2]float32{52, 18}},
		{"vertical centered", LayoutVertical, AlignCenter, [][2]float32{{4, 4}, {8, 18}}, [2]float32{32, 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &Context{DefaultFont: newTestFont(t)}
			a, b := Label("abc"), Label("de")
			v := View(a, b).FlowDirection(tt.flow).AlignCross(tt.align).Gap(4).Padding(4)

			if got := v.Layout(ctx, Constraints{}).Size; got != tt.size {
				t.Errorf("size = %v, want %v", got, tt.size)
			}
			for i, child := range []*UILabel{a, b} {
				x, y := child.Node().Pos()
				if [2]float32{x, y} != tt.want[i] {
					t.Errorf("child %d at (%v,%v), want %v", i, x, y, tt.want[i])
				}
			}
		})
	}
}

func TestView_ExpandSharesSpace(t *testing.T) {
	ctx := &Context{DefaultFont: newTestFont(t)}
	a := Label("a")
	b := Label("b").WidthExpand()
	v := View(a, b).Gap(0).WidthFixed(100)

	v.Layout(ctx, Constraints{})
	if w, _ := b.Node().Size(); w != 92 {
		t.Errorf("expanded width = %v, want 92", w)
	}
}

func TestView_DrawsBackgroundAndPanel(t *testing.T) {
	dev := headless.New()
	tex, err := renderer2d.NewEmptyTexture(dev, 12, 12, core.FilterNearest)
	if err != nil {
		t.Fatal(err)
	}

	canvas := &recordingCanvas{}
	ctx := &Context{Viewport: [4]float32{0, 0, 200, 100}, DefaultFont: newTestFont(t), Renderer: canvas}
	View(Label("x")).BgColor(colors.Black).Padding(0).Draw(ctx)
	if len(canvas.solids) != 1 || canvas.solids[0].w != 8 {
		t.Fatalf("solids = %+v, want one 8 wide", canvas.solids)
	}

	canvas = &recordingCanvas{}
	ctx.Renderer = canvas
	ns := renderer2d.NineSliceWithBorder(renderer2d.Rectangle{W: 12, H: 12}, 4)
	View(Label("x")).Panel(tex, ns).Padding(8).Draw(ctx)
	if len(canvas.solids) != 0 || canvas.textured != 9+1 {
		t.Errorf("solids=%d textured=%d, want 0 and 10", len(canvas.solids), canvas.textured)
	}
}

func TestButton_PadsLabel(t *testing.T) {
	canvas := &recordingCanvas{}
	ctx := &Context{DefaultFont: newTestFont(t), Renderer: canvas}
	b := Button("ok").BgColor(colors.Blue)

	if got := b.Layout(ctx, Constraints{}).Size; got != [2]float32{36, 30} {
		t.Errorf("size = %v, want [36 30]", got)
	}
	b.Node().SetPos(5, 5)
	b.Draw(ctx)
	if x, y := b.Label().Node().Pos(); x != 15 || y != 15 {
		t.Errorf("label at (%v,%v), want (15,15)", x, y)
	}
	if len(canvas.solids) != 1 || canvas.textured != 2 {
		t.Errorf("solids=%d textured=%d", len(canvas.solids), canvas.textured)
	}
}

func TestRelease_DropsLabelFontClones(t *testing.T) {
	dev := headless.New()
	font := newTestFontOn(t, dev)
	ctx := &Context{DefaultFont: font}
	root := View(Label("a"), Button("b"))

	root.Layout(ctx, Constraints{})
	if font.Refs() != 3 {
		t.Fatalf("refs after layout = %d, want 3", font.Refs())
	}
	root.Release()
	if font.Refs() != 1 {
		t.Fatalf("refs after Release = %d, want 1", font.Refs())
	}

	// Released labels take a fresh clone on the next layout.
	root.Layout(ctx, Constraints{})
	if font.Refs() != 3 {
		t.Fatalf("refs after relayout = %d, want 3", font.Refs())
	}
	root.Release()
	font.Release()
	if dev.LiveTextures() != 0 {
		t.Errorf("live textures = %d, want 0", dev.LiveTextures())
	}
}
