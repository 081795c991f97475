package text

import (
	"unicode/utf8"

	"github.com/hubastard/quill/engine/gfx/renderer2d"
	"github.com/hubastard/quill/engine/profiler"
)

// TextState describes the cached geometry of a Text.
type TextState int

const (
	// TextEmpty: no geometry cached.
	TextEmpty TextState = iota
	// TextFresh: geometry matches the font's current atlas.
	TextFresh
	// TextStale: the atlas changed since the geometry was built.
	TextStale
)

func (s TextState) String() string {
	switch s {
	case TextFresh:
		return "fresh"
	case TextStale:
		return "stale"
	default:
		return "empty"
	}
}

// Text is a string laid out with a Font. Layout is cached and rebuilt only
// when the content or font changes, or when the font's atlas has been
// replaced since the last layout.
type Text struct {
	content  string
	font     *Font
	geometry *TextGeometry

	regenerations int
}

// NewText takes its own clone of font; the caller keeps ownership of the
// handle it passed. Release the Text when done with it.
func NewText(content string, font *Font) *Text {
	t := &Text{content: content}
	if font != nil {
		t.font = font.Clone()
	}
	return t
}

func (t *Text) Content() string { return t.content }

// Font returns the handle owned by t. Do not release it; clone it to keep
// the font past t.
func (t *Text) Font() *Font { return t.font }

// SetContent replaces the content and drops the cached layout.
func (t *Text) SetContent(s string) {
	t.geometry = nil
	t.content = s
}

// SetFont replaces the font with a clone of f, releases the previous
// handle and drops the cached layout.
func (t *Text) SetFont(f *Font) {
	t.geometry = nil
	var next *Font
	if f != nil {
		next = f.Clone()
	}
	if t.font != nil {
		t.font.Release()
	}
	t.font = next
}

// Release drops the Text's font handle and cached layout. The content is
// kept; SetFont makes the Text usable again.
func (t *Text) Release() {
	t.geometry = nil
	if t.font != nil {
		t.font.Release()
		t.font = nil
	}
}

// Push appends r and drops the cached layout.
func (t *Text) Push(r rune) {
	t.geometry = nil
	t.content = string(utf8.AppendRune([]byte(t.content), r))
}

// PushString appends s and drops the cached layout.
func (t *Text) PushString(s string) {
	t.geometry = nil
	t.content += s
}

// Pop removes and returns the last rune. It reports false when the text is
// empty. The cached layout is dropped either way.
func (t *Text) Pop() (rune, bool) {
	t.geometry = nil
	if t.content == "" {
		return 0, false
	}
	r, size := utf8.DecodeLastRuneInString(t.content)
	t.content = t.content[:len(t.content)-size]
	return r, true
}

func (t *Text) State() TextState {
	switch {
	case t.geometry == nil:
		return TextEmpty
	case t.geometry.Generation != t.font.Generation():
		return TextStale
	default:
		return TextFresh
	}
}

// Geometry returns the layout, rebuilding it if needed.
func (t *Text) Geometry() (*TextGeometry, error) {
	if t.State() == TextFresh {
		return t.geometry, nil
	}
	if t.font == nil {
		return nil, ErrNoFont
	}
	defer profiler.Start("text.layout")()

	g, err := t.font.Cache().Render(t.content)
	if err != nil {
		return nil, err
	}
	t.geometry = g
	t.regenerations++
	return g, nil
}

// Bounds returns the union of the glyph quads in layout space, ignoring any
// DrawParams. ok is false when no glyph is visible.
func (t *Text) Bounds() (r renderer2d.Rectangle, ok bool, err error) {
	g, err := t.Geometry()
	if err != nil {
		return renderer2d.Rectangle{}, false, err
	}
	return g.Bounds, g.HasBounds, nil
}

// Draw lays the text out if needed and pushes one quad per glyph, all
// transformed by params.
func (t *Text) Draw(b QuadBatch, params renderer2d.DrawParams) error {
	g, err := t.Geometry()
	if err != nil {
		return err
	}
	b.SetTexture(t.font.Texture())
	for _, q := range g.Quads {
		p, uv := q.Position, q.UV
		b.PushQuad(p.X, p.Y, p.Right(), p.Bottom(), uv.X, uv.Y, uv.Right(), uv.Bottom(), params)
	}
	return nil
}
