package text

import (
	"errors"

	"github.com/hubastard/quill/engine/core"
)

// AtlasConfig sizes a glyph atlas. The width is fixed for the lifetime of
// the atlas; the height starts at InitialHeight and doubles on demand up to
// MaxHeight (further clamped to the device's maximum texture size).
type AtlasConfig struct {
	Width         int
	InitialHeight int
	MaxHeight     int
	Padding       int
	Filter        core.FilterMode
}

func DefaultAtlasConfig() AtlasConfig {
	return AtlasConfig{
		Width:         512,
		InitialHeight: 128,
		MaxHeight:     4096,
		Padding:       1,
		Filter:        core.FilterLinear,
	}
}

func (c AtlasConfig) Validate() error {
	switch {
	case c.Width <= 0:
		return &AtlasConfigError{Field: "Width", Value: c.Width, Reason: "must be positive"}
	case c.InitialHeight <= 0:
		return &AtlasConfigError{Field: "InitialHeight", Value: c.InitialHeight, Reason: "must be positive"}
	case c.MaxHeight < c.InitialHeight:
		return &AtlasConfigError{Field: "MaxHeight", Value: c.MaxHeight, Reason: "must be at least InitialHeight"}
	case c.Padding < 0:
		return &AtlasConfigError{Field: "Padding", Value: c.Padding, Reason: "must not be negative"}
	}
	return nil
}

// Atlas packs glyph coverage into a single white RGBA texture.
//
// The atlas keeps a CPU copy of the texture. Because the width never
// changes, growing only appends rows: the new texture is created from the
// copy so every glyph keeps its coordinates. Each texture replacement bumps
// the generation by one; UVs computed before the bump are invalid.
type Atlas struct {
	dev     core.Renderer
	packer  *Packer
	tex     core.Texture
	shadow  []byte
	filter  core.FilterMode
	entries map[GlyphID]Rect

	generation uint64
}

// NewAtlas validates cfg and allocates the initial texture.
func NewAtlas(dev core.Renderer, cfg AtlasConfig) (*Atlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	limit := dev.MaxTextureSize()
	if cfg.Width > limit {
		return nil, &AtlasConfigError{Field: "Width", Value: cfg.Width, Reason: "exceeds device texture limit"}
	}
	maxH := min(cfg.MaxHeight, limit)
	initH := min(cfg.InitialHeight, maxH)

	shadow := make([]byte, cfg.Width*initH*4)
	tex, err := dev.CreateTexture(core.TextureDesc{
		Width:  cfg.Width,
		Height: initH,
		Format: core.TextureRGBA8,
		Pixels: shadow,
		Filter: cfg.Filter,
	})
	if err != nil {
		return nil, err
	}
	return &Atlas{
		dev:     dev,
		packer:  NewPacker(cfg.Width, initH, maxH, cfg.Padding),
		tex:     tex,
		shadow:  shadow,
		filter:  cfg.Filter,
		entries: make(map[GlyphID]Rect),
	}, nil
}

// Place stores a w×h coverage mask (one byte per pixel, row-major) for id
// and returns its rectangle. A glyph already in the atlas is returned as is,
// without touching the packer or the texture. Zero-area glyphs get an empty
// Rect.
func (a *Atlas) Place(id GlyphID, w, h int, mask []byte) (Rect, error) {
	if r, ok := a.entries[id]; ok {
		return r, nil
	}
	if w == 0 || h == 0 {
		a.entries[id] = Rect{}
		return Rect{}, nil
	}
	if len(mask) < w*h {
		return Rect{}, &core.NotEnoughDataError{Expected: w * h, Actual: len(mask)}
	}

	r, err := a.packer.Allocate(w, h)
	var grow *GrowthRequiredError
	if errors.As(err, &grow) {
		if err := a.grow(grow.Height); err != nil {
			return Rect{}, err
		}
		r, err = a.packer.Allocate(w, h)
	}
	if err != nil {
		return Rect{}, err
	}

	rgba := make([]byte, w*h*4)
	for i, c := range mask[:w*h] {
		rgba[i*4+0] = 255
		rgba[i*4+1] = 255
		rgba[i*4+2] = 255
		rgba[i*4+3] = c
	}
	stride := a.packer.Width() * 4
	for row := 0; row < h; row++ {
		dst := (r.Y+row)*stride + r.X*4
		copy(a.shadow[dst:dst+w*4], rgba[row*w*4:(row+1)*w*4])
	}
	if err := a.dev.UpdateTexture(a.tex, r.X, r.Y, w, h, rgba); err != nil {
		return Rect{}, err
	}
	a.entries[id] = r
	return r, nil
}

// grow replaces the texture with a taller one holding the same pixels.
func (a *Atlas) grow(height int) error {
	w := a.packer.Width()
	shadow := make([]byte, w*height*4)
	copy(shadow, a.shadow)

	tex, err := a.dev.CreateTexture(core.TextureDesc{
		Width:  w,
		Height: height,
		Format: core.TextureRGBA8,
		Pixels: shadow,
		Filter: a.filter,
	})
	if err != nil {
		return err
	}
	old := a.packer.Height()
	if err := a.packer.Grow(height); err != nil {
		a.dev.DeleteTexture(tex)
		return err
	}
	a.dev.DeleteTexture(a.tex)
	a.tex = tex
	a.shadow = shadow
	a.generation++
	core.Logger().Debug("text: atlas grown", "width", w, "height", height, "previous", old, "generation", a.generation)
	return nil
}

// Lookup returns the rectangle of a glyph already placed.
func (a *Atlas) Lookup(id GlyphID) (Rect, bool) {
	r, ok := a.entries[id]
	return r, ok
}

// Texture returns the current texture. It changes whenever the generation
// does, so callers fetch it on every draw instead of keeping it.
func (a *Atlas) Texture() core.Texture { return a.tex }

func (a *Atlas) Size() (int, int)   { return a.packer.Width(), a.packer.Height() }
func (a *Atlas) Generation() uint64 { return a.generation }
func (a *Atlas) Len() int           { return len(a.entries) }

func (a *Atlas) FilterMode() core.FilterMode { return a.filter }

// SetFilterMode changes sampling of the atlas. The mode carries over to
// textures created by later growth.
func (a *Atlas) SetFilterMode(mode core.FilterMode) {
	a.filter = mode
	if a.tex != nil {
		a.dev.SetTextureFilter(a.tex, mode)
	}
}

// Reset drops every glyph and replaces the texture with a blank one of the
// same size, bumping the generation.
func (a *Atlas) Reset() error {
	w, h := a.Size()
	shadow := make([]byte, w*h*4)
	tex, err := a.dev.CreateTexture(core.TextureDesc{
		Width:  w,
		Height: h,
		Format: core.TextureRGBA8,
		Pixels: shadow,
		Filter: a.filter,
	})
	if err != nil {
		return err
	}
	if a.tex != nil {
		a.dev.DeleteTexture(a.tex)
	}
	a.tex = tex
	a.shadow = shadow
	a.packer.Reset()
	clear(a.entries)
	a.generation++
	return nil
}

// Release deletes the texture. The atlas must not be used afterwards.
func (a *Atlas) Release() {
	if a.tex == nil {
		return
	}
	a.dev.DeleteTexture(a.tex)
	a.tex = nil
}
