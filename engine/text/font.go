package text

import "github.com/hubastard/quill/engine/core"

// ShapingMode selects the shaper a vector font is built with.
type ShapingMode int

const (
	// ShapingSimple maps runes one to one onto glyphs and applies kerning.
	ShapingSimple ShapingMode = iota
	// ShapingHarfBuzz runs full OpenType shaping (ligatures, marks, GPOS
	// kerning) through go-text/typesetting.
	ShapingHarfBuzz
)

// FontOptions configure a font built from vector data.
type FontOptions struct {
	Size    float32 // pixels per em
	Atlas   AtlasConfig
	Shaping ShapingMode
}

type fontShared struct {
	cache *FontCache
	refs  int
}

// Font is a handle to a FontCache shared by every clone. Glyphs rasterised
// through one clone, and atlas growth caused by it, are visible to all.
// The atlas texture is freed when the last handle is released; a released
// handle must not be cloned.
type Font struct {
	shared   *fontShared
	released bool
}

// NewFont wraps cache in a handle with a single reference.
func NewFont(cache *FontCache) *Font {
	return &Font{shared: &fontShared{cache: cache, refs: 1}}
}

// Clone returns a new handle sharing f's cache. It panics if f has been
// released or its cache already freed.
func (f *Font) Clone() *Font {
	if f.released || f.shared.refs <= 0 {
		panic("text: Clone of a released Font")
	}
	f.shared.refs++
	return &Font{shared: f.shared}
}

// Release drops this handle's reference. Releasing a handle twice has no
// further effect.
func (f *Font) Release() {
	if f.released {
		return
	}
	f.released = true
	f.shared.refs--
	if f.shared.refs == 0 {
		f.shared.cache.Release()
	}
}

// Refs reports how many live handles share the cache.
func (f *Font) Refs() int { return f.shared.refs }

// Released reports whether Release has been called on this handle.
func (f *Font) Released() bool { return f.released }

// Same reports whether f and o share one cache.
func (f *Font) Same(o *Font) bool { return o != nil && f.shared == o.shared }

func (f *Font) Cache() *FontCache { return f.shared.cache }

func (f *Font) Generation() uint64 { return f.shared.cache.Generation() }

// Texture returns the current atlas texture. Fetch it on every draw.
func (f *Font) Texture() core.Texture { return f.shared.cache.Texture() }

func (f *Font) Metrics() Metrics    { return f.shared.cache.Metrics() }
func (f *Font) LineHeight() float32 { return f.shared.cache.LineHeight() }

func (f *Font) FilterMode() core.FilterMode { return f.shared.cache.Atlas().FilterMode() }

// SetFilterMode changes how the atlas is sampled for every clone.
func (f *Font) SetFilterMode(mode core.FilterMode) { f.shared.cache.Atlas().SetFilterMode(mode) }

// Measure returns the advance box of s. It rasterises any glyphs not yet in
// the atlas.
func (f *Font) Measure(s string) (w, h float32, err error) {
	g, err := f.shared.cache.Render(s)
	if err != nil {
		return 0, 0, err
	}
	return g.Size[0], g.Size[1], nil
}
