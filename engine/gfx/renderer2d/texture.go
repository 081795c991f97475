package renderer2d

import (
	"github.com/hubastard/quill/engine/assets"
	"github.com/hubastard/quill/engine/core"
)

// QuadBatch accepts textured quads. Renderer2D is the engine's
// implementation; the batch decides when to flush.
type QuadBatch interface {
	SetTexture(tex core.Texture)
	PushQuad(x1, y1, x2, y2, u1, v1, u2, v2 float32, params DrawParams)
}

var _ QuadBatch = (*Renderer2D)(nil)

type textureData struct {
	dev    core.Renderer
	handle core.Texture
	filter core.FilterMode
}

// Texture is a GPU texture shared by every copy of the value: copying is
// cheap, and changing the filter mode through one copy affects all of them.
type Texture struct {
	data *textureData
}

// LoadTexture loads an image under <assets>/textures (PNG, JPEG, GIF, BMP,
// TIFF or WebP) into a new texture.
func LoadTexture(dev core.Renderer, relPath string, filter core.FilterMode) (Texture, error) {
	w, h, pix, err := assets.LoadImage(relPath)
	if err != nil {
		return Texture{}, err
	}
	return NewTextureFromRGBA(dev, w, h, pix, filter)
}

// NewTextureFromFileData decodes an encoded image held in memory.
func NewTextureFromFileData(dev core.Renderer, data []byte, filter core.FilterMode) (Texture, error) {
	w, h, pix, err := assets.DecodeImage(data)
	if err != nil {
		return Texture{}, err
	}
	return NewTextureFromRGBA(dev, w, h, pix, filter)
}

// NewTextureFromRGBA creates a texture from tightly packed RGBA8 pixels.
// Too little data fails with core.ErrNotEnoughData; extra data is ignored.
func NewTextureFromRGBA(dev core.Renderer, w, h int, pix []byte, filter core.FilterMode) (Texture, error) {
	if err := core.CheckPixelData(w, h, pix); err != nil {
		return Texture{}, err
	}
	return newTexture(dev, core.TextureDesc{Width: w, Height: h, Format: core.TextureRGBA8, Pixels: pix[:w*h*4], Filter: filter})
}

// NewEmptyTexture creates a zeroed texture, for example a render target or
// an atlas filled later with SetData.
func NewEmptyTexture(dev core.Renderer, w, h int, filter core.FilterMode) (Texture, error) {
	return newTexture(dev, core.TextureDesc{Width: w, Height: h, Format: core.TextureRGBA8, Filter: filter})
}

func newTexture(dev core.Renderer, desc core.TextureDesc) (Texture, error) {
	handle, err := dev.CreateTexture(desc)
	if err != nil {
		return Texture{}, err
	}
	return Texture{data: &textureData{dev: dev, handle: handle, filter: desc.Filter}}, nil
}

// Handle returns the device texture, or nil for the zero Texture.
func (t Texture) Handle() core.Texture {
	if t.data == nil {
		return nil
	}
	return t.data.handle
}

func (t Texture) Width() int  { return t.data.handle.Width() }
func (t Texture) Height() int { return t.data.handle.Height() }

func (t Texture) Size() (int, int) { return t.Width(), t.Height() }

// Equal reports whether both values share the same GPU texture.
func (t Texture) Equal(o Texture) bool { return t.data == o.data }

func (t Texture) FilterMode() core.FilterMode { return t.data.filter }

// SetFilterMode changes sampling for this texture and all its copies.
func (t Texture) SetFilterMode(mode core.FilterMode) {
	t.data.dev.SetTextureFilter(t.data.handle, mode)
	t.data.filter = mode
}

// SetData writes RGBA8 pixels into the w×h region at (x, y). Too little
// data fails with core.ErrNotEnoughData; a region outside the texture
// fails with core.ErrOutOfBounds.
func (t Texture) SetData(x, y, w, h int, pix []byte) error {
	if err := core.CheckRegion(t.data.handle, x, y, w, h, pix); err != nil {
		return err
	}
	return t.data.dev.UpdateTexture(t.data.handle, x, y, w, h, pix[:w*h*4])
}

// ReplaceData overwrites the whole texture.
func (t Texture) ReplaceData(pix []byte) error {
	w, h := t.Size()
	return t.SetData(0, 0, w, h, pix)
}

// Release deletes the GPU texture. Every copy becomes unusable.
func (t Texture) Release() {
	if t.data == nil || t.data.handle == nil {
		return
	}
	t.data.dev.DeleteTexture(t.data.handle)
	t.data.handle = nil
}

// Draw draws the whole texture with its top-left corner at the local origin.
func (t Texture) Draw(b QuadBatch, params DrawParams) {
	b.SetTexture(t.data.handle)
	b.PushQuad(0, 0, float32(t.Width()), float32(t.Height()), 0, 0, 1, 1, params)
}

// DrawRegion draws the pixel region of the texture.
func (t Texture) DrawRegion(b QuadBatch, region Rectangle, params DrawParams) {
	uv := UVRect(region, t.Width(), t.Height())
	b.SetTexture(t.data.handle)
	b.PushQuad(0, 0, region.W, region.H, uv.X, uv.Y, uv.Right(), uv.Bottom(), params)
}

// DrawNineSlice draws cfg.Region stretched to width×height, keeping the
// borders described by cfg undistorted.
func (t Texture) DrawNineSlice(b QuadBatch, cfg NineSlice, width, height float32, params DrawParams) {
	tw, th := float32(t.Width()), float32(t.Height())
	r := cfg.Region

	xs := [4]float32{0, cfg.Left, width - cfg.Right, width}
	ys := [4]float32{0, cfg.Top, height - cfg.Bottom, height}
	us := [4]float32{r.X / tw, (r.X + cfg.Left) / tw, (r.Right() - cfg.Right) / tw, r.Right() / tw}
	vs := [4]float32{r.Y / th, (r.Y + cfg.Top) / th, (r.Bottom() - cfg.Bottom) / th, r.Bottom() / th}

	b.SetTexture(t.data.handle)
	// Row-major: top-left, top, top-right, left, centre, right, bottom row.
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			b.PushQuad(
				xs[col], ys[row], xs[col+1], ys[row+1],
				us[col], vs[row], us[col+1], vs[row+1],
				params,
			)
		}
	}
}
