// Package headless implements core.Renderer on the CPU. Textures are plain
// RGBA8 buffers and draws are recorded rather than rasterised, which makes
// it the device used by tests and offscreen tools.
package headless

import (
	"errors"
	"fmt"

	"github.com/hubastard/quill/engine/core"
)

// DefaultMaxTextureSize matches the guaranteed minimum of desktop GL 3.3
// drivers in practice.
const DefaultMaxTextureSize = 4096

// Texture is a CPU texture. Pixels are tightly packed RGBA8.
type Texture struct {
	w, h    int
	Pix     []byte
	Filter  core.FilterMode
	deleted bool
}

func (t *Texture) Width() int  { return t.w }
func (t *Texture) Height() int { return t.h }

// Deleted reports whether DeleteTexture was called on t.
func (t *Texture) Deleted() bool { return t.deleted }

// At returns the RGBA8 pixel at (x, y).
func (t *Texture) At(x, y int) [4]byte {
	i := (y*t.w + x) * 4
	return [4]byte{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}

// Region copies out the w×h region at (x, y).
func (t *Texture) Region(x, y, w, h int) []byte {
	out := make([]byte, 0, w*h*4)
	for row := y; row < y+h; row++ {
		i := (row*t.w + x) * 4
		out = append(out, t.Pix[i:i+w*4]...)
	}
	return out
}

type pipeline struct{ desc core.PipelineDesc }

type mesh struct {
	layout   core.VertexLayout
	vertices []float32
	indices  []uint32
}

// DrawRecord is one recorded Draw call.
type DrawRecord struct {
	IndexCount int
	Vertices   []float32
	Samplers   map[string]core.Texture
}

// Device is a CPU-only core.Renderer.
type Device struct {
	// MaxSize bounds texture dimensions; zero means DefaultMaxTextureSize.
	MaxSize int
	// FailCreate makes CreateTexture fail with a PlatformError, for
	// exercising driver failure paths.
	FailCreate bool

	width, height int
	clear         [4]float32

	Textures []*Texture // every texture ever created, in order
	Draws    []DrawRecord
}

var errInjected = errors.New("injected failure")

func New() *Device { return &Device{} }

func (d *Device) Init() error              { return nil }
func (d *Device) Resize(w, h int)          { d.width, d.height = w, h }
func (d *Device) Clear(r, g, b, a float32) { d.clear = [4]float32{r, g, b, a} }
func (d *Device) Shutdown()                {}
func (d *Device) GPUVendor() string        { return "quill" }
func (d *Device) GPURenderer() string      { return "headless" }
func (d *Device) GPUVersion() string       { return "1.0" }
func (d *Device) Viewport() (int, int)     { return d.width, d.height }
func (d *Device) ClearColor() [4]float32   { return d.clear }

func (d *Device) MaxTextureSize() int {
	if d.MaxSize > 0 {
		return d.MaxSize
	}
	return DefaultMaxTextureSize
}

// LiveTextures counts textures not yet deleted.
func (d *Device) LiveTextures() int {
	n := 0
	for _, t := range d.Textures {
		if !t.deleted {
			n++
		}
	}
	return n
}

func (d *Device) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if d.FailCreate {
		return nil, &core.PlatformError{Op: "create texture", Err: errInjected}
	}
	if desc.Width <= 0 || desc.Height <= 0 || desc.Width > d.MaxTextureSize() || desc.Height > d.MaxTextureSize() {
		return nil, &core.PlatformError{
			Op:  "create texture",
			Err: fmt.Errorf("invalid size %dx%d", desc.Width, desc.Height),
		}
	}
	t := &Texture{w: desc.Width, h: desc.Height, Pix: make([]byte, desc.Width*desc.Height*4), Filter: desc.Filter}
	if desc.Pixels != nil {
		if err := core.CheckPixelData(desc.Width, desc.Height, desc.Pixels); err != nil {
			return nil, err
		}
		copy(t.Pix, desc.Pixels)
	}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) UpdateTexture(tex core.Texture, x, y, w, h int, pixels []byte) error {
	t, err := d.texture(tex)
	if err != nil {
		return err
	}
	if err := core.CheckRegion(t, x, y, w, h, pixels); err != nil {
		return err
	}
	for row := 0; row < h; row++ {
		dst := ((y+row)*t.w + x) * 4
		copy(t.Pix[dst:dst+w*4], pixels[row*w*4:(row+1)*w*4])
	}
	return nil
}

func (d *Device) SetTextureFilter(tex core.Texture, mode core.FilterMode) {
	if t, err := d.texture(tex); err == nil {
		t.Filter = mode
	}
}

func (d *Device) DeleteTexture(tex core.Texture) {
	if t, err := d.texture(tex); err == nil {
		t.deleted = true
	}
}

func (d *Device) texture(tex core.Texture) (*Texture, error) {
	t, ok := tex.(*Texture)
	if !ok || t == nil {
		return nil, &core.PlatformError{Op: "texture", Err: fmt.Errorf("foreign texture %T", tex)}
	}
	if t.deleted {
		return nil, &core.PlatformError{Op: "texture", Err: errors.New("use of deleted texture")}
	}
	return t, nil
}

func (d *Device) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if desc.VertexSource == "" || desc.FragmentSource == "" {
		return nil, &core.PlatformError{Op: "create pipeline", Err: errors.New("empty shader source")}
	}
	return &pipeline{desc: desc}, nil
}

func (d *Device) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	return &mesh{
		layout:   desc.Layout,
		vertices: append([]float32(nil), desc.Vertices...),
		indices:  append([]uint32(nil), desc.Indices...),
	}, nil
}

func (d *Device) UpdateMesh(m core.Mesh, vertices []float32, indices []uint32) error {
	mm, ok := m.(*mesh)
	if !ok {
		return &core.PlatformError{Op: "update mesh", Err: fmt.Errorf("foreign mesh %T", m)}
	}
	mm.vertices = append(mm.vertices[:0], vertices...)
	mm.indices = append(mm.indices[:0], indices...)
	return nil
}

func (d *Device) Draw(cmd core.DrawCmd) {
	mm, ok := cmd.Mesh.(*mesh)
	if !ok {
		return
	}
	n := cmd.IndexCount
	if n == 0 {
		n = len(mm.indices)
	}
	samplers := make(map[string]core.Texture, len(cmd.Samplers))
	for k, v := range cmd.Samplers {
		samplers[k] = v
	}
	d.Draws = append(d.Draws, DrawRecord{
		IndexCount: n,
		Vertices:   append([]float32(nil), mm.vertices...),
		Samplers:   samplers,
	})
}

var _ core.Renderer = (*Device)(nil)
