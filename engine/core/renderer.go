package core

import "fmt"

// Renderer is the GPU device the rest of the engine talks to. All calls
// happen on the thread owning the graphics context.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string

	// MaxTextureSize is the largest width/height a texture may have.
	MaxTextureSize() int

	// CreateTexture allocates a texture. A nil desc.Pixels leaves the
	// contents zeroed; a short buffer is rejected with ErrNotEnoughData.
	CreateTexture(desc TextureDesc) (Texture, error)
	// UpdateTexture writes tightly packed RGBA8 pixels into the w×h
	// region at (x, y).
	UpdateTexture(tex Texture, x, y, w, h int, pixels []byte) error
	SetTextureFilter(tex Texture, mode FilterMode)
	DeleteTexture(tex Texture)

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error
	Draw(cmd DrawCmd)
}

// Texture is a device texture handle. Handles compare equal only when they
// refer to the same device object.
type Texture interface {
	Width() int
	Height() int
}

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

// FilterMode selects how a texture is sampled when scaled.
type FilterMode int

const (
	// FilterNearest preserves hard edges; the right choice for pixel art.
	FilterNearest FilterMode = iota
	// FilterLinear smooths when scaling up or down.
	FilterLinear
)

func (m FilterMode) String() string {
	if m == FilterLinear {
		return "linear"
	}
	return "nearest"
}

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // tightly packed RGBA8, may be nil
	Filter        FilterMode
}

type Pipeline interface{}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type Mesh interface{}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// DrawCmd draws the first IndexCount indices of Mesh (all of them if zero).
type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	IndexCount int
	Uniforms   map[string]any
	Samplers   map[string]Texture
}

// CheckPixelData reports ErrNotEnoughData when pixels cannot fill a w×h
// RGBA8 region.
func CheckPixelData(w, h int, pixels []byte) error {
	if need := w * h * 4; len(pixels) < need {
		return &NotEnoughDataError{Expected: need, Actual: len(pixels)}
	}
	return nil
}

// CheckRegion validates an update of the w×h region at (x, y) of tex.
func CheckRegion(tex Texture, x, y, w, h int, pixels []byte) error {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > tex.Width() || y+h > tex.Height() {
		return fmt.Errorf("%w: %dx%d at (%d,%d) in %dx%d", ErrOutOfBounds, w, h, x, y, tex.Width(), tex.Height())
	}
	return CheckPixelData(w, h, pixels)
}
