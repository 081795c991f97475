package renderer2d

import (
	"strconv"

	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/core"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// DefaultVertexShader and DefaultFragmentShader implement the batch layout
// above: one sampler per slot, selected by the texIndex attribute.
const DefaultVertexShader = `#version 330 core
layout(location=0) in vec2 aPos;
layout(location=1) in vec4 aColor;
layout(location=2) in vec2 aUV;
layout(location=3) in float aTex;
uniform mat4 uVP;
out vec4 vColor;
out vec2 vUV;
flat out int vTex;
void main() {
    vColor = aColor;
    vUV = aUV;
    vTex = int(aTex);
    gl_Position = uVP * vec4(aPos, 0.0, 1.0);
}
`

const DefaultFragmentShader = `#version 330 core
in vec4 vColor;
in vec2 vUV;
flat in int vTex;
uniform sampler2D uTex[16];
out vec4 FragColor;
void main() {
    vec4 texel;
    switch (vTex) {
    case 0: texel = texture(uTex[0], vUV); break;
    case 1: texel = texture(uTex[1], vUV); break;
    case 2: texel = texture(uTex[2], vUV); break;
    case 3: texel = texture(uTex[3], vUV); break;
    case 4: texel = texture(uTex[4], vUV); break;
    case 5: texel = texture(uTex[5], vUV); break;
    case 6: texel = texture(uTex[6], vUV); break;
    case 7: texel = texture(uTex[7], vUV); break;
    case 8: texel = texture(uTex[8], vUV); break;
    case 9: texel = texture(uTex[9], vUV); break;
    case 10: texel = texture(uTex[10], vUV); break;
    case 11: texel = texture(uTex[11], vUV); break;
    case 12: texel = texture(uTex[12], vUV); break;
    case 13: texel = texture(uTex[13], vUV); break;
    case 14: texel = texture(uTex[14], vUV); break;
    default: texel = texture(uTex[15], vUV); break;
    }
    FragColor = texel * vColor;
}
`

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// Renderer2D batches textured quads and submits them in as few draw calls
// as the texture slots allow. A batch is flushed on EndScene, when it is
// full, or when a 17th texture is needed.
type Renderer2D struct {
	r      core.Renderer
	pipe   core.Pipeline
	white  core.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]core.Texture
	texCnt int

	// current is the texture bound with SetTexture for PushQuad.
	current core.Texture

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	mesh     core.Mesh
	samplers map[string]core.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	vp            [16]float32
	stats         Statistics
	extraUniforms map[string]any
}

// New creates renderer and compiles the shader pipeline. Empty shader
// sources select the defaults.
func New(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	if vertSrc == "" {
		vertSrc = DefaultVertexShader
	}
	if fragSrc == "" {
		fragSrc = DefaultFragmentShader
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format: core.TextureRGBA8,
		Pixels: []byte{255, 255, 255, 255},
		Filter: core.FilterNearest,
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r: r, pipe: pipe, white: white, maxQuads: maxQuads,
		verts: make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:  make([]uint32, 0, maxQuads*indsPerQuad),
	}

	// Create a reusable mesh large enough for the biggest batch.
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]core.Texture, maxTexSlots)
	rd.uniforms = make(map[string]any, 4)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.resetBatch()

	return rd, nil
}

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd.vp = vp
	rd.stats = Statistics{}
	rd.current = nil
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Flush submits the pending batch immediately.
func (rd *Renderer2D) Flush() { rd.flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// SetUniform queues an additional uniform to be sent on every draw call.
// The uniform persists until overwritten; call with nil to remove.
func (rd *Renderer2D) SetUniform(name string, value any) {
	if rd.extraUniforms == nil {
		rd.extraUniforms = make(map[string]any)
	}
	if value == nil {
		delete(rd.extraUniforms, name)
		return
	}
	rd.extraUniforms[name] = value
}

// SetTexture binds the texture used by subsequent PushQuad calls. A nil
// texture selects the built-in white texture.
func (rd *Renderer2D) SetTexture(tex core.Texture) { rd.current = tex }

// PushQuad appends one quad given its corners in local space (x1,y1 top
// left, x2,y2 bottom right) and its UV corners, transformed by params.
func (rd *Renderer2D) PushQuad(x1, y1, x2, y2, u1, v1, u2, v2 float32, params DrawParams) {
	tex := rd.current
	if tex == nil {
		tex = rd.white
	}
	rd.ensureQuadCapacity()
	slot := rd.texSlot(tex)
	rd.pushCorners(params.transform(), tintOf(params), slot, x1, y1, x2, y2, u1, v1, u2, v2)
}

// Draw solid color quad centered at (x, y) (uses white texture in slot 0)
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.ensureQuadCapacity()
	rd.drawCentered(x, y, w, h, color, rotationRad, rd.texSlot(rd.white), 0, 0, 1, 1)
}

// Draw textured quad centered at (x, y) (tint color)
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32) {
	rd.DrawTexturedQuadUV(x, y, w, h, tex, tint, rotationRad, 0, 0, 1, 1)
}

// Draw textured sub-rect (UV rect: u0,v0 -> u1,v1)
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	rd.ensureQuadCapacity()
	slot := rd.texSlot(tex)
	rd.drawCentered(x, y, w, h, tint, rotationRad, slot, u0, v0, u1, v1)
}

// --- internals ---

func tintOf(p DrawParams) colors.Color {
	if p.Color == (colors.Color{}) {
		return colors.White
	}
	return p.Color
}

func (rd *Renderer2D) texSlot(t core.Texture) float32 {
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	if rd.texCnt >= maxTexSlots {
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.texCnt)
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) drawCentered(x, y, w, h float32, color colors.Color, rotationRad float32, texIndex float32, u0, v0, u1, v1 float32) {
	t := DrawParams{Position: [2]float32{x, y}, Scale: [2]float32{1, 1}, Rotation: rotationRad}.transform()
	halfW, halfH := w*0.5, h*0.5
	rd.pushCorners(t, color, texIndex, -halfW, -halfH, halfW, halfH, u0, v0, u1, v1)
}

func (rd *Renderer2D) pushCorners(t transform, color colors.Color, texIndex float32, x1, y1, x2, y2, u1, v1, u2, v2 float32) {
	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down.
	corners := [4][4]float32{
		{x1, y1, u1, v1},
		{x2, y1, u2, v1},
		{x1, y2, u1, v2},
		{x2, y2, u2, v2},
	}

	startVertex := uint32(len(rd.verts) / vStride)
	for _, p := range corners {
		rx, ry := t.apply(p[0], p[1])
		rd.verts = append(rd.verts,
			rx, ry,
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			texIndex,
		)
	}
	rd.inds = append(rd.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}

	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		core.Logger().Warn("renderer2d: mesh upload failed, batch dropped", "quads", rd.quadCount, "err", err)
		rd.resetBatch()
		return
	}

	clear(rd.samplers)
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}

	clear(rd.uniforms)
	rd.uniforms["uVP"] = rd.vp
	for k, v := range rd.extraUniforms {
		rd.uniforms[k] = v
	}

	rd.r.Draw(core.DrawCmd{
		Pipe:       rd.pipe,
		Mesh:       rd.mesh,
		IndexCount: len(rd.inds),
		Uniforms:   rd.uniforms,
		Samplers:   rd.samplers,
	})
	rd.stats.DrawCalls++

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureQuadCapacity() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}
