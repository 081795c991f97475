package scene

import "math"

// OrthoCamera2D is an orthographic camera with position, rotation and zoom.
// The position is the world point shown at the centre of the viewport.
type OrthoCamera2D struct {
	width, height float32
	yDown         bool

	X, Y        float32
	RotationRad float32
	Zoom        float32 // 1 = one world unit per pixel

	vp    [16]float32
	dirty bool
}

// NewOrtho2D returns a y-up camera centred on the origin.
func NewOrtho2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Zoom: 1}
	c.SetViewportPixels(width, height)
	return c
}

// NewScreenCamera2D returns a y-down camera whose origin is the top-left
// corner of the viewport, matching the layout space of text and UI.
func NewScreenCamera2D(width, height int) *OrthoCamera2D {
	c := &OrthoCamera2D{Zoom: 1, yDown: true}
	c.SetViewportPixels(width, height)
	return c
}

func (c *OrthoCamera2D) SetViewportPixels(w, h int) {
	c.width, c.height = float32(w), float32(h)
	if c.yDown {
		c.X, c.Y = c.width/2, c.height/2
	}
	c.dirty = true
}

func (c *OrthoCamera2D) Width() float32  { return c.width }
func (c *OrthoCamera2D) Height() float32 { return c.height }

func (c *OrthoCamera2D) SetPosition(x, y float32) { c.X, c.Y = x, y; c.dirty = true }
func (c *OrthoCamera2D) Move(dx, dy float32)      { c.X += dx; c.Y += dy; c.dirty = true }
func (c *OrthoCamera2D) Rotate(dRad float32)      { c.RotationRad += dRad; c.dirty = true }

func (c *OrthoCamera2D) SetZoom(z float32) {
	c.Zoom = max(z, 0.05)
	c.dirty = true
}

// VP returns the column-major view-projection matrix.
func (c *OrthoCamera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *OrthoCamera2D) Recalculate() {
	hw := c.width / (2 * c.Zoom)
	hh := c.height / (2 * c.Zoom)
	bottom, top := -hh, hh
	if c.yDown {
		bottom, top = hh, -hh
	}
	proj := ortho(-hw, hw, bottom, top, -1, 1)
	view := mul(rotateZ(-c.RotationRad), translate(-c.X, -c.Y, 0))
	c.vp = mul(proj, view)
	c.dirty = false
}

// ScreenToWorld maps a framebuffer pixel (origin top-left) to world space.
func (c *OrthoCamera2D) ScreenToWorld(px, py float32) (float32, float32) {
	dx := (px - c.width/2) / c.Zoom
	dy := (py - c.height/2) / c.Zoom
	if !c.yDown {
		dy = -dy
	}
	s, co := sincos(c.RotationRad)
	return c.X + dx*co - dy*s, c.Y + dx*s + dy*co
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func rotateZ(a float32) [16]float32 {
	s, c := sincos(a)
	return [16]float32{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func sincos(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// mul returns a·b.
func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[row+4*k] * b[k+4*col]
			}
			out[row+4*col] = sum
		}
	}
	return out
}

// transform applies m to the point (x, y, 0, 1).
func transform(m [16]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
