package renderer2d

import (
	"math"

	"github.com/hubastard/quill/engine/colors"
)

// Rectangle is an axis-aligned rectangle in float space, Y down.
type Rectangle struct {
	X, Y, W, H float32
}

func (r Rectangle) Right() float32  { return r.X + r.W }
func (r Rectangle) Bottom() float32 { return r.Y + r.H }

// Union returns the smallest rectangle containing both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rectangle{X: x, Y: y, W: max(r.Right(), o.Right()) - x, H: max(r.Bottom(), o.Bottom()) - y}
}

// Contains reports whether o lies fully inside r.
func (r Rectangle) Contains(o Rectangle) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// UVRect converts a pixel rectangle into normalised UVs for a texture of
// the given size.
func UVRect(r Rectangle, texW, texH int) Rectangle {
	fw, fh := float32(texW), float32(texH)
	return Rectangle{X: r.X / fw, Y: r.Y / fh, W: r.W / fw, H: r.H / fh}
}

// DrawParams positions a quad (or a group of quads) in the scene.
// Corners are transformed as: Position + Rotate((p - Origin) * Scale).
type DrawParams struct {
	Position [2]float32
	Scale    [2]float32 // zero value means {1, 1}
	Origin   [2]float32
	Rotation float32 // radians
	Color    colors.Color
}

// Params returns draw params at (x, y) with unit scale and a white tint.
func Params(x, y float32) DrawParams {
	return DrawParams{Position: [2]float32{x, y}, Scale: [2]float32{1, 1}, Color: colors.White}
}

func (p DrawParams) WithColor(c colors.Color) DrawParams { p.Color = c; return p }
func (p DrawParams) WithScale(sx, sy float32) DrawParams { p.Scale = [2]float32{sx, sy}; return p }
func (p DrawParams) WithOrigin(ox, oy float32) DrawParams {
	p.Origin = [2]float32{ox, oy}
	return p
}
func (p DrawParams) WithRotation(rad float32) DrawParams { p.Rotation = rad; return p }

// transform is the affine form of DrawParams, computed once per quad group.
type transform struct {
	a, b, c, d float32 // rotation * scale
	tx, ty     float32
	ox, oy     float32
}

func (p DrawParams) transform() transform {
	sx, sy := p.Scale[0], p.Scale[1]
	if sx == 0 && sy == 0 {
		sx, sy = 1, 1
	}
	cos, sin := float32(1), float32(0)
	if p.Rotation != 0 {
		cos = float32(math.Cos(float64(p.Rotation)))
		sin = float32(math.Sin(float64(p.Rotation)))
	}
	return transform{
		a: cos * sx, b: -sin * sy,
		c: sin * sx, d: cos * sy,
		tx: p.Position[0], ty: p.Position[1],
		ox: p.Origin[0], oy: p.Origin[1],
	}
}

func (t transform) apply(x, y float32) (float32, float32) {
	x -= t.ox
	y -= t.oy
	return t.a*x + t.b*y + t.tx, t.c*x + t.d*y + t.ty
}
