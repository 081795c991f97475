package ui

import (
	"math"

	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
	"github.com/hubastard/quill/engine/text"
)

type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

// Constraints bound an element's size. A zero Max is unbounded.
type Constraints struct {
	Min [2]float32
	Max [2]float32
}

type LayoutResult struct {
	Size [2]float32
}

// Canvas is what elements draw into. *renderer2d.Renderer2D satisfies it.
type Canvas interface {
	renderer2d.QuadBatch
	// DrawQuad draws a solid quad centred on (x, y).
	DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32)
}

type Context struct {
	Viewport    [4]float32 // x, y, w, h
	DefaultFont *text.Font
	Renderer    Canvas
}

type UIElement interface {
	Node() *Base
	Layout(ctx *Context, constraints Constraints) LayoutResult
	Draw(ctx *Context)
	// Release frees what the element and its children hold on the GPU.
	Release()
}

type sizing struct {
	mode  SizeMode
	fixed float32
}

// Base holds the state shared by every element. Axis 0 is x, axis 1 is y.
type Base struct {
	parent   UIElement
	children []UIElement
	position [2]float32
	size     [2]float32
	color    colors.Color
	sizing   [2]sizing
	padding  [4]float32 // left, top, right, bottom
}

func (b *Base) Pos() (x, y float32)  { return b.position[0], b.position[1] }
func (b *Base) Size() (w, h float32) { return b.size[0], b.size[1] }
func (b *Base) SetPos(x, y float32)  { b.position = [2]float32{x, y} }
func (b *Base) SetSize(w, h float32) { b.size = [2]float32{w, h} }
func (b *Base) Padding() [4]float32  { return b.padding }
func (b *Base) SetPadding(l, t, r, btm float32) {
	b.padding = [4]float32{l, t, r, btm}
}

func (b *Base) mode(axis int) SizeMode { return b.sizing[axis].mode }

// padSum returns the total padding along each axis.
func (b *Base) padSum() [2]float32 {
	return [2]float32{b.padding[0] + b.padding[2], b.padding[1] + b.padding[3]}
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

// resolveConstraint treats a zero maximum as unbounded.
func resolveConstraint(limit float32) float32 {
	if limit == 0 {
		return float32(math.MaxFloat32)
	}
	return limit
}

// resolve picks the outer size along axis for the given content size
// (padding included).
func (b *Base) resolve(axis int, content float32, c Constraints) float32 {
	lo, hi := c.Min[axis], resolveConstraint(c.Max[axis])
	s := b.sizing[axis]
	switch {
	case s.mode == SizeModeFixed && s.fixed > 0:
		return clamp(s.fixed, lo, hi)
	case s.mode == SizeModeExpand:
		return clamp(hi, lo, hi)
	}
	return clamp(content, lo, hi)
}

// fillBackground draws b's solid background, if any.
func (b *Base) fillBackground(ctx *Context) {
	if b.color[3] <= 0 {
		return
	}
	w, h := b.size[0], b.size[1]
	ctx.Renderer.DrawQuad(b.position[0]+w/2, b.position[1]+h/2, w, h, b.color, 0)
}

func (b *Base) innerPosition() (float32, float32) {
	return b.position[0] + b.padding[0], b.position[1] + b.padding[1]
}

func (b *Base) innerSize() (float32, float32) {
	p := b.padSum()
	return max(0, b.size[0]-p[0]), max(0, b.size[1]-p[1])
}

// Common gives an element the chainable setters shared by all elements.
// T is the owning element type so chains keep their concrete type.
type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] {
	return Common[T]{owner: owner}
}

func (c *Common[T]) Node() *Base { return &c.base }

// Release releases every child.
func (c *Common[T]) Release() {
	for _, k := range c.base.children {
		k.Release()
	}
}
func (c *Common[T]) Position(x, y float32) T  { c.base.SetPos(x, y); return c.owner }
func (c *Common[T]) Color(col colors.Color) T { c.base.color = col; return c.owner }

func (c *Common[T]) setAxis(axis int, mode SizeMode, v float32) T {
	c.base.sizing[axis] = sizing{mode: mode, fixed: v}
	return c.owner
}

func (c *Common[T]) WidthFit() T                  { return c.setAxis(0, SizeModeFit, 0) }
func (c *Common[T]) WidthFixed(width float32) T   { return c.setAxis(0, SizeModeFixed, width) }
func (c *Common[T]) WidthExpand() T               { return c.setAxis(0, SizeModeExpand, 0) }
func (c *Common[T]) HeightFit() T                 { return c.setAxis(1, SizeModeFit, 0) }
func (c *Common[T]) HeightFixed(height float32) T { return c.setAxis(1, SizeModeFixed, height) }
func (c *Common[T]) HeightExpand() T              { return c.setAxis(1, SizeModeExpand, 0) }

func (c *Common[T]) Padding(all float32) T {
	c.base.SetPadding(all, all, all, all)
	return c.owner
}

func (c *Common[T]) Padding4(left, top, right, bottom float32) T {
	c.base.SetPadding(left, top, right, bottom)
	return c.owner
}

func (c *Common[T]) Children(kids ...UIElement) T {
	c.base.children = append(c.base.children, kids...)
	for _, k := range kids {
		k.Node().parent = any(c.owner).(UIElement)
	}
	return c.owner
}
