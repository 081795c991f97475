package ui

import (
	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/text"
)

// UIButton is a padded label on a solid background.
type UIButton struct {
	Common[*UIButton]
	label *UILabel
}

func Button(str string) *UIButton {
	b := &UIButton{label: Label(str)}
	b.Common = NewCommon(b)
	b.Children(b.label)
	b.base.color = colors.White
	b.base.SetPadding(10, 10, 10, 10)
	return b
}

func (b *UIButton) BgColor(color colors.Color) *UIButton   { b.base.color = color; return b }
func (b *UIButton) TextColor(color colors.Color) *UIButton { b.label.base.color = color; return b }
func (b *UIButton) Font(font *text.Font) *UIButton         { b.label.font = font; return b }
func (b *UIButton) Label() *UILabel                        { return b.label }

func (b *UIButton) Layout(ctx *Context, constraints Constraints) LayoutResult {
	ps := b.base.padSum()
	inner := Constraints{Max: [2]float32{
		max(0, resolveConstraint(constraints.Max[0])-ps[0]),
		max(0, resolveConstraint(constraints.Max[1])-ps[1]),
	}}
	content := b.label.Layout(ctx, inner).Size

	width := b.base.resolve(0, content[0]+ps[0], constraints)
	height := b.base.resolve(1, content[1]+ps[1], constraints)
	b.base.SetSize(width, height)

	innerW, innerH := b.base.innerSize()
	child := b.label.Node()
	cw, ch := clamp(content[0], 0, innerW), clamp(content[1], 0, innerH)
	if child.mode(0) == SizeModeExpand {
		cw = innerW
	}
	if child.mode(1) == SizeModeExpand {
		ch = innerH
	}
	child.SetSize(cw, ch)
	return LayoutResult{Size: [2]float32{width, height}}
}

func (b *UIButton) Draw(ctx *Context) {
	b.base.fillBackground(ctx)
	x, y := b.base.innerPosition()
	b.label.Node().SetPos(x, y)
	b.label.Draw(ctx)
}
