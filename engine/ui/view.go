package ui

import (
	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
)

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

// UIView is a flex-like container laying its children out along one axis.
type UIView struct {
	Common[*UIView]
	gap        float32
	mainAlign  Align
	crossAlign Align
	flow       LayoutDirection

	panel    renderer2d.Texture
	panelCfg renderer2d.NineSlice
	hasPanel bool
}

func View(children ...UIElement) *UIView {
	v := &UIView{gap: 10}
	v.Common = NewCommon(v)
	v.Children(children...)
	return v
}

func (l *UIView) BgColor(color colors.Color) *UIView              { l.base.color = color; return l }
func (l *UIView) FlowDirection(direction LayoutDirection) *UIView { l.flow = direction; return l }
func (l *UIView) Gap(g float32) *UIView                           { l.gap = g; return l }
func (l *UIView) AlignMain(a Align) *UIView                       { l.mainAlign = a; return l }
func (l *UIView) AlignCross(a Align) *UIView                      { l.crossAlign = a; return l }

// Panel draws tex as a nine-slice background stretched to the view, tinted
// by the view's color.
func (l *UIView) Panel(tex renderer2d.Texture, cfg renderer2d.NineSlice) *UIView {
	l.panel, l.panelCfg, l.hasPanel = tex, cfg, true
	if l.base.color[3] == 0 {
		l.base.color = colors.White
	}
	return l
}

// axes returns the main and cross axis indices.
func (l *UIView) axes() (int, int) {
	if l.flow == LayoutVertical {
		return 1, 0
	}
	return 0, 1
}

func (l *UIView) Layout(ctx *Context, constraints Constraints) LayoutResult {
	mainAx, crossAx := l.axes()
	padSum := l.base.padSum()

	var innerMax, innerMin [2]float32
	for ax := 0; ax < 2; ax++ {
		innerMax[ax] = max(0, resolveConstraint(constraints.Max[ax])-padSum[ax])
		innerMin[ax] = max(0, constraints.Min[ax]-padSum[ax])
	}

	children := l.base.children
	sizes := make([][2]float32, len(children))
	var mainSum, maxCross float32
	expandCount := 0
	for i, child := range children {
		sizes[i] = child.Layout(ctx, Constraints{Max: innerMax}).Size
		maxCross = max(maxCross, sizes[i][crossAx])
		// Expanding children only get the leftover space.
		if child.Node().mode(mainAx) == SizeModeExpand {
			sizes[i][mainAx] = 0
			expandCount++
			continue
		}
		mainSum += sizes[i][mainAx]
	}

	var gapTotal float32
	if len(children) > 1 {
		gapTotal = l.gap * float32(len(children)-1)
	}

	var outer, inner [2]float32
	content := [2]float32{}
	content[mainAx] = mainSum + gapTotal
	content[crossAx] = maxCross
	for ax := 0; ax < 2; ax++ {
		outer[ax] = l.base.resolve(ax, content[ax]+padSum[ax], constraints)
		inner[ax] = max(outer[ax]-padSum[ax], innerMin[ax])
	}
	l.base.SetSize(outer[0], outer[1])

	if expandCount > 0 {
		share := max(0, inner[mainAx]-mainSum-gapTotal) / float32(expandCount)
		for i, child := range children {
			if child.Node().mode(mainAx) == SizeModeExpand {
				sizes[i][mainAx] += share
				mainSum += share
			}
		}
	}

	var cursor float32
	switch remaining := max(0, inner[mainAx]-mainSum-gapTotal); l.mainAlign {
	case AlignCenter:
		cursor = remaining / 2
	case AlignEnd:
		cursor = remaining
	}

	ox, oy := l.base.innerPosition()
	origin := [2]float32{ox, oy}
	for i := range children {
		child := children[i].Node()
		size := sizes[i]
		if l.crossAlign == AlignStretch || child.mode(crossAx) == SizeModeExpand {
			size[crossAx] = inner[crossAx]
		}
		size[crossAx] = clamp(size[crossAx], 0, inner[crossAx])

		var pos [2]float32
		pos[mainAx] = origin[mainAx] + cursor
		pos[crossAx] = origin[crossAx]
		switch l.crossAlign {
		case AlignCenter:
			pos[crossAx] += (inner[crossAx] - size[crossAx]) / 2
		case AlignEnd:
			pos[crossAx] += inner[crossAx] - size[crossAx]
		}
		child.SetPos(pos[0], pos[1])
		child.SetSize(size[0], size[1])
		cursor += size[mainAx] + l.gap
	}

	return LayoutResult{Size: l.base.size}
}

func (l *UIView) Draw(ctx *Context) {
	if l.base.parent == nil {
		l.base.SetPos(ctx.Viewport[0], ctx.Viewport[1])
		l.Layout(ctx, Constraints{Max: [2]float32{ctx.Viewport[2], ctx.Viewport[3]}})
	}

	if l.hasPanel {
		params := renderer2d.Params(l.base.position[0], l.base.position[1]).WithColor(l.base.color)
		l.panel.DrawNineSlice(ctx.Renderer, l.panelCfg, l.base.size[0], l.base.size[1], params)
	} else {
		l.base.fillBackground(ctx)
	}

	for _, c := range l.base.children {
		c.Draw(ctx)
	}
}
