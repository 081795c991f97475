package main

import (
	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/core"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
	"github.com/hubastard/quill/engine/profiler"
	"github.com/hubastard/quill/engine/scene"
	"github.com/hubastard/quill/engine/text"
)

const panelPadding = 16

// Layer2D is a one-field text editor: typed characters are appended to a
// text.Text drawn over a nine-slice panel.
type Layer2D struct {
	cam   *scene.OrthoCamera2D
	ctrl  *scene.OrthoController2D
	r2d   *renderer2d.Renderer2D
	font  *text.Font
	line  *text.Text
	hint  *text.Text
	panel renderer2d.Texture
	slice renderer2d.NineSlice
}

func (l *Layer2D) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewScreenCamera2D(w, h)
	l.ctrl = scene.NewOrthoController2D(l.cam)

	l.line = text.NewText("Type here", l.font)
	l.hint = text.NewText("Enter: new line   Backspace: delete   Ctrl+R: reset atlas", l.font)

	var err error
	l.panel, err = renderer2d.LoadTexture(e.Renderer, "panel.png", core.FilterNearest)
	if err != nil {
		core.Logger().Debug("panel.png not found, generating panel", "err", err)
		l.panel, err = generatePanel(e.Renderer, 12, 3)
		if err != nil {
			panic(err)
		}
	}
	l.slice = renderer2d.NineSliceWithBorder(renderer2d.Rectangle{W: float32(l.panel.Width()), H: float32(l.panel.Height())}, 4)
}

// generatePanel builds a size×size white square with a border-pixel frame
// at half alpha.
func generatePanel(dev core.Renderer, size, border int) (renderer2d.Texture, error) {
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			a := byte(160)
			if x < border || y < border || x >= size-border || y >= size-border {
				a = 255
			}
			i := (y*size + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = 255, 255, 255, a
		}
	}
	return renderer2d.NewTextureFromRGBA(dev, size, size, pix, core.FilterNearest)
}

func (l *Layer2D) OnDetach(e *core.Engine) {
	l.panel.Release()
	l.line.Release()
	l.hint.Release()
	l.font.Release()
}

func (l *Layer2D) OnUpdate(e *core.Engine, dt float64) {
	for _, r := range e.Input.Typed() {
		l.line.Push(r)
	}
	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}
}

func (l *Layer2D) OnRender(e *core.Engine, alpha float64) {
	renderEnd := profiler.Start("Layer2D.OnRender")
	defer renderEnd()

	l.r2d.BeginScene(l.cam.VP())
	defer l.r2d.EndScene()

	const x, y = 40, 80
	g, err := l.line.Geometry()
	if err != nil {
		core.Logger().Error("text layout failed", "err", err)
		return
	}
	w := max(g.Size[0], 200) + 2*panelPadding
	h := max(g.Size[1], l.font.LineHeight()) + 2*panelPadding
	l.panel.DrawNineSlice(l.r2d, l.slice, w, h, renderer2d.Params(x, y).WithColor(colors.Black.WithAlpha(0.6)))

	if err := l.line.Draw(l.r2d, renderer2d.Params(x+panelPadding, y+panelPadding)); err != nil {
		core.Logger().Error("text draw failed", "err", err)
	}
	// Atlas preview below the panel; it grows as new glyphs are typed.
	aw, ah := l.font.Cache().Atlas().Size()
	py := y + h + 24
	l.r2d.DrawQuad(x+float32(aw)/2, py+float32(ah)/2, float32(aw), float32(ah), colors.Black.WithAlpha(0.4), 0)
	l.r2d.DrawTexturedQuad(x+float32(aw)/2, py+float32(ah)/2, float32(aw), float32(ah), l.font.Texture(), colors.White, 0)

	if err := l.hint.Draw(l.r2d, renderer2d.Params(x, y-l.font.LineHeight()-8).WithColor(colors.Yellow)); err != nil {
		core.Logger().Error("text draw failed", "err", err)
	}
}

func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if !v.Down {
			return false
		}
		switch {
		case v.Key == core.KeyBackspace:
			l.line.Pop()
			return true
		case v.Key == core.KeyEnter:
			l.line.Push('\n')
			return true
		case v.Key == core.KeyR && v.Mods&core.ModCtrl != 0:
			if err := l.font.Cache().Reset(); err != nil {
				core.Logger().Error("atlas reset failed", "err", err)
			}
			return true
		}
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	case core.EventScroll:
		return l.ctrl.HandleEvent(e, ev)
	}
	return false
}
