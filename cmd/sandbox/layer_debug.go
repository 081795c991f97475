package main

import (
	"fmt"

	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/core"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
	"github.com/hubastard/quill/engine/profiler"
	"github.com/hubastard/quill/engine/scene"
	"github.com/hubastard/quill/engine/text"
	"github.com/hubastard/quill/engine/ui"
)

// line is a debug label refreshed every frame from value.
type line struct {
	label *ui.UILabel
	value func() string
}

// LayerDebug overlays frame, batch, memory and glyph atlas statistics.
type LayerDebug struct {
	cam           *scene.OrthoCamera2D
	r2d           *renderer2d.Renderer2D
	font          *text.Font
	stats         *renderer2d.Statistics
	editor        *Layer2D
	frameDuration float32
	tick          int

	root  *ui.UIView
	lines []line
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewScreenCamera2D(w, h)

	section := func(title string) ui.UIElement {
		return ui.Label(title).Padding4(0, 12, 0, 0).Color(colors.Yellow)
	}
	value := func(f func() string) ui.UIElement {
		lb := ui.Label("").Padding4(16, 0, 0, 0)
		l.lines = append(l.lines, line{label: lb, value: f})
		return lb
	}
	atlas := l.font.Cache().Atlas()

	panel := ui.View(
		section("Frame"),
		value(func() string { return fmt.Sprintf("Tick: %d", l.tick) }),
		value(func() string {
			if l.frameDuration == 0 {
				return "-"
			}
			return fmt.Sprintf("%2.3f ms (%.2f FPS)", l.frameDuration, 1000.0/l.frameDuration)
		}),
		section("2D Renderer"),
		value(func() string { return fmt.Sprintf("Draw Calls: %d", l.stats.DrawCalls) }),
		value(func() string { return fmt.Sprintf("Quads: %d", l.stats.QuadCount) }),
		value(func() string { return fmt.Sprintf("Textures: %d", l.stats.TextureCount) }),
		section("Glyph Atlas"),
		value(func() string {
			aw, ah := atlas.Size()
			return fmt.Sprintf("Size: %dx%d  Glyphs: %d", aw, ah, atlas.Len())
		}),
		value(func() string { return fmt.Sprintf("Generation: %d", l.font.Generation()) }),
		value(func() string { return fmt.Sprintf("Editor text: %s", l.editor.line.State()) }),
		section("Memory"),
		value(func() string { return fmt.Sprintf("Usage: %.3f MB", float32(profiler.MemoryUsage())/(1<<20)) }),
		value(func() string { return fmt.Sprintf("Goroutines: %d", profiler.NumGoroutine()) }),
		section("GPU"),
		value(func() string { return e.Renderer.GPURenderer() }),
		value(func() string { return e.Renderer.GPUVersion() }),
	).
		FlowDirection(ui.LayoutVertical).
		Gap(2).
		Padding(16).
		BgColor(colors.Black.WithAlpha(0.5))

	l.root = ui.View(panel).
		Padding(16).
		FlowDirection(ui.LayoutVertical).
		AlignMain(ui.AlignEnd).
		AlignCross(ui.AlignEnd).
		WidthExpand().
		HeightExpand()
}

func (l *LayerDebug) OnDetach(e *core.Engine) {
	l.root.Release()
	l.font.Release()
}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	scopeRender := profiler.Start("LayerDebug.OnRender")
	defer scopeRender()

	for _, ln := range l.lines {
		ln.label.SetText(ln.value())
	}

	l.r2d.BeginScene(l.cam.VP())
	l.root.Draw(&ui.Context{
		Viewport:    [4]float32{0, 0, l.cam.Width(), l.cam.Height()},
		DefaultFont: l.font,
		Renderer:    l.r2d,
	})
	l.r2d.EndScene()
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyP && v.Mods&core.ModCtrl != 0 {
			if path, err := profiler.OpenProfilerGraph(); err == nil {
				core.Logger().Info("speedscope dump", "path", path)
			} else {
				core.Logger().Warn("profiler dump failed", "err", err)
			}
			return true
		}
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	}
	return false
}
