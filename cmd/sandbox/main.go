package main

import (
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/hubastard/quill/engine/colors"
	"github.com/hubastard/quill/engine/core"
	glbackend "github.com/hubastard/quill/engine/gfx/gl"
	"github.com/hubastard/quill/engine/gfx/renderer2d"
	"github.com/hubastard/quill/engine/platform"
	"github.com/hubastard/quill/engine/text"
)

type App struct {
	lastFrame  time.Time
	tick       int
	r2d        *renderer2d.Renderer2D
	stats      renderer2d.Statistics
	font       *text.Font
	layer      *Layer2D
	debugLayer *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	var err error
	a.r2d, err = renderer2d.New(e.Renderer, "", "", 10000)
	if err != nil {
		panic(err)
	}

	a.font, err = loadFont(e.Renderer, "RobotoMono.ttf", 24)
	if err != nil {
		panic(err)
	}

	a.layer = &Layer2D{r2d: a.r2d, font: a.font.Clone()}
	e.Layers.Push(a.layer)

	a.debugLayer = &LayerDebug{r2d: a.r2d, font: a.font.Clone(), stats: &a.stats, editor: a.layer}
	e.Layers.Push(a.debugLayer)
}

// loadFont loads name from the asset fonts directory, falling back to the
// embedded Go Regular face.
func loadFont(dev core.Renderer, name string, size float32) (*text.Font, error) {
	f, err := text.LoadVectorFont(dev, name, size)
	if err == nil {
		return f, nil
	}
	core.Logger().Warn("font not found, using Go Regular", "font", name, "err", err)
	return text.LoadVectorFontData(dev, goregular.TTF, size)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	now := time.Now()
	if a.debugLayer != nil && !a.lastFrame.IsZero() {
		a.debugLayer.frameDuration = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
		a.debugLayer.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnRender(e *core.Engine, alpha float64) {
	a.stats = a.r2d.Stats()
}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {}

func (a *App) OnShutdown(e *core.Engine) {
	a.font.Release()
}

func main() {
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg := core.DefaultConfig()
	cfg.Title = "quill sandbox"
	cfg.ClearColor = colors.DarkGray
	cfg.ProfilerCapacity = 1 << 12
	app := &App{}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newRenderer := func(w core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(w, cfg)
	}

	err := core.Run(app, cfg, newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		core.Logger().Error("sandbox exited", "err", err)
		os.Exit(1)
	}
}
