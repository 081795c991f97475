package scene

import "github.com/hubastard/quill/engine/core"

// OrthoController2D pans the camera with WASD and zooms with the mouse wheel.
type OrthoController2D struct {
	MoveSpeed float32 // world units per second at zoom 1
	ZoomSpeed float32 // factor per wheel notch
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 200,
		ZoomSpeed: 1.2,
		Camera:    cam,
	}
}

func (cc *OrthoController2D) Update(e *core.Engine, dt float32) {
	in := e.Input
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom

	var dx, dy float32
	if in.IsKeyDown(core.KeyW) {
		dy += speed
	}
	if in.IsKeyDown(core.KeyS) {
		dy -= speed
	}
	if in.IsKeyDown(core.KeyA) {
		dx -= speed
	}
	if in.IsKeyDown(core.KeyD) {
		dx += speed
	}
	if cc.Camera.yDown {
		dy = -dy
	}
	if dx != 0 || dy != 0 {
		cc.Camera.Move(dx, dy)
	}
}

// HandleEvent zooms on scroll and reports whether it consumed ev.
func (cc *OrthoController2D) HandleEvent(_ *core.Engine, ev core.Event) bool {
	s, ok := ev.(core.EventScroll)
	if !ok || s.Yoff == 0 {
		return false
	}
	if s.Yoff > 0 {
		cc.Camera.SetZoom(cc.Camera.Zoom * cc.ZoomSpeed)
	} else {
		cc.Camera.SetZoom(cc.Camera.Zoom / cc.ZoomSpeed)
	}
	return true
}
