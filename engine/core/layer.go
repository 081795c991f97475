package core

// Layer is one slice of the frame: the sandbox stacks the text editor under
// the debug overlay. Layers own their GPU resources (fonts, texts, panels)
// and free them in OnDetach.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	// OnEvent returns true when it consumed ev; layers below never see it.
	OnEvent(e *Engine, ev Event) bool
}

// LayerStack renders bottom-up and dispatches events top-down, so an
// overlay pushed last gets first refusal on keys the editor also handles.
type LayerStack struct{ layers []Layer }

func (ls *LayerStack) Push(l Layer) { ls.layers = append(ls.layers, l) }

// Pop removes the top layer without detaching it.
func (ls *LayerStack) Pop() (Layer, bool) {
	n := len(ls.layers)
	if n == 0 {
		return nil, false
	}
	top := ls.layers[n-1]
	ls.layers[n-1] = nil
	ls.layers = ls.layers[:n-1]
	return top, true
}

func (ls *LayerStack) Len() int { return len(ls.layers) }

func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.layers {
		f(l)
	}
}

// ForEachReverse visits top to bottom until f returns true.
func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	for i := len(ls.layers) - 1; i >= 0; i-- {
		if f(ls.layers[i]) {
			return
		}
	}
}

// DetachAll pops every layer top-down, calling OnDetach on each, so the
// overlay lets go of its font clones before the layer that shares them.
func (ls *LayerStack) DetachAll(e *Engine) {
	for {
		l, ok := ls.Pop()
		if !ok {
			return
		}
		l.OnDetach(e)
	}
}
