package core

import (
	"reflect"
	"testing"
)

type recordingLayer struct {
	name    string
	consume bool
	log     *[]string
}

func (l *recordingLayer) OnAttach(*Engine)          {}
func (l *recordingLayer) OnDetach(*Engine)          { *l.log = append(*l.log, "detach "+l.name) }
func (l *recordingLayer) OnUpdate(*Engine, float64) {}
func (l *recordingLayer) OnRender(*Engine, float64) { *l.log = append(*l.log, "render "+l.name) }
func (l *recordingLayer) OnEvent(*Engine, Event) bool {
	*l.log = append(*l.log, "event "+l.name)
	return l.consume
}

func TestLayerStack_Order(t *testing.T) {
	var log []string
	var ls LayerStack
	ls.Push(&recordingLayer{name: "editor", log: &log})
	ls.Push(&recordingLayer{name: "overlay", consume: true, log: &log})

	ls.ForEach(func(l Layer) { l.OnRender(nil, 0) })
	ls.ForEachReverse(func(l Layer) bool { return l.OnEvent(nil, EventChar{}) })
	ls.DetachAll(nil)

	want := []string{
		"render editor", "render overlay",
		"event overlay",
		"detach overlay", "detach editor",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("calls = %q, want %q", log, want)
	}
	if ls.Len() != 0 {
		t.Errorf("len after DetachAll = %d, want 0", ls.Len())
	}
	if _, ok := ls.Pop(); ok {
		t.Error("Pop on an empty stack reported a layer")
	}
}
