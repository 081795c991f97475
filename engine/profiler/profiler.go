//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const defaultCapacity = 1 << 16

// Enabled reports whether scopes are recorded. Build with -tags profile.
const Enabled = true

// Init allocates the event ring. Call once at startup; capacity <= 0 picks
// a default sized for a few thousand frames.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	ring.init(capacity)
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	began := time.Now().UnixNano()
	ring.push(event{at: began, frame: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < began {
			end = began
		}
		ring.push(event{at: end, frame: id})
	}
}

// OpenProfilerGraph dumps the recorded scopes as a speedscope file in the
// temp dir and launches speedscope on it.
func OpenProfilerGraph() (string, error) {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return "", errors.New("profiler: no events to dump")
	}
	path := filepath.Join(os.TempDir(), "quill.profile.speedscope.json")
	if err := writeSpeedscope(evs, names.snapshot(), path); err != nil {
		return "", err
	}
	cmd := exec.Command("speedscope", path)
	hideWindow(cmd)
	if err := cmd.Start(); err != nil {
		return path, fmt.Errorf("profiler: launch speedscope: %w", err)
	}
	return path, nil
}

type event struct {
	at    int64
	frame int
	open  bool
}

// eventRing overwrites the oldest events once full.
type eventRing struct {
	ready atomic.Bool
	size  uint64
	next  atomic.Uint64
	evs   []event
}

var ring eventRing

func (r *eventRing) init(capacity int) {
	r.size = uint64(capacity)
	r.evs = make([]event, r.size)
	r.next.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.next.Add(1) - 1
	r.evs[i%r.size] = e
}

// snapshot returns events in write order.
func (r *eventRing) snapshot() []event {
	n := r.next.Load()
	if n == 0 {
		return nil
	}
	var first uint64
	if n > r.size {
		first = n - r.size
	}
	out := make([]event, 0, n-first)
	for k := first; k < n; k++ {
		out = append(out, r.evs[k%r.size])
	}
	return out
}

type interner struct {
	mu    sync.Mutex
	list  []string
	index map[string]int
}

var names = interner{index: map[string]int{}}

func (in *interner) intern(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[name]; ok {
		return id
	}
	id := len(in.list)
	in.index[name] = id
	in.list = append(in.list, name)
	return id
}

func (in *interner) snapshot() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return append([]string(nil), in.list...)
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since first event
	Frame int    `json:"frame"`
}

// writeSpeedscope converts the ring into an evented profile. Closes that do
// not match the innermost open scope are dropped (their open was
// overwritten); scopes still open at the end are closed at the last stamp.
func writeSpeedscope(evs []event, frames []string, path string) error {
	base := evs[0].at
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	var last int64

	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(out) == 0 {
		return errors.New("profiler: no usable events")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "quill",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "quill-profiler",
		Name:     "quill capture",
	}
	for _, name := range frames {
		doc.Shared.Frames = append(doc.Shared.Frames, ssFrame{Name: name})
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
