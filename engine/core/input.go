package core

// Input tracks key state, the cursor, and characters typed since the last
// fixed update.
type Input struct {
	keys           map[Key]bool
	mouseX, mouseY float64
	typed          []rune
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventChar:
		in.typed = append(in.typed, e.Char)
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// Typed returns the characters typed since the last call and clears them.
// The returned slice is only valid until the next event arrives.
func (in *Input) Typed() []rune {
	out := in.typed
	in.typed = in.typed[:0]
	return out
}
