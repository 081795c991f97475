package text

import (
	"errors"
	"math/rand"
	"testing"
)

func TestPacker_SameShelf(t *testing.T) {
	p := NewPacker(16, 8, 64, 0)

	a, err := p.Allocate(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Allocate(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Rect{0, 0, 8, 8}); a != want {
		t.Errorf("first = %+v, want %+v", a, want)
	}
	if want := (Rect{8, 0, 8, 8}); b != want {
		t.Errorf("second = %+v, want %+v", b, want)
	}
	if p.Height() != 8 {
		t.Errorf("height = %d, want 8", p.Height())
	}
}

func TestPacker_Padding(t *testing.T) {
	p := NewPacker(32, 32, 32, 2)

	p.Allocate(10, 10)
	r, err := p.Allocate(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if r.X != 12 || r.Y != 0 {
		t.Errorf("second at (%d,%d), want (12,0)", r.X, r.Y)
	}
	r, err = p.Allocate(20, 4)
	if err != nil {
		t.Fatal(err)
	}
	if r.X != 0 || r.Y != 12 {
		t.Errorf("third at (%d,%d), want (0,12)", r.X, r.Y)
	}
}

func TestPacker_PrefersLeastLeftoverHeight(t *testing.T) {
	p := NewPacker(32, 64, 64, 0)

	p.Allocate(4, 10) // shelf 0: y=0, height 10
	p.Allocate(30, 6) // shelf 1: y=10, height 6
	r, err := p.Allocate(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Rect{30, 10, 2, 5}); r != want {
		t.Errorf("got %+v, want %+v (shelf with 1px left over)", r, want)
	}
}

func TestPacker_TieBreakWidthThenY(t *testing.T) {
	p := NewPacker(32, 64, 64, 0)

	p.Allocate(20, 8) // shelf 0
	p.Allocate(20, 8) // shelf 1, same height and fill

	r, _ := p.Allocate(4, 8)
	if want := (Rect{20, 0, 4, 8}); r != want {
		t.Errorf("equal shelves: got %+v, want %+v", r, want)
	}
	r, _ = p.Allocate(4, 8)
	if want := (Rect{24, 0, 4, 8}); r != want {
		t.Errorf("less leftover width: got %+v, want %+v", r, want)
	}
	r, _ = p.Allocate(8, 8)
	if want := (Rect{20, 8, 8, 8}); r != want {
		t.Errorf("only shelf 1 fits: got %+v, want %+v", r, want)
	}
}

func TestPacker_GrowthRequired(t *testing.T) {
	p := NewPacker(8, 8, 64, 0)

	if _, err := p.Allocate(8, 8); err != nil {
		t.Fatal(err)
	}
	_, err := p.Allocate(8, 8)
	var grow *GrowthRequiredError
	if !errors.As(err, &grow) {
		t.Fatalf("err = %v, want GrowthRequiredError", err)
	}
	if grow.Height != 16 {
		t.Errorf("growth height = %d, want 16", grow.Height)
	}
	if p.ShelfCount() != 1 || p.Height() != 8 {
		t.Errorf("allocation committed before growth: shelves=%d height=%d", p.ShelfCount(), p.Height())
	}

	if err := p.Grow(grow.Height); err != nil {
		t.Fatal(err)
	}
	r, err := p.Allocate(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Rect{0, 8, 8, 8}); r != want {
		t.Errorf("after growth = %+v, want %+v", r, want)
	}
}

func TestPacker_GrowthDoublesUntilFit(t *testing.T) {
	tests := []struct {
		name      string
		maxHeight int
		want      int
	}{
		{"doubling", 64, 64},
		{"clamped", 40, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPacker(8, 8, tt.maxHeight, 0)
			p.Allocate(8, 8)
			_, err := p.Allocate(8, 30) // needs y+h = 38
			var grow *GrowthRequiredError
			if !errors.As(err, &grow) {
				t.Fatalf("err = %v, want GrowthRequiredError", err)
			}
			if grow.Height != tt.want {
				t.Errorf("growth height = %d, want %d", grow.Height, tt.want)
			}
		})
	}
}

func TestPacker_Errors(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want error
	}{
		{"zero width", 0, 4, ErrInvalidSize},
		{"negative height", 4, -1, ErrInvalidSize},
		{"wider than atlas", 17, 4, ErrAtlasFull},
		{"taller than max", 4, 33, ErrAtlasFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPacker(16, 8, 32, 0)
			if _, err := p.Allocate(tt.w, tt.h); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPacker_FullAtMaxHeight(t *testing.T) {
	p := NewPacker(8, 8, 16, 0)
	p.Allocate(8, 8)
	p.Grow(16)
	p.Allocate(8, 8)

	if _, err := p.Allocate(8, 8); !errors.Is(err, ErrAtlasFull) {
		t.Fatalf("err = %v, want ErrAtlasFull", err)
	}
	if err := p.Grow(32); !errors.Is(err, ErrAtlasFull) {
		t.Errorf("Grow past max: err = %v, want ErrAtlasFull", err)
	}
}

func TestPacker_NoOverlapAndMonotonicHeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := NewPacker(128, 16, 2048, 1)

	var placed []Rect
	lastHeight := p.Height()
	for i := 0; i < 500; i++ {
		w, h := 1+rng.Intn(24), 1+rng.Intn(24)
		r, err := p.Allocate(w, h)
		var grow *GrowthRequiredError
		if errors.As(err, &grow) {
			if err := p.Grow(grow.Height); err != nil {
				t.Fatal(err)
			}
			r, err = p.Allocate(w, h)
		}
		if errors.Is(err, ErrAtlasFull) {
			break
		}
		if err != nil {
			t.Fatalf("allocation %d: %v", i, err)
		}
		if r.W != w || r.H != h {
			t.Fatalf("allocation %d: size %dx%d, want %dx%d", i, r.W, r.H, w, h)
		}
		if p.Height() < lastHeight {
			t.Fatalf("height shrank from %d to %d", lastHeight, p.Height())
		}
		lastHeight = p.Height()
		placed = append(placed, r)
	}

	for i, a := range placed {
		if !a.In(p.Width(), p.Height()) {
			t.Errorf("%+v outside %dx%d", a, p.Width(), p.Height())
		}
		for _, b := range placed[i+1:] {
			if a.Overlaps(b) {
				t.Fatalf("%+v overlaps %+v", a, b)
			}
		}
	}
}

func TestPacker_Reset(t *testing.T) {
	p := NewPacker(16, 8, 64, 0)
	p.Allocate(8, 8)
	p.Allocate(8, 8)
	p.Grow(32)

	p.Reset()

	if p.ShelfCount() != 0 || p.UsedArea() != 0 || p.Utilization() != 0 {
		t.Errorf("after reset: shelves=%d used=%d", p.ShelfCount(), p.UsedArea())
	}
	if p.Height() != 32 {
		t.Errorf("height = %d, want 32 (kept)", p.Height())
	}
	r, _ := p.Allocate(8, 8)
	if r != (Rect{0, 0, 8, 8}) {
		t.Errorf("first after reset = %+v", r)
	}
}
