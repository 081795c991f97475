package text

import "fmt"

// Rect is an integer rectangle in atlas pixel space.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps reports whether r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// In reports whether r lies inside a w×h area anchored at the origin.
func (r Rect) In(w, h int) bool {
	return r.X >= 0 && r.Y >= 0 && r.X+r.W <= w && r.Y+r.H <= h
}

// shelf is a horizontal band of the atlas. Its height is fixed by the
// rectangle that opened it.
type shelf struct {
	y      int
	height int
	x      int // next free column
}

// Packer places rectangles on shelves inside an area of fixed width whose
// height may grow up to a maximum. Placed rectangles never move until Reset.
//
// When several shelves can take a rectangle, the one leaving the least
// unused height wins, then the one leaving the least width, then the
// topmost. The output is deterministic for a given sequence of requests.
type Packer struct {
	width     int
	height    int
	maxHeight int
	padding   int
	shelves   []shelf
	usedArea  int
}

// NewPacker creates a packer for a width×height area that may grow to
// maxHeight. Padding is left to the right of and below every rectangle.
func NewPacker(width, height, maxHeight, padding int) *Packer {
	height = max(height, 1)
	return &Packer{
		width:     width,
		height:    height,
		maxHeight: max(maxHeight, height),
		padding:   max(padding, 0),
		shelves:   make([]shelf, 0, 16),
	}
}

// Allocate reserves a w×h rectangle.
//
// It returns *GrowthRequiredError when the rectangle fits only in a taller
// area, ErrAtlasFull when it cannot fit even at the maximum height, and
// ErrInvalidSize for non-positive sizes.
func (p *Packer) Allocate(w, h int) (Rect, error) {
	if w <= 0 || h <= 0 {
		return Rect{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if w > p.width || h > p.maxHeight {
		return Rect{}, fmt.Errorf("%w: %dx%d does not fit in %dx%d", ErrAtlasFull, w, h, p.width, p.maxHeight)
	}

	best := -1
	var bestH, bestW int
	for i, s := range p.shelves {
		if h > s.height || s.x+w > p.width {
			continue
		}
		leftH, leftW := s.height-h, p.width-(s.x+w)
		if best < 0 || leftH < bestH || (leftH == bestH && leftW < bestW) {
			// Shelves are stored top to bottom, so the first of equal
			// candidates is already the lowest y.
			best, bestH, bestW = i, leftH, leftW
		}
	}
	if best >= 0 {
		s := &p.shelves[best]
		r := Rect{X: s.x, Y: s.y, W: w, H: h}
		s.x += w + p.padding
		p.usedArea += w * h
		return r, nil
	}

	y := p.nextShelfY()
	if y+h <= p.height {
		p.shelves = append(p.shelves, shelf{y: y, height: h, x: w + p.padding})
		p.usedArea += w * h
		return Rect{X: 0, Y: y, W: w, H: h}, nil
	}
	if y+h > p.maxHeight {
		return Rect{}, fmt.Errorf("%w: no room for %dx%d below y=%d (max height %d)", ErrAtlasFull, w, h, y, p.maxHeight)
	}

	newHeight := p.height
	for newHeight < y+h {
		newHeight *= 2
	}
	return Rect{}, &GrowthRequiredError{Height: min(newHeight, p.maxHeight)}
}

func (p *Packer) nextShelfY() int {
	if len(p.shelves) == 0 {
		return 0
	}
	last := p.shelves[len(p.shelves)-1]
	return last.y + last.height + p.padding
}

// Grow raises the packable height. Lower values are ignored.
func (p *Packer) Grow(height int) error {
	if height > p.maxHeight {
		return fmt.Errorf("%w: height %d exceeds max %d", ErrAtlasFull, height, p.maxHeight)
	}
	p.height = max(p.height, height)
	return nil
}

// Reset forgets every rectangle. The height is kept.
func (p *Packer) Reset() {
	p.shelves = p.shelves[:0]
	p.usedArea = 0
}

func (p *Packer) Width() int      { return p.width }
func (p *Packer) Height() int     { return p.height }
func (p *Packer) MaxHeight() int  { return p.maxHeight }
func (p *Packer) ShelfCount() int { return len(p.shelves) }
func (p *Packer) UsedArea() int   { return p.usedArea }

// Utilization returns the used fraction of the current area.
func (p *Packer) Utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}
