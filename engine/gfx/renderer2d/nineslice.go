package renderer2d

// NineSlice describes how to slice a texture region so it can be stretched
// without distorting its borders. Offsets are in pixels from each edge of
// Region.
type NineSlice struct {
	Region                   Rectangle
	Left, Right, Top, Bottom float32
}

func NewNineSlice(region Rectangle, left, right, top, bottom float32) NineSlice {
	return NineSlice{Region: region, Left: left, Right: right, Top: top, Bottom: bottom}
}

// NineSliceWithBorder uses the same offset on all four edges.
func NineSliceWithBorder(region Rectangle, border float32) NineSlice {
	return NineSlice{Region: region, Left: border, Right: border, Top: border, Bottom: border}
}
