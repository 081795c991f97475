package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage reads an image under <Root>/textures and returns width, height
// and tightly packed RGBA8 pixels (row-major, top-left origin). PNG, JPEG,
// GIF, BMP, TIFF and WebP are recognised by their magic bytes.
func LoadImage(relPath string) (w, h int, rgba []byte, err error) {
	data, err := readFile(Path("textures", relPath))
	if err != nil {
		return 0, 0, nil, err
	}
	w, h, rgba, err = DecodeImage(data)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%q: %w", relPath, err)
	}
	return w, h, rgba, nil
}

// DecodeImage decodes an encoded image held in memory.
func DecodeImage(data []byte) (w, h int, rgba []byte, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %w", ErrInvalidTexture, err)
	}
	m := imageToRGBA(img)
	w, h = m.Bounds().Dx(), m.Bounds().Dy()
	return w, h, packRows(m), nil
}

// packRows copies m into a buffer with stride == 4*w.
func packRows(m *image.RGBA) []byte {
	w, h := m.Bounds().Dx(), m.Bounds().Dy()
	if m.Stride == w*4 && len(m.Pix) == w*h*4 {
		return m.Pix
	}
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], m.Pix[y*m.Stride:y*m.Stride+w*4])
	}
	return out
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
