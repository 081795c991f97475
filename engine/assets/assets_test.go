package assets

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImage_PNG(t *testing.T) {
	data := encodePNG(t, 3, 2, color.RGBA{10, 20, 30, 255})

	w, h, pix, err := DecodeImage(data)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if w != 3 || h != 2 {
		t.Fatalf("size = %dx%d, want 3x2", w, h)
	}
	if len(pix) != 3*2*4 {
		t.Fatalf("len(pix) = %d, want %d", len(pix), 3*2*4)
	}
	if pix[0] != 10 || pix[1] != 20 || pix[2] != 30 || pix[3] != 255 {
		t.Errorf("first pixel = %v", pix[:4])
	}
}

func TestDecodeImage_Invalid(t *testing.T) {
	_, _, _, err := DecodeImage([]byte("definitely not an image"))
	if !errors.Is(err, ErrInvalidTexture) {
		t.Fatalf("err = %v, want ErrInvalidTexture", err)
	}
}

func TestLoadImage_FromRoot(t *testing.T) {
	dir := t.TempDir()
	old := Root
	Root = dir
	t.Cleanup(func() { Root = old })

	if err := os.MkdirAll(filepath.Join(dir, "textures"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "textures", "panel.png"), encodePNG(t, 4, 4, color.RGBA{A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}

	w, h, _, err := LoadImage("panel.png")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if w != 4 || h != 4 {
		t.Errorf("size = %dx%d, want 4x4", w, h)
	}
}

func TestReadFont_Missing(t *testing.T) {
	old := Root
	Root = t.TempDir()
	t.Cleanup(func() { Root = old })

	_, err := ReadFont("nope.ttf")
	if !errors.Is(err, ErrFailedToLoadAsset) {
		t.Fatalf("err = %v, want ErrFailedToLoadAsset", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestPath_Absolute(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.ttf")
	if got := Path("fonts", abs); got != abs {
		t.Errorf("Path(abs) = %q, want %q", got, abs)
	}
}
