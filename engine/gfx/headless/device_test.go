package headless

import (
	"errors"
	"testing"

	"github.com/hubastard/quill/engine/core"
)

func TestDevice_CreateAndUpdateTexture(t *testing.T) {
	d := New()
	tex, err := d.CreateTexture(core.TextureDesc{Width: 2, Height: 2, Format: core.TextureRGBA8})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.UpdateTexture(tex, 1, 1, 1, 1, []byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	ht := tex.(*Texture)
	if got := ht.At(1, 1); got != [4]byte{1, 2, 3, 4} {
		t.Errorf("At(1,1) = %v", got)
	}
	if got := ht.At(0, 0); got != [4]byte{} {
		t.Errorf("At(0,0) = %v, want zero", got)
	}
}

func TestDevice_Errors(t *testing.T) {
	d := New()
	d.MaxSize = 8
	tex, _ := d.CreateTexture(core.TextureDesc{Width: 4, Height: 4})

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"short pixels", d.UpdateTexture(tex, 0, 0, 2, 2, make([]byte, 15)), core.ErrNotEnoughData},
		{"out of bounds", d.UpdateTexture(tex, 3, 3, 2, 2, make([]byte, 16)), core.ErrOutOfBounds},
		{"too large", createErr(d, core.TextureDesc{Width: 16, Height: 4}), core.ErrPlatform},
		{"short initial data", createErr(d, core.TextureDesc{Width: 2, Height: 2, Pixels: make([]byte, 3)}), core.ErrNotEnoughData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("err = %v, want %v", tt.err, tt.want)
			}
		})
	}
}

func createErr(d *Device, desc core.TextureDesc) error {
	_, err := d.CreateTexture(desc)
	return err
}

func TestDevice_DeletedTexture(t *testing.T) {
	d := New()
	tex, _ := d.CreateTexture(core.TextureDesc{Width: 1, Height: 1})
	d.DeleteTexture(tex)

	if !tex.(*Texture).Deleted() || d.LiveTextures() != 0 {
		t.Fatal("texture not deleted")
	}
	if err := d.UpdateTexture(tex, 0, 0, 1, 1, make([]byte, 4)); !errors.Is(err, core.ErrPlatform) {
		t.Errorf("update after delete: err = %v, want ErrPlatform", err)
	}
}

func TestDevice_FailCreate(t *testing.T) {
	d := New()
	d.FailCreate = true
	_, err := d.CreateTexture(core.TextureDesc{Width: 1, Height: 1})
	var pe *core.PlatformError
	if !errors.As(err, &pe) || pe.Op != "create texture" {
		t.Errorf("err = %v, want PlatformError from create texture", err)
	}
}

func TestDevice_RecordsDraws(t *testing.T) {
	d := New()
	m, _ := d.CreateMesh(core.MeshDesc{Vertices: make([]float32, 8), Indices: make([]uint32, 6)})
	if err := d.UpdateMesh(m, []float32{1, 2}, []uint32{0, 1, 2}); err != nil {
		t.Fatal(err)
	}
	d.Draw(core.DrawCmd{Mesh: m})

	if len(d.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(d.Draws))
	}
	if got := d.Draws[0]; got.IndexCount != 3 || len(got.Vertices) != 2 {
		t.Errorf("draw = %+v", got)
	}
}
