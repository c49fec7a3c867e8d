package extforge

import (
	"bytes"
	"image/png"
	"testing"
)

func TestPixmap_SetGetPixel(t *testing.T) {
	pm := NewPixmap(4, 3)
	c := Hex("#3C78DC")
	pm.SetPixel(2, 1, c)

	i := (1*4 + 2) * 4
	data := pm.Data()
	if data[i] != 60 || data[i+1] != 120 || data[i+2] != 220 || data[i+3] != 255 {
		t.Errorf("raw data = %v, want [60 120 220 255]", data[i:i+4])
	}
	if got := pm.GetPixel(2, 1); !colorsEqual(got, c, 1e-9) {
		t.Errorf("GetPixel() = %+v, want %+v", got, c)
	}
}

func TestPixmap_OutOfBounds(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.Clear(Black)
	for _, p := range []struct{ x, y int }{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		pm.SetPixel(p.x, p.y, White)
		if got := pm.GetPixel(p.x, p.y); got != Transparent {
			t.Errorf("GetPixel(%d, %d) = %+v, want transparent", p.x, p.y, got)
		}
	}
	for i, b := range pm.Data() {
		if i%4 != 3 && b != 0 {
			t.Fatalf("out-of-bounds write changed byte %d", i)
		}
	}
}

func TestPixmap_FillSamplesCentres(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.Fill(NewLinearGradient(0.5, 0.5, 1.5, 0.5).AddColorStop(0, Black).AddColorStop(1, White))

	if got := pm.GetPixel(0, 0); got != Black {
		t.Errorf("left pixel = %+v, want black", got)
	}
	if got := pm.GetPixel(1, 0); got != White {
		t.Errorf("right pixel = %+v, want white", got)
	}
}

func TestPixmap_RGBAImageSharesBuffer(t *testing.T) {
	pm := NewPixmap(3, 3)
	img := pm.RGBAImage()
	img.Pix[0] = 200
	if pm.Data()[0] != 200 {
		t.Error("RGBAImage() should share the pixmap buffer")
	}

	copied := pm.ToImage()
	copied.Pix[0] = 1
	if pm.Data()[0] != 200 {
		t.Error("ToImage() should copy the pixmap buffer")
	}
}

func TestPixmap_EncodePNG(t *testing.T) {
	pm := NewPixmap(5, 4)
	pm.Clear(Hex("#4F46E5"))

	var buf bytes.Buffer
	if err := pm.EncodePNG(&buf, png.BestCompression); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 4 {
		t.Errorf("decoded bounds = %v, want 5x4", b)
	}
	r, g, b, a := img.At(4, 3).RGBA()
	if r>>8 != 0x4F || g>>8 != 0x46 || b>>8 != 0xE5 || a>>8 != 0xFF {
		t.Errorf("decoded pixel = %x %x %x %x", r>>8, g>>8, b>>8, a>>8)
	}
}
