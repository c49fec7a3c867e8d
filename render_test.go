package extforge

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/gogpu/extforge/iconspec"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	return img
}

func rgb8(img image.Image, x, y int) [3]uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func TestRender_GradientCorners(t *testing.T) {
	spec := iconspec.Parse("PNG icon, 2x1, background #000000 #FFFFFF")
	data, err := Render(spec)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	img := decode(t, data)

	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Fatalf("bounds = %v, want 2x1", b)
	}
	if got := rgb8(img, 0, 0); got != [3]uint8{0, 0, 0} {
		t.Errorf("left pixel = %v, want black", got)
	}
	if got := rgb8(img, 1, 0); got != [3]uint8{255, 255, 255} {
		t.Errorf("right pixel = %v, want white", got)
	}
}

func TestRender_FlatFill(t *testing.T) {
	data, err := New().RenderDescription("PNG icon, 16x16, style flat, background #3C78DC")
	if err != nil {
		t.Fatal(err)
	}
	img := decode(t, data)
	want := [3]uint8{0x3C, 0x78, 0xDC}
	for _, p := range []image.Point{{0, 0}, {15, 0}, {7, 7}, {15, 15}} {
		if got := rgb8(img, p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want %v", p, got, want)
		}
	}
}

func TestRender_Opaque(t *testing.T) {
	data, err := New().RenderDescription(`PNG icon, 24x24, background #4F46E5 #9333EA, text "EX"`)
	if err != nil {
		t.Fatal(err)
	}
	img := decode(t, data)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xFFFF {
				t.Fatalf("pixel (%d,%d) alpha = %#x, want opaque", x, y, a)
			}
		}
	}
}

func TestRender_GradientDiagonal(t *testing.T) {
	pm, err := New().RenderPixmap(iconspec.Parse("PNG icon, 48x48, background #4F46E5 #9333EA"))
	if err != nil {
		t.Fatal(err)
	}
	first, last := Hex("#4F46E5"), Hex("#9333EA")
	if got := pm.GetPixel(0, 0); !colorsEqual(got, first, 1e-9) {
		t.Errorf("top-left = %+v, want first stop", got)
	}
	if got := pm.GetPixel(47, 47); !colorsEqual(got, last, 1e-9) {
		t.Errorf("bottom-right = %+v, want last stop", got)
	}
	// The other two corners lie on the perpendicular through the centre.
	if a, b := pm.GetPixel(47, 0), pm.GetPixel(0, 47); a != b {
		t.Errorf("top-right %+v != bottom-left %+v", a, b)
	}
}

func TestRender_DeclaredStyleIgnored(t *testing.T) {
	a, err := New().RenderDescription("PNG icon, 8x8, style flat, background #000 #fff")
	if err != nil {
		t.Fatal(err)
	}
	b, err := New().RenderDescription("PNG icon, 8x8, style gradient, background #000 #fff")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("declared style should not change the raster")
	}
}

func TestRender_Deterministic(t *testing.T) {
	desc := `PNG icon, 48x48, style gradient, background #4F46E5 #9333EA, foreground #FFFFFF, text "EX" centered.`
	r := New()
	want, err := r.RenderDescription(desc)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = New().RenderDescription(desc)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if !bytes.Equal(got, want) {
			t.Errorf("render %d differs from the first render", i)
		}
	}
}

func TestRender_ConcurrentSharedRenderer(t *testing.T) {
	desc := `PNG icon, 32x32, background #10B981 #0EA5E9 #6366F1, foreground #111827, text "Go" centered.`
	want, err := New().RenderDescription(desc)
	if err != nil {
		t.Fatal(err)
	}

	// The font is loaded lazily, so the first renders race on it.
	r := New()
	var wg sync.WaitGroup
	results := make([][]byte, 16)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spec := iconspec.Parse(desc)
			if i%2 == 0 {
				results[i], errs[i] = r.Render(spec)
				return
			}
			results[i], errs[i] = Render(spec)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if errs[i] != nil {
			t.Errorf("render %d error: %v", i, errs[i])
			continue
		}
		if !bytes.Equal(got, want) {
			t.Errorf("render %d differs from a sequential render", i)
		}
	}
}

func TestRender_LabelDrawn(t *testing.T) {
	r := New()
	plain, err := r.RenderPixmap(iconspec.Parse("PNG icon, 32x32, background #000000"))
	if err != nil {
		t.Fatal(err)
	}
	labeled, err := r.RenderPixmap(iconspec.Parse(`PNG icon, 32x32, background #000000, foreground #FFFFFF, text "H"`))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(plain.Data(), labeled.Data()) {
		t.Fatal("label left no ink")
	}

	// Ink stays away from the edges and is roughly centered.
	minX, maxX := 32, -1
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if labeled.GetPixel(x, y) != Black {
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	if minX == 0 || maxX == 31 {
		t.Errorf("ink spans x %d..%d, touches the edge", minX, maxX)
	}
	if c := float64(minX+maxX+1) / 2; c < 14 || c > 18 {
		t.Errorf("ink centre x = %v, want ~16", c)
	}
}

func TestRender_TooLarge(t *testing.T) {
	r := New(WithMaxDimension(64))
	data, err := r.RenderDescription("PNG icon, 65x10")
	if !errors.Is(err, ErrRenderUnavailable) {
		t.Fatalf("error = %v, want ErrRenderUnavailable", err)
	}
	if data != nil {
		t.Error("failed render should return no bytes")
	}
	var re *RenderError
	if !errors.As(err, &re) || re.Width != 65 || re.Height != 10 {
		t.Errorf("error = %#v, want *RenderError for 65x10", err)
	}
}

func TestRender_DefaultMaxDimension(t *testing.T) {
	if got := New().MaxDimension(); got != DefaultMaxDimension {
		t.Errorf("MaxDimension() = %d, want %d", got, DefaultMaxDimension)
	}
	if got := New(WithMaxDimension(0)).MaxDimension(); got != DefaultMaxDimension {
		t.Errorf("WithMaxDimension(0) should be ignored, got %d", got)
	}
}

func TestRender_BadFont(t *testing.T) {
	r := New(WithFont([]byte("not a font")))

	// Without a label the font is never needed.
	if _, err := r.RenderDescription("PNG icon, 8x8"); err != nil {
		t.Errorf("unlabeled render error: %v", err)
	}

	_, err := r.RenderDescription(`PNG icon, 8x8, text "A"`)
	if !errors.Is(err, ErrRenderUnavailable) {
		t.Errorf("labeled render error = %v, want ErrRenderUnavailable", err)
	}
}

func TestRender_UnresolvedColorIsBlack(t *testing.T) {
	pm, err := New().RenderPixmap(iconspec.Parse("PNG icon, 4x4, solid nosuchcolor background"))
	if err != nil {
		t.Fatal(err)
	}
	if got := pm.GetPixel(2, 2); got != Black {
		t.Errorf("pixel = %+v, want black", got)
	}
}

func TestRender_NamedColor(t *testing.T) {
	pm, err := New().RenderPixmap(iconspec.Parse("PNG icon, 4x4, solid red background"))
	if err != nil {
		t.Fatal(err)
	}
	if got := pm.GetPixel(0, 0); got != RGB(1, 0, 0) {
		t.Errorf("pixel = %+v, want red", got)
	}
}

func TestRender_TinyLabelSkipped(t *testing.T) {
	pm, err := New().RenderPixmap(iconspec.Parse(`PNG icon, 1x1, background #000, text "A"`))
	if err != nil {
		t.Fatal(err)
	}
	if got := pm.GetPixel(0, 0); got != Black {
		t.Errorf("pixel = %+v, want black", got)
	}
}

func TestRender_LinearBlending(t *testing.T) {
	desc := "PNG icon, 3x1, background #000000 #FFFFFF"
	srgb, err := New().RenderPixmap(iconspec.Parse(desc))
	if err != nil {
		t.Fatal(err)
	}
	lin, err := New(WithLinearBlending()).RenderPixmap(iconspec.Parse(desc))
	if err != nil {
		t.Fatal(err)
	}
	if a, b := srgb.GetPixel(1, 0).R, lin.GetPixel(1, 0).R; b <= a {
		t.Errorf("linear midpoint %v should be brighter than sRGB midpoint %v", b, a)
	}
}

func TestRenderError_Message(t *testing.T) {
	err := &RenderError{Width: 5000, Height: 10, Reason: "surface exceeds maximum dimension"}
	want := "extforge: cannot render 5000x10 icon: surface exceeds maximum dimension"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
