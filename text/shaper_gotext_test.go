package text

import (
	"sync"
	"testing"
)

func defaultFace(t *testing.T, size float64) *Face {
	t.Helper()
	source, err := DefaultSource()
	if err != nil {
		t.Fatalf("DefaultSource() error: %v", err)
	}
	return source.Face(size)
}

func TestShape_BasicLatin(t *testing.T) {
	face := defaultFace(t, 24)

	run := face.Shape("EX")
	if len(run.Glyphs) != 2 {
		t.Fatalf("Shape(\"EX\"): got %d glyphs, want 2", len(run.Glyphs))
	}
	if run.Direction != DirectionLTR {
		t.Errorf("Direction = %v, want LTR", run.Direction)
	}
	if run.Glyphs[0].X != 0 {
		t.Errorf("first glyph X = %v, want 0", run.Glyphs[0].X)
	}
	if run.Glyphs[1].X <= run.Glyphs[0].X {
		t.Errorf("glyph X positions not increasing: %v, %v", run.Glyphs[0].X, run.Glyphs[1].X)
	}
	for i, g := range run.Glyphs {
		if g.XAdvance <= 0 {
			t.Errorf("glyph %d: XAdvance = %v, want > 0", i, g.XAdvance)
		}
		if g.GID == 0 {
			t.Errorf("glyph %d: GID 0 (notdef)", i)
		}
	}
}

func TestShape_Empty(t *testing.T) {
	face := defaultFace(t, 24)
	if run := face.Shape(""); len(run.Glyphs) != 0 || run.Advance() != 0 {
		t.Errorf("Shape(\"\") = %+v, want empty", run)
	}
}

func TestShape_AdvanceScalesWithSize(t *testing.T) {
	small := defaultFace(t, 12).Advance("Hello")
	large := defaultFace(t, 24).Advance("Hello")
	if small <= 0 {
		t.Fatalf("Advance at 12px = %v, want > 0", small)
	}
	if ratio := large / small; ratio < 1.9 || ratio > 2.1 {
		t.Errorf("advance ratio 24px/12px = %v, want ~2", ratio)
	}
}

func TestShape_Deterministic(t *testing.T) {
	face := defaultFace(t, 20)
	want := face.Shape("Icon")
	for i := 0; i < 5; i++ {
		got := face.Shape("Icon")
		if len(got.Glyphs) != len(want.Glyphs) {
			t.Fatalf("run %d: %d glyphs, want %d", i, len(got.Glyphs), len(want.Glyphs))
		}
		for j := range got.Glyphs {
			if got.Glyphs[j] != want.Glyphs[j] {
				t.Errorf("run %d glyph %d = %+v, want %+v", i, j, got.Glyphs[j], want.Glyphs[j])
			}
		}
	}
}

func TestShape_Concurrent(t *testing.T) {
	face := defaultFace(t, 16)
	want := face.Advance("concurrent")

	var wg sync.WaitGroup
	errs := make(chan float64, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := face.Advance("concurrent"); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Advance = %v, want %v", got, want)
	}
}
