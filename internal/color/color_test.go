package color

import (
	"math"
	"testing"
)

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestToLinear(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"black", 0, 0},
		{"white", 1, 1},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"just above threshold", 0.04046, math.Pow((0.04046+0.055)/1.055, 2.4)},
		{"mid gray", 0.5, 0.21404114},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToLinear(tt.input); !near(got, tt.want, 1e-7) {
				t.Errorf("ToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToSRGB(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"black", 0, 0},
		{"white", 1, 1},
		{"threshold", 0.0031308, 0.0031308 * 12.92},
		{"mid gray linear", 0.21404114, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSRGB(tt.input); !near(got, tt.want, 1e-6) {
				t.Errorf("ToSRGB(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Every 8-bit sRGB value must survive a round trip through linear light.
func TestRoundTrip(t *testing.T) {
	for i := 0; i <= 255; i++ {
		s := float64(i) / 255
		if got := ToSRGB(ToLinear(s)); !near(got, s, 1e-9) {
			t.Errorf("round trip of %d: got %v, want %v", i, got*255, i)
		}
	}
}

func TestMix(t *testing.T) {
	black := RGBA{A: 1}
	white := RGBA{R: 1, G: 1, B: 1, A: 1}

	if got := Mix(black, white, 0); got != black {
		t.Errorf("Mix(t=0) = %+v, want black", got)
	}
	if got := Mix(black, white, 1); !near(got.R, 1, 1e-12) {
		t.Errorf("Mix(t=1).R = %v, want 1", got.R)
	}

	// Halfway in linear light is brighter than halfway in sRGB.
	mid := Mix(black, white, 0.5)
	if !near(mid.R, 0.7353569, 1e-6) {
		t.Errorf("Mix(t=0.5).R = %v, want 0.7353569", mid.R)
	}
	if mid.R != mid.G || mid.G != mid.B {
		t.Errorf("Mix of grays is not gray: %+v", mid)
	}
	if mid.A != 1 {
		t.Errorf("Mix alpha = %v, want 1", mid.A)
	}
}
