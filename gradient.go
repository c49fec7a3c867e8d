package extforge

import (
	"sort"

	"github.com/gogpu/extforge/internal/color"
)

// Interpolation selects the color space gradient stops are blended in.
type Interpolation int

const (
	// InterpolateSRGB blends gamma-encoded components directly, as a
	// browser canvas does (default).
	InterpolateSRGB Interpolation = iota
	// InterpolateLinear blends in linear light and re-encodes to sRGB.
	InterpolateLinear
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// EvenStops places colors at offsets i/(n-1) in the given order.
// A single color becomes one stop at offset 0.
func EvenStops(colors []RGBA) []ColorStop {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		off := 0.0
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{Offset: off, Color: c}
	}
	return stops
}

// sortStops returns a copy of stops ordered by offset.
// Stops with equal offsets keep their relative order.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// interpolateColorLinear interpolates between two colors in linear light.
func interpolateColorLinear(c1, c2 RGBA, t float64) RGBA {
	return RGBA(color.Mix(color.RGBA(c1), color.RGBA(c2), t))
}

// colorAtOffset returns the interpolated color at offset t.
// stops must already be sorted; t outside [0, 1] pads with the edge colors.
func colorAtOffset(stops []ColorStop, t float64, mode Interpolation) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}

	t = clamp01(t)

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	stop1 := stops[idx-1]
	stop2 := stops[idx]
	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	if mode == InterpolateLinear {
		return interpolateColorLinear(stop1.Color, stop2.Color, localT)
	}
	return stop1.Color.Lerp(stop2.Color, localT)
}
