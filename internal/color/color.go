// Package color converts color components between the sRGB transfer curve
// and linear light.
package color

import "math"

// RGBA holds components in [0, 1]. Alpha is never gamma-encoded.
type RGBA struct {
	R, G, B, A float64
}

// ToLinear decodes an sRGB component (the sRGB EOTF).
func ToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// ToSRGB encodes a linear component (the sRGB OETF).
func ToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// Linear returns c with its color components decoded to linear light.
func (c RGBA) Linear() RGBA {
	return RGBA{R: ToLinear(c.R), G: ToLinear(c.G), B: ToLinear(c.B), A: c.A}
}

// SRGB returns c with its color components encoded with the sRGB curve.
func (c RGBA) SRGB() RGBA {
	return RGBA{R: ToSRGB(c.R), G: ToSRGB(c.G), B: ToSRGB(c.B), A: c.A}
}

// Mix blends two sRGB colors in linear light and returns the sRGB result.
// t = 0 yields a, t = 1 yields b.
func Mix(a, b RGBA, t float64) RGBA {
	la, lb := a.Linear(), b.Linear()
	return RGBA{
		R: la.R + (lb.R-la.R)*t,
		G: la.G + (lb.G-la.G)*t,
		B: la.B + (lb.B-la.B)*t,
		A: la.A + (lb.A-la.A)*t,
	}.SRGB()
}
