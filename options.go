package extforge

import "image/png"

// DefaultMaxDimension is the largest width or height a Renderer accepts
// unless WithMaxDimension says otherwise.
const DefaultMaxDimension = 4096

// RenderOption configures a Renderer during creation.
//
// Example:
//
//	// Canvas-compatible defaults
//	r := extforge.New()
//
//	// Linear-light gradients, smaller output files
//	r := extforge.New(extforge.WithLinearBlending(), extforge.WithCompression(png.BestCompression))
type RenderOption func(*renderOptions)

type renderOptions struct {
	maxDimension  int
	font          []byte
	interpolation Interpolation
	compression   png.CompressionLevel
}

func defaultOptions() renderOptions {
	return renderOptions{
		maxDimension:  DefaultMaxDimension,
		interpolation: InterpolateSRGB,
		compression:   png.DefaultCompression,
	}
}

// WithMaxDimension limits the width and height of a raster.
// Larger specs fail with ErrRenderUnavailable. Values below 1 are ignored.
func WithMaxDimension(n int) RenderOption {
	return func(o *renderOptions) {
		if n > 0 {
			o.maxDimension = n
		}
	}
}

// WithFont replaces the embedded Go Bold label font with a TrueType or
// OpenType font. The data is parsed on first use; a font that cannot be
// parsed makes every labeled render fail with ErrRenderUnavailable.
func WithFont(ttf []byte) RenderOption {
	return func(o *renderOptions) {
		o.font = ttf
	}
}

// WithLinearBlending interpolates gradient stops in linear light instead
// of blending the sRGB components directly.
func WithLinearBlending() RenderOption {
	return func(o *renderOptions) {
		o.interpolation = InterpolateLinear
	}
}

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) RenderOption {
	return func(o *renderOptions) {
		o.compression = level
	}
}
