package extforge

import (
	"bytes"
	"image/png"
	"sync"

	"github.com/gogpu/extforge/iconspec"
	"github.com/gogpu/extforge/text"
)

// Renderer rasterizes icon specs to PNG.
//
// A Renderer holds no per-call state and is safe for concurrent use.
// Identical specs always produce byte-identical output.
type Renderer struct {
	opts renderOptions

	fontOnce sync.Once
	font     *text.FontSource
	fontErr  error
}

// New creates a Renderer.
//
// Example:
//
//	r := extforge.New(extforge.WithMaxDimension(512))
//	png, err := r.RenderDescription(`PNG icon, 48x48, background #4F46E5 #9333EA, text "EX"`)
func New(opts ...RenderOption) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o}
}

var defaultRenderer = New()

// Render rasterizes spec with the default Renderer.
func Render(spec iconspec.IconSpec) ([]byte, error) {
	return defaultRenderer.Render(spec)
}

// MaxDimension returns the largest width or height r accepts.
func (r *Renderer) MaxDimension() int {
	return r.opts.maxDimension
}

// Compression returns the PNG compression level r encodes with.
func (r *Renderer) Compression() png.CompressionLevel {
	return r.opts.compression
}

// RenderDescription parses desc and renders the result.
func (r *Renderer) RenderDescription(desc string) ([]byte, error) {
	return r.Render(iconspec.Parse(desc))
}

// Render rasterizes spec and encodes it as PNG.
// On failure it returns an error matching ErrRenderUnavailable and no bytes.
func (r *Renderer) Render(spec iconspec.IconSpec) ([]byte, error) {
	pm, err := r.RenderPixmap(spec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pm.EncodePNG(&buf, r.opts.compression); err != nil {
		return nil, &RenderError{Width: spec.Width, Height: spec.Height, Reason: "png encoding failed", Err: err}
	}
	return buf.Bytes(), nil
}

// RenderPixmap rasterizes spec without encoding it.
//
// The background is a flat fill for one color and a linear gradient from
// the top-left to the bottom-right pixel for several, with evenly spaced
// stops in the order given. The label, if any, is drawn in the foreground
// color with a bold face of floor(width/2) pixels, centered on both axes.
func (r *Renderer) RenderPixmap(spec iconspec.IconSpec) (*Pixmap, error) {
	w, h := spec.Width, spec.Height
	switch {
	case w <= 0 || h <= 0:
		return nil, &RenderError{Width: w, Height: h, Reason: "empty surface"}
	case w > r.opts.maxDimension || h > r.opts.maxDimension:
		return nil, &RenderError{Width: w, Height: h, Reason: "surface exceeds maximum dimension"}
	}

	Logger().Debug("render icon",
		"width", w, "height", h,
		"colors", len(spec.Background),
		"label", spec.HasLabel)

	pm := NewPixmap(w, h)
	pm.Fill(r.background(spec))

	if spec.HasLabel && spec.Label != "" {
		if err := r.drawLabel(pm, spec); err != nil {
			return nil, err
		}
	}
	return pm, nil
}

// background builds the fill pattern. The declared style is informational;
// the color count decides between flat and gradient.
func (r *Renderer) background(spec iconspec.IconSpec) Pattern {
	colors := make([]RGBA, 0, len(spec.Background))
	for _, c := range spec.Background {
		colors = append(colors, opaque(ParseColor(c)))
	}

	switch len(colors) {
	case 0:
		return Solid(opaque(ParseColor(iconspec.DefaultBackground)))
	case 1:
		return Solid(colors[0])
	}

	// The axis joins the centres of the corner pixels, so those pixels
	// take the first and last stop colors exactly.
	w, h := float64(spec.Width), float64(spec.Height)
	g := NewLinearGradient(0.5, 0.5, w-0.5, h-0.5).SetInterpolation(r.opts.interpolation)
	g.Stops = EvenStops(colors)
	return g
}

func (r *Renderer) drawLabel(pm *Pixmap, spec iconspec.IconSpec) error {
	size := float64(spec.Width / 2)
	if size < 1 {
		return nil
	}

	src, err := r.fontSource()
	if err != nil {
		return &RenderError{Width: spec.Width, Height: spec.Height, Reason: "font unavailable", Err: err}
	}

	face := src.Face(size)
	run := face.Shape(spec.Label)
	fg := opaque(ParseColor(spec.Foreground))

	cx, cy := float64(spec.Width)/2, float64(spec.Height)/2
	if err := text.DrawCentered(pm.RGBAImage(), run, face, cx, cy, fg.Color()); err != nil {
		return &RenderError{Width: spec.Width, Height: spec.Height, Reason: "label drawing failed", Err: err}
	}
	return nil
}

func (r *Renderer) fontSource() (*text.FontSource, error) {
	if r.opts.font == nil {
		return text.DefaultSource()
	}
	r.fontOnce.Do(func() {
		r.font, r.fontErr = text.NewFontSource(r.opts.font)
	})
	return r.font, r.fontErr
}

func opaque(c RGBA) RGBA {
	c.A = 1
	return c
}
