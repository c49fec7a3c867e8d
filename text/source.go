package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file.
// One FontSource can create faces at any size and should be shared.
//
// FontSource is safe for concurrent use: both parsed forms are read-only.
type FontSource struct {
	data   []byte
	sfnt   *opentype.Font // outlines and metrics
	shaper *gtfont.Font   // shaping tables
	name   string
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	otf, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, &FontError{Reason: "failed to parse font", Err: err}
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, &FontError{Reason: "failed to load shaping tables", Err: err}
	}

	s := &FontSource{
		data:   dataCopy,
		sfnt:   otf,
		shaper: face.Font,
	}
	s.name = extractFontName(otf)
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data)
}

var (
	defaultOnce   sync.Once
	defaultSource *FontSource
	defaultErr    error
)

// DefaultSource returns the embedded Go Bold font, parsed once.
func DefaultSource() (*FontSource, error) {
	defaultOnce.Do(func() {
		defaultSource, defaultErr = NewFontSource(gobold.TTF)
	})
	return defaultSource, defaultErr
}

// Face creates a Face at the given size in pixels.
func (s *FontSource) Face(size float64) *Face {
	return &Face{source: s, size: size}
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	return s.name
}

func extractFontName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
