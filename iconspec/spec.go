package iconspec

import "slices"

// Defaults applied when a description does not mention a field.
const (
	DefaultWidth      = 48
	DefaultHeight     = 48
	DefaultBackground = "#3C78DC"
	DefaultForeground = "#FFFFFF"

	// DefaultStop is the color appended by AddBackgroundStop when no color is given.
	DefaultStop = "#888888"
)

// Style is the declared fill style of an icon.
//
// The style is informational only: the rasterizer infers the fill mode from
// the number of background colors.
type Style int

const (
	// StyleFlat is a single-color fill.
	StyleFlat Style = iota
	// StyleGradient is a multi-stop linear gradient fill.
	StyleGradient
)

// String returns the keyword used for the style in descriptions.
func (s Style) String() string {
	switch s {
	case StyleGradient:
		return "gradient"
	default:
		return "flat"
	}
}

// IconSpec is the structured view of an icon description.
//
// An IconSpec is derived from the description on demand and must not be kept
// as the source of truth across edits.
type IconSpec struct {
	Width  int
	Height int

	// Style is the declared style, or the style implied by the number of
	// background colors when the description does not declare one.
	Style Style

	// Background holds one or more colors in gradient order, as written.
	Background []string

	// Foreground is the label color.
	Foreground string

	// Label is the text drawn in the middle of the icon; valid when HasLabel is set.
	Label    string
	HasLabel bool
}

// Default returns the IconSpec of an empty description.
func Default() IconSpec {
	return IconSpec{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Style:      StyleFlat,
		Background: []string{DefaultBackground},
		Foreground: DefaultForeground,
	}
}

// IsGradient reports whether the background is filled with a gradient.
// It depends only on the color count, not on the declared style.
func (s IconSpec) IsGradient() bool {
	return len(s.Background) > 1
}

// Equal reports whether two specs describe the same icon.
func (s IconSpec) Equal(o IconSpec) bool {
	return s.Width == o.Width &&
		s.Height == o.Height &&
		s.Style == o.Style &&
		s.Foreground == o.Foreground &&
		s.Label == o.Label &&
		s.HasLabel == o.HasLabel &&
		slices.Equal(s.Background, o.Background)
}
