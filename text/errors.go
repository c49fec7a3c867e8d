package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for a face size below one pixel.
	ErrInvalidSize = errors.New("text: face size must be at least 1px")
)

// FontError reports a font that could not be parsed.
type FontError struct {
	Reason string
	Err    error
}

func (e *FontError) Error() string {
	if e.Err != nil {
		return "text: " + e.Reason + ": " + e.Err.Error()
	}
	return "text: " + e.Reason
}

func (e *FontError) Unwrap() error { return e.Err }
