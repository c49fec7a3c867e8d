package extforge

import (
	"errors"
	"fmt"
)

// ErrRenderUnavailable is reported when a drawing surface cannot be
// acquired for an icon. It is per asset: callers skip the file and
// continue.
var ErrRenderUnavailable = errors.New("extforge: render unavailable")

// RenderError describes why an icon could not be rendered.
// It matches ErrRenderUnavailable under errors.Is.
type RenderError struct {
	Width  int
	Height int
	Reason string
	Err    error // underlying cause, if any
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("extforge: cannot render %dx%d icon: %s", e.Width, e.Height, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrRenderUnavailable.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderUnavailable
}

func (e *RenderError) Unwrap() error { return e.Err }
