package iconspec

import (
	"fmt"
	"strings"
)

// Format renders spec as a canonical description in the generator's
// phrasing:
//
//	PNG icon, 48x48, style gradient, background #4F46E5 #9333EA, foreground #FFFFFF, text "EX" centered.
//
// Parse(Format(s)) equals s for any spec whose colors are hex tokens (or a
// single named background color) and whose label holds at most one double
// quote and no single quote alongside it.
func Format(spec IconSpec) string {
	w, h := spec.Width, spec.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}

	bg := spec.Background
	if len(bg) == 0 {
		bg = []string{DefaultBackground}
	}
	fg := spec.Foreground
	if fg == "" {
		fg = DefaultForeground
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PNG icon, %dx%d, style %s, ", w, h, spec.Style)

	if len(bg) == 1 && !IsHexToken(bg[0]) {
		fmt.Fprintf(&b, "solid %s background, ", bg[0])
	} else {
		fmt.Fprintf(&b, "background %s, ", strings.Join(bg, " "))
	}
	fmt.Fprintf(&b, "foreground %s", fg)

	if spec.HasLabel && spec.Label != "" {
		fmt.Fprintf(&b, ", text %s centered", quote(spec.Label))
	}
	b.WriteString(".")
	return b.String()
}

func quote(label string) string {
	switch {
	case !strings.Contains(label, `"`):
		return `"` + label + `"`
	case !strings.Contains(label, "'") && strings.Count(label, `"`) == 1:
		return "'" + label + "'"
	default:
		return `"` + strings.ReplaceAll(label, `"`, "") + `"`
	}
}
