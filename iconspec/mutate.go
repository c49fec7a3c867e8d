package iconspec

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownOp is returned by NewOp for an unrecognized operation name.
var ErrUnknownOp = errors.New("iconspec: unknown operation")

// Op is a structural edit of a description.
//
// The set of operations is closed; use one of SetBackgroundAt,
// AddBackgroundStop, RemoveBackgroundAt or SetForeground.
type Op interface {
	// target reports which clause the operation edits.
	target() field

	// colors computes the new value list from the current one.
	// ok is false when the operation does not apply.
	colors(current []string) (next []string, ok bool)
}

type field int

const (
	fieldBackground field = iota
	fieldForeground
)

// SetBackgroundAt replaces the background color at Index.
type SetBackgroundAt struct {
	Index int
	Color string
}

// AddBackgroundStop appends a gradient stop. An empty Color appends DefaultStop.
type AddBackgroundStop struct {
	Color string
}

// RemoveBackgroundAt removes the background color at Index.
// It never removes the last remaining color.
type RemoveBackgroundAt struct {
	Index int
}

// SetForeground replaces the foreground color.
type SetForeground struct {
	Color string
}

func (SetBackgroundAt) target() field    { return fieldBackground }
func (AddBackgroundStop) target() field  { return fieldBackground }
func (RemoveBackgroundAt) target() field { return fieldBackground }
func (SetForeground) target() field      { return fieldForeground }

func (op SetBackgroundAt) colors(cur []string) ([]string, bool) {
	if op.Index < 0 || op.Index >= len(cur) || !IsHexToken(op.Color) {
		return nil, false
	}
	next := slices.Clone(cur)
	next[op.Index] = op.Color
	return next, true
}

func (op AddBackgroundStop) colors(cur []string) ([]string, bool) {
	c := op.Color
	if c == "" {
		c = DefaultStop
	}
	if !IsHexToken(c) {
		return nil, false
	}
	return append(slices.Clone(cur), c), true
}

func (op RemoveBackgroundAt) colors(cur []string) ([]string, bool) {
	if len(cur) <= 1 || op.Index < 0 || op.Index >= len(cur) {
		return nil, false
	}
	return slices.Delete(slices.Clone(cur), op.Index, op.Index+1), true
}

func (op SetForeground) colors([]string) ([]string, bool) {
	if !IsHexToken(op.Color) {
		return nil, false
	}
	return []string{op.Color}, true
}

// NewOp builds an operation from its name, as used by the CLI and the
// preview server: "set-background", "add-stop", "remove-background" and
// "set-foreground".
func NewOp(name string, index int, color string) (Op, error) {
	switch strings.ToLower(name) {
	case "set-background", "set-bg":
		return SetBackgroundAt{Index: index, Color: color}, nil
	case "add-stop", "add-background":
		return AddBackgroundStop{Color: color}, nil
	case "remove-background", "remove-stop", "remove-bg":
		return RemoveBackgroundAt{Index: index}, nil
	case "set-foreground", "set-fg":
		return SetForeground{Color: color}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOp, name)
}

// Mutate applies op to desc and returns the edited description.
//
// Only the span of the targeted clause is rewritten. If the clause is
// absent, the operation does not apply, or the edit would change any other
// field that Parse observes, desc is returned unchanged.
func Mutate(desc string, op Op) string {
	out, _ := Apply(desc, op)
	return out
}

// Apply is like Mutate but also reports whether the description changed.
func Apply(desc string, op Op) (string, bool) {
	if op == nil {
		return desc, false
	}

	var (
		c     clause
		found bool
	)
	switch op.target() {
	case fieldBackground:
		c, found = findBackground(desc)
	case fieldForeground:
		c, found = findForeground(desc)
	}
	if !found {
		return desc, false
	}

	current := strings.Fields(desc[c.valueStart:c.end])
	next, ok := op.colors(current)
	if !ok {
		return desc, false
	}

	out := desc[:c.start] + c.keyword(desc) + " " + strings.Join(next, " ") + desc[c.end:]
	if !preserves(desc, out, op.target(), next) {
		return desc, false
	}
	return out, out != desc
}

// preserves reports whether out changes only the targeted field of desc,
// and changes it to want.
func preserves(desc, out string, f field, want []string) bool {
	before, after := Parse(desc), Parse(out)

	if before.Width != after.Width || before.Height != after.Height ||
		before.Label != after.Label || before.HasLabel != after.HasLabel {
		return false
	}
	bs, bok := declaredStyle(desc)
	as, aok := declaredStyle(out)
	if bs != as || bok != aok {
		return false
	}

	switch f {
	case fieldBackground:
		return before.Foreground == after.Foreground && slices.Equal(after.Background, want)
	case fieldForeground:
		return slices.Equal(before.Background, after.Background) && after.Foreground == want[0]
	}
	return false
}
