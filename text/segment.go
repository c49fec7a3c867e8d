package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction specifies text direction.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
)

// String returns the direction name.
func (d Direction) String() string {
	if d == DirectionRTL {
		return "RTL"
	}
	return "LTR"
}

// DetectDirection returns the paragraph direction of s as the Unicode bidi
// algorithm resolves it (rules P2 and P3): the direction of the first
// strong character, skipping isolates, or LTR when there is none.
func DetectDirection(s string) Direction {
	isolates := 0
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.LRI, bidi.RLI, bidi.FSI:
			isolates++
		case bidi.PDI:
			if isolates > 0 {
				isolates--
			}
		case bidi.L:
			if isolates == 0 {
				return DirectionLTR
			}
		case bidi.R, bidi.AL:
			if isolates == 0 {
				return DirectionRTL
			}
		case bidi.B:
			return DirectionLTR
		}
	}
	return DirectionLTR
}
