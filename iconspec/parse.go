package iconspec

import (
	"regexp"
	"strconv"
	"strings"
)

// hexToken matches a 6 or 3 digit hex color with an optional '#'.
// The trailing \b rejects 4 and 5 digit runs.
const hexToken = `#?(?:[0-9a-f]{6}|[0-9a-f]{3})\b`

var (
	sizeRe       = regexp.MustCompile(`(?i)(\d+)\s*x\s*(\d+)`)
	backgroundRe = regexp.MustCompile(`(?i)(background)((?:\s+` + hexToken + `)+)`)
	solidHexRe   = regexp.MustCompile(`(?i)solid\s+(` + hexToken + `)\s+background`)
	solidNameRe  = regexp.MustCompile(`(?i)solid\s+([a-z]+)\s+background`)
	foregroundRe = regexp.MustCompile(`(?i)(foreground)\s+(` + hexToken + `)`)
	doubleQuoted = regexp.MustCompile(`"([^"]+)"`)
	singleQuoted = regexp.MustCompile(`'([^']+)'`)
	styleRe      = regexp.MustCompile(`(?i)style\s+(flat|gradient)\b`)
	hexColorRe   = regexp.MustCompile(`(?i)^` + hexToken + `$`)
)

// IsHexToken reports whether c is a color the grammar accepts as a hex
// token: 6 or 3 hex digits with an optional leading '#'.
func IsHexToken(c string) bool {
	return hexColorRe.MatchString(c)
}

// Parse extracts an IconSpec from a description.
//
// Parse is total: it never fails and fills every field it cannot find with
// its default. Each field is searched for independently of the others.
func Parse(desc string) IconSpec {
	spec := Default()

	if w, h, ok := parseSize(desc); ok {
		spec.Width, spec.Height = w, h
	}

	spec.Background = parseBackground(desc)

	if c, ok := findForeground(desc); ok {
		spec.Foreground = desc[c.valueStart:c.end]
	}

	spec.Label, spec.HasLabel = parseLabel(desc)

	if st, ok := declaredStyle(desc); ok {
		spec.Style = st
	} else if len(spec.Background) > 1 {
		spec.Style = StyleGradient
	}

	return spec
}

// parseSize returns the dimensions of the first "<int> x <int>" token.
// A token with a zero or overflowing dimension is ignored.
func parseSize(desc string) (w, h int, ok bool) {
	m := sizeRe.FindStringSubmatch(desc)
	if m == nil {
		return 0, 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil || w <= 0 {
		return 0, 0, false
	}
	h, err = strconv.Atoi(m[2])
	if err != nil || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// parseBackground applies the background precedence: the "background"
// clause, then legacy "solid <hex> background", then "solid <name>
// background", then the default color.
func parseBackground(desc string) []string {
	if c, ok := findBackground(desc); ok {
		return strings.Fields(desc[c.valueStart:c.end])
	}
	if m := solidHexRe.FindStringSubmatch(desc); m != nil {
		return []string{m[1]}
	}
	if m := solidNameRe.FindStringSubmatch(desc); m != nil {
		return []string{m[1]}
	}
	return []string{DefaultBackground}
}

func parseLabel(desc string) (string, bool) {
	if m := doubleQuoted.FindStringSubmatch(desc); m != nil {
		return m[1], true
	}
	if m := singleQuoted.FindStringSubmatch(desc); m != nil {
		return m[1], true
	}
	return "", false
}

func declaredStyle(desc string) (Style, bool) {
	m := styleRe.FindStringSubmatch(desc)
	if m == nil {
		return StyleFlat, false
	}
	if strings.EqualFold(m[1], "gradient") {
		return StyleGradient, true
	}
	return StyleFlat, true
}

// clause is the byte span of a keyword clause inside a description.
//
//	background  #111 #222
//	^start    ^kwEnd^valueStart ^end
type clause struct {
	start      int
	kwEnd      int
	valueStart int
	end        int
}

// keyword returns the clause keyword exactly as written.
func (c clause) keyword(desc string) string {
	return desc[c.start:c.kwEnd]
}

func findBackground(desc string) (clause, bool) {
	m := backgroundRe.FindStringSubmatchIndex(desc)
	if m == nil {
		return clause{}, false
	}
	return clause{start: m[0], kwEnd: m[3], valueStart: m[4], end: m[1]}, true
}

func findForeground(desc string) (clause, bool) {
	m := foregroundRe.FindStringSubmatchIndex(desc)
	if m == nil {
		return clause{}, false
	}
	return clause{start: m[0], kwEnd: m[3], valueStart: m[4], end: m[1]}, true
}
