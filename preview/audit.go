package preview

import (
	"io"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gogpu/extforge"
)

// FindingKind classifies an audit finding.
type FindingKind string

const (
	// UnresolvedLink is a stylesheet link left in the document.
	UnresolvedLink FindingKind = "unresolved-link"
	// ExternalImport is an @import of an off-bundle stylesheet.
	ExternalImport FindingKind = "external-import"
	// ExternalURL is a url(...) value pointing off-bundle.
	ExternalURL FindingKind = "external-url"
)

// Finding is a reference in a composed document that would need the
// network, or that the composer could not satisfy.
type Finding struct {
	Kind FindingKind
	Ref  string
}

var urlRe = regexp.MustCompile(`url\(\s*['"]?([^'")\s]+)['"]?\s*\)`)

// importRe pulls the target out of an @import prelude written either as a
// bare string or as url(...).
var importRe = regexp.MustCompile(`^\s*(?:url\(\s*)?['"]?([^'")\s;]+)`)

// Audit lists the references in a composed document that a sandboxed
// preview will refuse to load: remaining stylesheet links, and @import
// rules and url(...) values with a scheme or a protocol-relative prefix,
// in <style> elements and style attributes. data: URLs are not reported.
func Audit(doc string) []Finding {
	var out []Finding

	z := html.NewTokenizer(strings.NewReader(doc))
	inStyle := false
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				extforge.Logger().Debug("preview: audit stopped early", "err", z.Err())
			}
			return out

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			a := atom.Lookup(name)
			inStyle = a == atom.Style && tt == html.StartTagToken

			var rel, href, style string
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "rel":
					rel = string(val)
				case "href":
					href = strings.TrimSpace(string(val))
				case "style":
					style = string(val)
				}
			}
			if a == atom.Link && href != "" && hasToken(rel, "stylesheet") {
				out = append(out, Finding{Kind: UnresolvedLink, Ref: href})
			}
			if style != "" {
				out = append(out, auditDeclarations(style)...)
			}

		case html.EndTagToken:
			inStyle = false

		case html.TextToken:
			if inStyle {
				out = append(out, auditStylesheet(string(z.Text()))...)
			}
		}
	}
}

func auditStylesheet(text string) []Finding {
	sheet, err := parser.Parse(text)
	if err != nil {
		extforge.Logger().Debug("preview: unparsable style element", "err", err)
		return nil
	}
	var out []Finding
	for _, r := range sheet.Rules {
		out = append(out, auditRule(r)...)
	}
	return out
}

func auditRule(r *css.Rule) []Finding {
	var out []Finding
	if r.Kind == css.AtRule && strings.EqualFold(strings.TrimPrefix(r.Name, "@"), "import") {
		if m := importRe.FindStringSubmatch(r.Prelude); m != nil && isExternal(m[1]) {
			out = append(out, Finding{Kind: ExternalImport, Ref: m[1]})
		}
	}
	for _, d := range r.Declarations {
		out = append(out, externalURLs(d.Value)...)
	}
	for _, nested := range r.Rules {
		out = append(out, auditRule(nested)...)
	}
	return out
}

func auditDeclarations(style string) []Finding {
	decls, err := parser.ParseDeclarations(style)
	if err != nil {
		extforge.Logger().Debug("preview: unparsable style attribute", "err", err)
		return nil
	}
	var out []Finding
	for _, d := range decls {
		out = append(out, externalURLs(d.Value)...)
	}
	return out
}

func externalURLs(value string) []Finding {
	var out []Finding
	for _, m := range urlRe.FindAllStringSubmatch(value, -1) {
		ref := m[1]
		if isExternal(ref) && !strings.HasPrefix(strings.ToLower(ref), "data:") {
			out = append(out, Finding{Kind: ExternalURL, Ref: ref})
		}
	}
	return out
}
