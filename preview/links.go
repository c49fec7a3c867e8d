package preview

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gogpu/extforge"
)

// stylesheetLink is a <link rel="stylesheet" href="..."> tag found in a
// document, with its byte span.
type stylesheetLink struct {
	Start, End int
	Href       string
}

// findStylesheetLinks returns every stylesheet link tag in doc, in document
// order. Attribute order and case do not matter; tags inside comments,
// scripts and style elements are not links.
func findStylesheetLinks(doc string) []stylesheetLink {
	var links []stylesheetLink

	z := html.NewTokenizer(strings.NewReader(doc))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				extforge.Logger().Debug("preview: tokenizer stopped early", "offset", offset, "err", z.Err())
			}
			return links
		}

		start := offset
		offset += len(z.Raw())

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		name, hasAttr := z.TagName()
		if atom.Lookup(name) != atom.Link || !hasAttr {
			continue
		}

		var rel, href string
		var hasHref bool
		for {
			key, val, more := z.TagAttr()
			switch string(key) {
			case "rel":
				rel = string(val)
			case "href":
				href, hasHref = strings.TrimSpace(string(val)), true
			}
			if !more {
				break
			}
		}
		if hasHref && href != "" && hasToken(rel, "stylesheet") {
			links = append(links, stylesheetLink{Start: start, End: offset, Href: href})
		}
	}
}

// hasToken reports whether the space-separated list contains tok, ignoring
// ASCII case.
func hasToken(list, tok string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, tok) {
			return true
		}
	}
	return false
}
