package preview

import (
	"regexp"
	"strings"

	"github.com/gogpu/extforge"
	"github.com/gogpu/extforge/bundle"
)

// PlaceholderNotice is the document shown when a stylesheet is selected but
// the bundle has no markup file to host it.
const PlaceholderNotice = "<html><body><p style='padding: 20px; font-family: sans-serif;'>" +
	"No HTML file found to preview this CSS.</p></body></html>"

// SandboxPolicy is a Content-Security-Policy for serving composed documents:
// no scripts, no network, inline styles and data images only.
const SandboxPolicy = "sandbox; default-src 'none'; style-src 'unsafe-inline'; img-src data:"

// preferredMarkup is the markup file chosen first when previewing a
// stylesheet.
const preferredMarkup = "popup.html"

// Inlined records a stylesheet link that was replaced by a <style> element.
type Inlined struct {
	Href string // href as written in the document
	Path string // bundle path of the file whose content was inlined
	Live bool   // content came from the editor, not the bundle
}

// Result is a composed document and what happened to its stylesheet links.
type Result struct {
	HTML       string
	Markup     string    // bundle path of the host document, "" if none
	Inlined    []Inlined // links replaced, in document order
	Unresolved []string  // hrefs left as-is, in document order
}

// Compose builds the preview document for selected, whose current editor
// content is edited. siblings is the bundle the selection belongs to, in
// bundle order; it may include selected itself.
//
// A markup selection hosts its own links. A stylesheet selection is shown
// through popup.html when present, otherwise through the first markup file;
// with no markup at all the result is PlaceholderNotice. Any other selection
// composes to "".
func Compose(selected bundle.SourceFile, edited string, siblings []bundle.SourceFile) string {
	return ComposeResult(selected, edited, siblings).HTML
}

// ComposeResult is Compose with a record of every link it handled.
func ComposeResult(selected bundle.SourceFile, edited string, siblings []bundle.SourceFile) Result {
	switch {
	case selected.IsMarkup():
		return inlineStyles(selected.Path, edited, selected, edited, siblings)
	case selected.IsStylesheet():
		host, ok := hostMarkup(siblings)
		if !ok {
			extforge.Logger().Debug("preview: no markup for stylesheet", "path", selected.Path)
			return Result{HTML: PlaceholderNotice}
		}
		return inlineStyles(host.Path, host.Content, selected, edited, siblings)
	}
	return Result{}
}

// hostMarkup picks the document a stylesheet is previewed in.
func hostMarkup(siblings []bundle.SourceFile) (bundle.SourceFile, bool) {
	var first bundle.SourceFile
	found := false
	for _, f := range siblings {
		if !f.IsMarkup() {
			continue
		}
		if f.Name() == preferredMarkup {
			return f, true
		}
		if !found {
			first, found = f, true
		}
	}
	return first, found
}

// inlineStyles replaces each resolvable stylesheet link in doc, hosted at
// docPath, with an inline <style> element.
//
// A link whose final segment names the selected stylesheet takes the live
// edited content, whatever directory it points into.
func inlineStyles(docPath, doc string, selected bundle.SourceFile, edited string, siblings []bundle.SourceFile) Result {
	res := Result{Markup: docPath}

	links := findStylesheetLinks(doc)
	if len(links) == 0 {
		res.HTML = doc
		return res
	}

	var sb strings.Builder
	sb.Grow(len(doc))
	last := 0
	for _, l := range links {
		sb.WriteString(doc[last:l.Start])
		last = l.End

		css, in, ok := lookupStyle(docPath, l.Href, selected, edited, siblings)
		if !ok {
			res.Unresolved = append(res.Unresolved, l.Href)
			sb.WriteString(doc[l.Start:l.End])
			continue
		}
		res.Inlined = append(res.Inlined, in)
		sb.WriteString("<style>")
		sb.WriteString(escapeStyle(css))
		sb.WriteString("</style>")
	}
	sb.WriteString(doc[last:])

	res.HTML = sb.String()
	extforge.Logger().Debug("preview composed",
		"markup", docPath, "inlined", len(res.Inlined), "unresolved", len(res.Unresolved))
	return res
}

func lookupStyle(docPath, href string, selected bundle.SourceFile, edited string, siblings []bundle.SourceFile) (string, Inlined, bool) {
	if selected.IsStylesheet() && !isExternal(href) && lastSegment(hrefPath(href)) == selected.Name() {
		return edited, Inlined{Href: href, Path: selected.Path, Live: true}, true
	}
	f, ok := resolveSibling(docPath, href, siblings)
	if !ok {
		return "", Inlined{}, false
	}
	return f.Content, Inlined{Href: href, Path: f.Path}, true
}

var styleCloseRe = regexp.MustCompile(`(?i)</style`)

// escapeStyle keeps stylesheet text from closing the element it is
// inlined into.
func escapeStyle(css string) string {
	return styleCloseRe.ReplaceAllStringFunc(css, func(m string) string {
		return `<\/` + m[2:]
	})
}
