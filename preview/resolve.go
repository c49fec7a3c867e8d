package preview

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gogpu/extforge/bundle"
)

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// isExternal reports whether ref points outside the bundle: it has a URL
// scheme or is protocol-relative.
func isExternal(ref string) bool {
	return strings.HasPrefix(ref, "//") || schemeRe.MatchString(ref)
}

// hrefPath strips the query and fragment from href and unescapes it.
func hrefPath(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if p, err := url.PathUnescape(href); err == nil {
		href = p
	}
	return href
}

// lastSegment returns the final path segment of a cleaned href path.
func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// resolveHref resolves href against the directory of the document at
// docPath, giving a bundle path.
func resolveHref(docPath, href string) string {
	p := hrefPath(href)
	if strings.HasPrefix(p, "/") {
		return strings.TrimPrefix(path.Clean(p), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(docPath), p), "./")
}

// resolveSibling finds the text file an href in the document at docPath
// refers to.
//
// A file whose path equals the resolved href wins. Otherwise, among files
// with the same final segment, the one sharing the longest trailing run of
// path segments with the resolved href wins, the first in bundle order on a
// tie.
func resolveSibling(docPath, href string, siblings []bundle.SourceFile) (bundle.SourceFile, bool) {
	if isExternal(href) {
		return bundle.SourceFile{}, false
	}
	target := resolveHref(docPath, href)
	name := lastSegment(target)
	if name == "" || name == "." || name == ".." {
		return bundle.SourceFile{}, false
	}

	best, bestScore := -1, 0
	for i, f := range siblings {
		if f.IsIcon() {
			continue
		}
		if f.Path == target {
			return f, true
		}
		if lastSegment(f.Path) != name {
			continue
		}
		if score := commonSuffix(f.Path, target); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return bundle.SourceFile{}, false
	}
	return siblings[best], true
}

// commonSuffix counts the trailing path segments a and b share.
func commonSuffix(a, b string) int {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	n := 0
	for n < len(as) && n < len(bs) && as[len(as)-1-n] == bs[len(bs)-1-n] {
		n++
	}
	return n
}
