package bundle

import (
	"fmt"
	"maps"
	"path"
	"strings"
)

// Well-known names of the two long-form documents when they are written
// next to the extension files.
const (
	TestingGuideName   = "TESTING_GUIDE.md"
	SecurityReviewName = "SECURITY_REVIEW.md"
)

// Kind says how a file's content is to be interpreted.
type Kind string

const (
	// KindText is source text written out as-is.
	KindText Kind = "text"
	// KindBinaryDescription is an icon description rendered to PNG.
	KindBinaryDescription Kind = "binary-description"
)

// SourceFile is one generated file. Path is a unique slash-separated
// virtual path and the file's stable key.
type SourceFile struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"type"`
	Content string `json:"content"`
}

// Ext returns the lower-cased extension of the file's final path segment.
func (f SourceFile) Ext() string {
	return strings.ToLower(path.Ext(f.Path))
}

// Name returns the file's final path segment.
func (f SourceFile) Name() string {
	return path.Base(f.Path)
}

// IsMarkup reports whether f is an HTML document.
func (f SourceFile) IsMarkup() bool {
	ext := f.Ext()
	return f.Kind != KindBinaryDescription && (ext == ".html" || ext == ".htm")
}

// IsStylesheet reports whether f is a CSS stylesheet.
func (f SourceFile) IsStylesheet() bool {
	return f.Kind != KindBinaryDescription && f.Ext() == ".css"
}

// IsIcon reports whether f holds an icon description.
func (f SourceFile) IsIcon() bool {
	return f.Kind == KindBinaryDescription
}

// Bundle is an ordered set of generated files plus two long-form markdown
// documents.
//
// A Bundle is not safe for concurrent mutation; callers that share one
// across goroutines guard it themselves.
type Bundle struct {
	files          []SourceFile
	index          map[string]int
	TestingGuide   string
	SecurityReview string
}

// New builds a bundle from files in order.
func New(files []SourceFile, testingGuide, securityReview string) (*Bundle, error) {
	b := &Bundle{
		files:          make([]SourceFile, 0, len(files)),
		index:          make(map[string]int, len(files)),
		TestingGuide:   testingGuide,
		SecurityReview: securityReview,
	}
	for i, f := range files {
		if f.Path == "" {
			return nil, fmt.Errorf("%w (file %d)", ErrEmptyPath, i)
		}
		if _, dup := b.index[f.Path]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePath, f.Path)
		}
		if f.Kind == "" {
			f.Kind = KindText
		}
		b.index[f.Path] = len(b.files)
		b.files = append(b.files, f)
	}
	return b, nil
}

// Files returns a copy of the files in bundle order.
func (b *Bundle) Files() []SourceFile {
	out := make([]SourceFile, len(b.files))
	copy(out, b.files)
	return out
}

// Clone returns an independent copy of b.
func (b *Bundle) Clone() *Bundle {
	return &Bundle{
		files:          b.Files(),
		index:          maps.Clone(b.index),
		TestingGuide:   b.TestingGuide,
		SecurityReview: b.SecurityReview,
	}
}

// Len returns the number of files.
func (b *Bundle) Len() int {
	return len(b.files)
}

// File returns the file stored under p.
func (b *Bundle) File(p string) (SourceFile, bool) {
	i, ok := b.index[p]
	if !ok {
		return SourceFile{}, false
	}
	return b.files[i], true
}

// SetContent replaces the content of the file stored under p.
func (b *Bundle) SetContent(p, content string) error {
	i, ok := b.index[p]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPath, p)
	}
	b.files[i].Content = content
	return nil
}

// Guide returns the long-form document with the given well-known name.
func (b *Bundle) Guide(name string) (string, bool) {
	switch name {
	case TestingGuideName:
		return b.TestingGuide, true
	case SecurityReviewName:
		return b.SecurityReview, true
	}
	return "", false
}
