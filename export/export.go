package export

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gogpu/extforge"
	"github.com/gogpu/extforge/bundle"
	"github.com/gogpu/extforge/internal/parallel"
)

// Output is one exported file.
type Output struct {
	Path     string // slash-separated path inside the archive
	Data     []byte
	Rendered bool // Data is a PNG rendered from a description
}

// Skip records a file left out of an export.
type Skip struct {
	Path string
	Err  error
}

// Result is the outcome of exporting a bundle.
type Result struct {
	Files   []Output // bundle order, skipped files omitted, guides last
	Skipped []Skip   // bundle order
	ModTime time.Time
}

// Exporter renders bundles to files.
type Exporter struct {
	renderer *extforge.Renderer
	workers  int
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRenderer sets the renderer used for icon descriptions.
func WithRenderer(r *extforge.Renderer) Option {
	return func(e *Exporter) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithWorkers bounds the number of icons rendered at once.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		e.workers = n
	}
}

// WithClock sets the time source for archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{
		renderer: extforge.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export produces every file of b.
//
// A file whose icon cannot be rendered is recorded in Result.Skipped.
// Export fails only when ctx is done or an error other than
// extforge.ErrRenderUnavailable occurs.
func (e *Exporter) Export(ctx context.Context, b *bundle.Bundle) (*Result, error) {
	files := b.Files()
	data := make([][]byte, len(files))
	errs := make([]error, len(files))

	pool := parallel.NewPool(e.workers)
	defer pool.Close()

	err := pool.Run(ctx, len(files), func(_ context.Context, i int) {
		data[i], errs[i] = e.RenderOne(files[i], files[i].Content)
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	res := &Result{
		Files:   make([]Output, 0, len(files)+2),
		ModTime: e.now(),
	}
	for i, f := range files {
		if err := errs[i]; err != nil {
			if !errors.Is(err, extforge.ErrRenderUnavailable) {
				return nil, fmt.Errorf("export: %s: %w", f.Path, err)
			}
			extforge.Logger().Warn("export: skipping icon", "path", f.Path, "err", err)
			res.Skipped = append(res.Skipped, Skip{Path: f.Path, Err: err})
			continue
		}
		res.Files = append(res.Files, Output{Path: f.Path, Data: data[i], Rendered: f.IsIcon()})
	}
	res.Files = append(res.Files,
		Output{Path: bundle.TestingGuideName, Data: []byte(b.TestingGuide)},
		Output{Path: bundle.SecurityReviewName, Data: []byte(b.SecurityReview)},
	)

	extforge.Logger().Info("export complete",
		"files", len(res.Files), "skipped", len(res.Skipped))
	return res, nil
}

// RenderOne returns the download bytes of a single file whose current
// content is content: the text itself, or the rendered PNG for an icon
// description.
func (e *Exporter) RenderOne(f bundle.SourceFile, content string) ([]byte, error) {
	if !f.IsIcon() {
		return []byte(content), nil
	}
	return e.renderer.RenderDescription(content)
}

// DownloadName is the file name a single-file download of p is saved as.
func DownloadName(p string) string {
	name := path.Base(p)
	if name == "." || name == "/" || name == "" {
		return "download"
	}
	return name
}

// entryName confines a bundle path to the archive root.
func entryName(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
