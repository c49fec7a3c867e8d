package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/extforge"
	"github.com/gogpu/extforge/bundle"
)

// Watch reloads the bundle from the JSON file at name whenever it changes
// on disk, until ctx is done. A file that fails to decode is logged and the
// current bundle kept.
//
// The containing directory is watched rather than the file, so editors that
// save by renaming a temporary file are seen too.
func (s *Server) Watch(ctx context.Context, name string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: watch: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(name)); err != nil {
		return fmt.Errorf("server: watch %s: %w", name, err)
	}
	base := filepath.Base(name)
	extforge.Logger().Info("watching bundle", "path", name)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			s.reload(name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			extforge.Logger().Warn("server: watch error", "err", err)
		}
	}
}

func (s *Server) reload(name string) {
	f, err := os.Open(name) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		extforge.Logger().Warn("server: reload", "path", name, "err", err)
		return
	}
	defer f.Close()

	b, err := bundle.Decode(f)
	if err != nil {
		extforge.Logger().Warn("server: reload", "path", name, "err", err)
		return
	}
	s.SetBundle(b)
	extforge.Logger().Info("bundle reloaded", "path", name, "files", b.Len())
}
