package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/extforge"
	"github.com/gogpu/extforge/bundle"
	"github.com/gogpu/extforge/export"
	"github.com/gogpu/extforge/iconspec"
	"github.com/gogpu/extforge/preview"
	"github.com/gogpu/extforge/server"
)

func (a *app) render(args []string) error {
	var (
		c    common
		rf   renderFlags
		fs   = a.flagSet("render", "[flags] [description]")
		desc = fs.String("desc", "", "icon description")
		in   = fs.String("in", "", "file holding the description (- for stdin)")
		out  = fs.String("out", "icon.png", "destination PNG (- for stdout)")
	)
	c.register(fs)
	rf.register(fs)
	cfg, set, err := a.load(fs, &c, args)
	if err != nil {
		return err
	}

	d, err := a.description(*desc, *in, fs.Args())
	if err != nil {
		return err
	}
	r, err := rf.renderer(cfg.Render, set)
	if err != nil {
		return err
	}

	spec := iconspec.Parse(d)
	data, err := r.Render(spec)
	if err != nil {
		return err
	}

	w, err := a.openOutput(*out, true)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if *out != pipeName {
		a.ok("%s (%dx%d, %d bytes)", *out, spec.Width, spec.Height, len(data))
	}
	return nil
}

func (a *app) newDesc(args []string) error {
	var (
		c     common
		fs    = a.flagSet("new", "[flags]")
		size  = fs.String("size", fmt.Sprintf("%dx%d", iconspec.DefaultWidth, iconspec.DefaultHeight), "icon size WxH")
		bg    = fs.String("bg", iconspec.DefaultBackground, "background colors, comma or space separated")
		fg    = fs.String("fg", iconspec.DefaultForeground, "label color")
		label = fs.String("label", "", "label text")
		style = fs.String("style", "", "flat or gradient (default from the color count)")
	)
	c.register(fs)
	if _, _, err := a.load(fs, &c, args); err != nil {
		return err
	}

	spec := iconspec.Default()
	if _, err := fmt.Sscanf(strings.ToLower(*size), "%dx%d", &spec.Width, &spec.Height); err != nil ||
		spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("invalid -size %q", *size)
	}
	spec.Background = strings.FieldsFunc(*bg, func(r rune) bool { return r == ',' || r == ' ' })
	if len(spec.Background) == 0 {
		return errors.New("-bg needs at least one color")
	}
	spec.Foreground = *fg
	spec.Label, spec.HasLabel = *label, *label != ""

	switch strings.ToLower(*style) {
	case "":
		if spec.IsGradient() {
			spec.Style = iconspec.StyleGradient
		}
	case "flat":
		spec.Style = iconspec.StyleFlat
	case "gradient":
		spec.Style = iconspec.StyleGradient
	default:
		return fmt.Errorf("invalid -style %q", *style)
	}

	_, err := fmt.Fprintln(a.stdout, iconspec.Format(spec))
	return err
}

func (a *app) mutate(args []string) error {
	var (
		c     common
		fs    = a.flagSet("mutate", "-op NAME [flags] [description]")
		desc  = fs.String("desc", "", "icon description")
		in    = fs.String("in", "", "file holding the description (- for stdin)")
		op    = fs.String("op", "", "set-background, add-stop, remove-background or set-foreground")
		index = fs.Int("index", 0, "background color index")
		color = fs.String("color", "", "new color")
	)
	c.register(fs)
	if _, _, err := a.load(fs, &c, args); err != nil {
		return err
	}

	d, err := a.description(*desc, *in, fs.Args())
	if err != nil {
		return err
	}
	o, err := iconspec.NewOp(*op, *index, *color)
	if err != nil {
		return err
	}

	out, changed := iconspec.Apply(d, o)
	if !changed {
		a.warn("%s did not apply; description unchanged", *op)
	}
	_, err = fmt.Fprintln(a.stdout, out)
	return err
}

func (a *app) compose(args []string) error {
	var (
		c     common
		fs    = a.flagSet("compose", "-bundle FILE -path PATH [flags]")
		bfile = fs.String("bundle", "", "bundle JSON (- for stdin)")
		sel   = fs.String("path", "", "selected file")
		out   = fs.String("out", pipeName, "destination HTML (- for stdout)")
		audit = fs.Bool("audit", false, "report references the sandbox will block")
	)
	c.register(fs)
	if _, _, err := a.load(fs, &c, args); err != nil {
		return err
	}

	b, err := a.readBundle(*bfile)
	if err != nil {
		return err
	}
	f, ok := b.File(*sel)
	if !ok {
		return fmt.Errorf("no file %q in bundle", *sel)
	}

	doc := preview.Compose(f, f.Content, b.Files())
	if doc == "" {
		return fmt.Errorf("%s has no preview", f.Path)
	}

	w, err := a.openOutput(*out, false)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, doc); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	if *audit {
		for _, fd := range preview.Audit(doc) {
			a.warn("%s: %s", fd.Kind, fd.Ref)
		}
	}
	return nil
}

func (a *app) export(args []string) error {
	var (
		c       common
		rf      renderFlags
		fs      = a.flagSet("export", "-bundle FILE [flags]")
		bfile   = fs.String("bundle", "", "bundle JSON (- for stdin)")
		out     = fs.String("out", "", "zip archive to write (default from config)")
		dir     = fs.String("dir", "", "write a directory tree instead of an archive")
		workers = fs.Int("workers", 0, "icons rendered at once (0 = all CPUs)")
	)
	c.register(fs)
	rf.register(fs)
	cfg, set, err := a.load(fs, &c, args)
	if err != nil {
		return err
	}
	if !set["workers"] {
		*workers = cfg.Export.Workers
	}
	if *out == "" {
		*out = cfg.Export.Archive
	}

	b, err := a.readBundle(*bfile)
	if err != nil {
		return err
	}
	r, err := rf.renderer(cfg.Render, set)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := export.New(export.WithRenderer(r), export.WithWorkers(*workers)).Export(ctx, b)
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		a.warn("skipped %s: %v", s.Path, s.Err)
	}

	if *dir != "" {
		if err := export.WriteDir(*dir, res); err != nil {
			return err
		}
		a.ok("wrote %d files to %s", len(res.Files), *dir)
		return nil
	}
	if err := export.SaveZip(*out, res); err != nil {
		return err
	}
	a.ok("wrote %s (%d files)", *out, len(res.Files))
	return nil
}

func (a *app) serve(args []string) error {
	var (
		c     common
		rf    renderFlags
		fs    = a.flagSet("serve", "-bundle FILE [flags]")
		bfile = fs.String("bundle", "", "bundle JSON")
		addr  = fs.String("addr", "", "listen address (default from config)")
		watch = fs.Bool("watch", false, "reload the bundle when the file changes")
	)
	c.register(fs)
	rf.register(fs)
	cfg, set, err := a.load(fs, &c, args)
	if err != nil {
		return err
	}
	if *addr == "" {
		*addr = cfg.Server.Addr
	}
	if !set["watch"] {
		*watch = cfg.Server.Watch
	}
	if *bfile == pipeName && *watch {
		return errors.New("-watch needs a bundle file, not stdin")
	}

	b, err := a.readBundle(*bfile)
	if err != nil {
		return err
	}
	r, err := rf.renderer(cfg.Render, set)
	if err != nil {
		return err
	}
	workers := cfg.Export.Workers

	srv := server.New(b,
		server.WithRenderer(r),
		server.WithExporter(export.New(export.WithRenderer(r), export.WithWorkers(workers))),
		server.WithIconCache(cfg.Server.IconCache),
	)
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		return err
	}
	hs := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	if *watch {
		go func() {
			if err := srv.Watch(ctx, *bfile); err != nil {
				a.fail(err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()
	a.ok("serving %s on http://%s", *bfile, ln.Addr())
	extforge.Logger().Info("server started", "addr", ln.Addr().String(), "files", b.Len())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *app) prompt(args []string) error {
	var (
		c    common
		fs   = a.flagSet("prompt", "[flags] [prompt]")
		text = fs.String("text", "", "prompt text")
		in   = fs.String("in", "", "file holding the prompt (- for stdin)")
	)
	c.register(fs)
	if _, _, err := a.load(fs, &c, args); err != nil {
		return err
	}

	p, err := a.description(*text, *in, fs.Args())
	if err != nil {
		return err
	}
	pa := bundle.AnalyzePrompt(p)
	if _, err := fmt.Fprintf(a.stdout, "%s (%d chars, %.0f%%)\n", pa.Complexity, pa.Length, pa.Percent); err != nil {
		return err
	}
	if pa.Warning != "" {
		a.warn("%s", pa.Warning)
	}
	return nil
}

func (a *app) version([]string) error {
	_, err := fmt.Fprintln(a.stdout, "extforge", extforge.Version)
	return err
}
