package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/extforge"
	"github.com/gogpu/extforge/bundle"
	"github.com/gogpu/extforge/internal/config"
)

// flagSet creates a command flag set writing help to stderr.
func (a *app) flagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: extforge %s %s\n\nFlags:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// common are the flags every command accepts.
type common struct {
	configPath string
	verbose    bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", config.DefaultFile, "configuration file")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")
}

// load parses args, sets up logging and reads the config file.
func (a *app) load(fs *flag.FlagSet, c *common, args []string) (config.Config, map[string]bool, error) {
	if err := fs.Parse(args); err != nil {
		return config.Config{}, nil, err
	}
	a.setupLogging(c.verbose)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return cfg, set, nil
}

// renderFlags are the renderer settings a command can override.
type renderFlags struct {
	maxDim int
	linear bool
	font   string
}

func (r *renderFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&r.maxDim, "max", extforge.DefaultMaxDimension, "largest icon width or height")
	fs.BoolVar(&r.linear, "linear", false, "blend gradients in linear light")
	fs.StringVar(&r.font, "font", "", "TrueType/OpenType label font")
}

// renderer applies explicitly set flags over cfg and builds a renderer.
func (r *renderFlags) renderer(cfg config.Render, set map[string]bool) (*extforge.Renderer, error) {
	if set["max"] {
		cfg.MaxDimension = r.maxDim
	}
	if set["linear"] {
		cfg.LinearBlending = r.linear
	}
	if set["font"] {
		cfg.Font = r.font
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return extforge.New(opts...), nil
}

// openInput opens name for reading; "-" is stdin, which must be a pipe.
func (a *app) openInput(name string) (io.ReadCloser, error) {
	if name == pipeName {
		if isTerminal(a.stdin) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return io.NopCloser(a.stdin), nil
	}
	f, err := os.Open(name) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, nil
}

// openOutput opens name for writing; "-" is stdout. When binary is set,
// stdout must not be a terminal.
func (a *app) openOutput(name string, binary bool) (io.WriteCloser, error) {
	if name == pipeName {
		if binary && isTerminal(a.stdout) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return nopWriteCloser{a.stdout}, nil
	}
	f, err := os.Create(name) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

// readBundle decodes the bundle JSON at name.
func (a *app) readBundle(name string) (*bundle.Bundle, error) {
	if name == "" {
		return nil, errors.New("-bundle is required")
	}
	r, err := a.openInput(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	b, err := bundle.Decode(r)
	if err != nil {
		f := bundle.ClassifyFailure(err)
		return nil, fmt.Errorf("%s: %w (%s)", f.Title, err, f.Tip)
	}
	return b, nil
}

// description returns the icon description from -desc, the positional
// arguments or -in, in that order.
func (a *app) description(desc, in string, rest []string) (string, error) {
	switch {
	case desc != "":
		return desc, nil
	case len(rest) > 0:
		return strings.Join(rest, " "), nil
	case in != "":
		r, err := a.openInput(in)
		if err != nil {
			return "", err
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return "", errors.New("no description: use -desc, -in or an argument")
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
