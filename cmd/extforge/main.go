// Command extforge renders, edits, previews and packages generated browser
// extension bundles.
//
// Usage:
//
//	extforge <command> [flags]
//
// Commands:
//
//	render   render an icon description to PNG
//	new      print a canonical icon description
//	mutate   apply one edit to an icon description
//	compose  build the preview document for a bundle file
//	export   write a bundle as a zip archive or a directory
//	serve    run the local preview server
//	prompt   rate a generation prompt by length
//	version  print the version
//
// Flags override the settings in extforge.toml (see -config).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/muesli/termenv"

	"github.com/gogpu/extforge"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

const helpBanner = `extforge %s

Render, edit, preview and package generated browser extensions.

Usage:
  extforge <command> [flags]

Commands:
`

// errUsage signals that usage has already been printed.
var errUsage = errors.New("usage")

// app carries the process streams so commands can be run from tests.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	ui     *termenv.Output
}

type command struct {
	summary string
	run     func(a *app, args []string) error
}

var commands = map[string]command{
	"render":  {"render an icon description to PNG", (*app).render},
	"new":     {"print a canonical icon description", (*app).newDesc},
	"mutate":  {"apply one edit to an icon description", (*app).mutate},
	"compose": {"build the preview document for a bundle file", (*app).compose},
	"export":  {"write a bundle as a zip archive or a directory", (*app).export},
	"serve":   {"run the local preview server", (*app).serve},
	"prompt":  {"rate a generation prompt by length", (*app).prompt},
	"version": {"print the version", (*app).version},
}

func main() {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		ui:     termenv.NewOutput(os.Stderr),
	}
	os.Exit(a.main(os.Args[1:]))
}

// main runs the command named by args[0] and returns the exit status.
func (a *app) main(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		a.usage()
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.fail(fmt.Errorf("unknown command %q", args[0]))
		a.usage()
		return 2
	}
	if err := cmd.run(a, args[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			return 2
		}
		a.fail(err)
		return 1
	}
	return 0
}

func (a *app) usage() {
	fmt.Fprintf(a.stderr, helpBanner, extforge.Version)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.stderr, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(a.stderr, "\nRun 'extforge <command> -h' for command flags.")
}

// setupLogging sends library logs to stderr.
func (a *app) setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	extforge.SetLogger(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})))
}

func (a *app) ok(format string, args ...any) {
	a.status(termenv.ANSIGreen, "ok", format, args...)
}

func (a *app) warn(format string, args ...any) {
	a.status(termenv.ANSIYellow, "warning", format, args...)
}

func (a *app) fail(err error) {
	a.status(termenv.ANSIRed, "error", "%v", err)
}

func (a *app) status(c termenv.ANSIColor, tag, format string, args ...any) {
	label := a.ui.String(tag + ":").Foreground(c).Bold()
	fmt.Fprintf(a.stderr, "%s %s\n", label, fmt.Sprintf(format, args...))
}
