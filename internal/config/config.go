// Package config loads the extforge.toml file shared by the CLI and the
// preview server.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/extforge"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "extforge.toml"

// Config is the contents of an extforge.toml file.
type Config struct {
	Render Render `toml:"render"`
	Server Server `toml:"server"`
	Export Export `toml:"export"`
}

// Render configures icon rasterization.
type Render struct {
	MaxDimension   int    `toml:"max_dimension"`
	LinearBlending bool   `toml:"linear_blending"`
	Font           string `toml:"font"`        // TrueType/OpenType file for labels
	Compression    string `toml:"compression"` // default, none, speed or best
}

// Server configures the preview server.
type Server struct {
	Addr      string `toml:"addr"`
	Watch     bool   `toml:"watch"`
	IconCache int    `toml:"icon_cache"` // rendered icons kept in memory
}

// Export configures bundle export.
type Export struct {
	Workers int    `toml:"workers"`
	Archive string `toml:"archive"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Render: Render{
			MaxDimension: extforge.DefaultMaxDimension,
			Compression:  "default",
		},
		Server: Server{Addr: "127.0.0.1:8080", IconCache: 256},
		Export: Export{Archive: "chrome-extension.zip"},
	}
}

// Load reads the file at path over the defaults. A missing file is not an
// error when path is DefaultFile.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	extforge.Logger().Debug("config loaded", "path", path)
	return cfg, nil
}

// Decode reads TOML from r into cfg. Keys cfg does not know are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var se *toml.StrictMissingError
		if errors.As(err, &se) {
			return fmt.Errorf("unknown keys:\n%s", se.String())
		}
		return err
	}
	return nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// CompressionLevel maps the Compression setting to a PNG level.
func (r Render) CompressionLevel() (png.CompressionLevel, error) {
	switch strings.ToLower(r.Compression) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return 0, fmt.Errorf("config: unknown compression %q", r.Compression)
}

// Options builds renderer options, reading the font file if one is set.
func (r Render) Options() ([]extforge.RenderOption, error) {
	level, err := r.CompressionLevel()
	if err != nil {
		return nil, err
	}
	opts := []extforge.RenderOption{
		extforge.WithMaxDimension(r.MaxDimension),
		extforge.WithCompression(level),
	}
	if r.LinearBlending {
		opts = append(opts, extforge.WithLinearBlending())
	}
	if r.Font != "" {
		ttf, err := os.ReadFile(r.Font)
		if err != nil {
			return nil, fmt.Errorf("config: font: %w", err)
		}
		opts = append(opts, extforge.WithFont(ttf))
	}
	return opts, nil
}
