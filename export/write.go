package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/extforge"
)

// DefaultArchiveName is the file name an exported archive is saved as.
const DefaultArchiveName = "chrome-extension.zip"

// WriteZip writes res as a zip archive in result order.
func WriteZip(w io.Writer, res *Result) error {
	zw := zip.NewWriter(w)
	for _, f := range res.Files {
		name := entryName(f.Path)
		if name == "" {
			continue
		}
		hdr := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: res.ModTime,
		}
		if f.Rendered {
			// PNG data is already compressed.
			hdr.Method = zip.Store
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("export: zip %s: %w", name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return fmt.Errorf("export: zip %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("export: zip: %w", err)
	}
	return nil
}

// SaveZip writes res as a zip archive at name.
func SaveZip(name string, res *Result) error {
	f, err := os.Create(name) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteZip(f, res); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteDir writes res as a directory tree rooted at dir. Paths that would
// climb out of dir are confined to it.
func WriteDir(dir string, res *Result) error {
	for _, f := range res.Files {
		name := entryName(f.Path)
		if name == "" {
			continue
		}
		dst := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := os.WriteFile(dst, f.Data, 0o644); err != nil { //nolint:gosec // exported extension files are world-readable
			return fmt.Errorf("export: %w", err)
		}
		extforge.Logger().Debug("export: wrote file", "path", dst, "bytes", len(f.Data))
	}
	return nil
}
