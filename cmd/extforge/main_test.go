package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(stdin string) (*app, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &app{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: &stderr,
		ui:     termenv.NewOutput(&stderr, termenv.WithProfile(termenv.Ascii)),
	}, &stdout, &stderr
}

// noConfig points commands at a config file that does not exist.
func noConfig(t *testing.T) string {
	t.Helper()
	t.Chdir(t.TempDir())
	return "-config=extforge.toml"
}

const testBundle = `{"files": [
  {"path": "popup.html", "type": "text", "content": "<link rel=\"stylesheet\" href=\"style.css\"><p>hi</p>"},
  {"path": "style.css", "type": "text", "content": "p{color:red}"},
  {"path": "icons/icon16.png", "type": "binary-description", "content": "PNG icon, 16x16, background #000000"}
], "testing_guide": "# T", "security_review": "# S"}`

func TestNew(t *testing.T) {
	a, stdout, _ := newTestApp("")
	code := a.main([]string{"new", noConfig(t), "-size", "32x16", "-bg", "#111111,#222222", "-label", "EX"})
	require.Equal(t, 0, code)
	assert.Equal(t,
		`PNG icon, 32x16, style gradient, background #111111 #222222, foreground #FFFFFF, text "EX" centered.`+"\n",
		stdout.String())
}

func TestNew_BadSize(t *testing.T) {
	a, _, _ := newTestApp("")
	assert.Equal(t, 1, a.main([]string{"new", noConfig(t), "-size", "big"}))
}

func TestMutate(t *testing.T) {
	a, stdout, stderr := newTestApp("")
	code := a.main([]string{"mutate", noConfig(t), "-op", "set-foreground", "-color", "#000000",
		"PNG icon, 16x16, background #FFFFFF, foreground #FFFFFF"})
	require.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "PNG icon, 16x16, background #FFFFFF, foreground #000000\n", stdout.String())
}

func TestMutate_NotApplied(t *testing.T) {
	a, stdout, stderr := newTestApp("PNG icon, 16x16\n")
	code := a.main([]string{"mutate", noConfig(t), "-op", "remove-background", "-in", "-"})
	require.Equal(t, 0, code)
	assert.Equal(t, "PNG icon, 16x16\n", stdout.String())
	assert.Contains(t, stderr.String(), "warning:")
}

func TestRender(t *testing.T) {
	cfg := noConfig(t)
	a, _, stderr := newTestApp("")
	code := a.main([]string{"render", cfg, "-out", "icon.png", "-desc", `PNG icon, 8x4, background #FF0000, text "A"`})
	require.Equal(t, 0, code, stderr.String())

	f, err := os.Open("icon.png")
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestRender_Pipe(t *testing.T) {
	a, stdout, _ := newTestApp("")
	require.Equal(t, 0, a.main([]string{"render", noConfig(t), "-out", "-", "PNG", "icon,", "2x2"}))
	_, err := png.Decode(stdout)
	assert.NoError(t, err, "stdout is not a PNG")
}

func TestRender_TooLarge(t *testing.T) {
	a, _, stderr := newTestApp("")
	code := a.main([]string{"render", noConfig(t), "-max", "8", "-desc", "PNG icon, 16x16"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "cannot render 16x16")
}

func TestRender_ConfigFile(t *testing.T) {
	noConfig(t)
	require.NoError(t, os.WriteFile("custom.toml", []byte("[render]\nmax_dimension = 8\n"), 0o600))

	a, _, _ := newTestApp("")
	code := a.main([]string{"render", "-config", "custom.toml", "-desc", "PNG icon, 16x16"})
	assert.Equal(t, 1, code, "config limit applies")

	a, _, _ = newTestApp("")
	code = a.main([]string{"render", "-config", "custom.toml", "-max", "32", "-desc", "PNG icon, 16x16"})
	assert.Equal(t, 0, code, "-max overrides the config")
}

func TestCompose(t *testing.T) {
	a, stdout, _ := newTestApp(testBundle)
	code := a.main([]string{"compose", noConfig(t), "-bundle", "-", "-path", "style.css"})
	require.Equal(t, 0, code)
	assert.Equal(t, "<style>p{color:red}</style><p>hi</p>", stdout.String())
}

func TestCompose_UnknownPath(t *testing.T) {
	a, _, _ := newTestApp(testBundle)
	assert.Equal(t, 1, a.main([]string{"compose", noConfig(t), "-bundle", "-", "-path", "nope.css"}))
}

func TestCompose_MalformedBundle(t *testing.T) {
	a, _, stderr := newTestApp("Sure! Here is your extension.")
	code := a.main([]string{"compose", noConfig(t), "-bundle", "-", "-path", "popup.html"})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Generation Glitch")
}

func TestExport_Dir(t *testing.T) {
	cfg := noConfig(t)
	a, _, stderr := newTestApp(testBundle)
	code := a.main([]string{"export", cfg, "-bundle", "-", "-dir", "out"})
	require.Equal(t, 0, code, stderr.String())
	for _, name := range []string{"popup.html", "style.css", "icons/icon16.png", "TESTING_GUIDE.md", "SECURITY_REVIEW.md"} {
		assert.FileExists(t, filepath.Join("out", filepath.FromSlash(name)))
	}
}

func TestExport_Zip(t *testing.T) {
	cfg := noConfig(t)
	a, _, stderr := newTestApp(testBundle)
	require.Equal(t, 0, a.main([]string{"export", cfg, "-bundle", "-"}), stderr.String())
	assert.FileExists(t, "chrome-extension.zip")
}

func TestUsage(t *testing.T) {
	a, _, stderr := newTestApp("")
	assert.Equal(t, 2, a.main(nil))
	assert.Contains(t, stderr.String(), "compose", "usage lists commands")

	a, _, _ = newTestApp("")
	assert.Equal(t, 2, a.main([]string{"frobnicate"}))
}

func TestVersion(t *testing.T) {
	a, stdout, _ := newTestApp("")
	require.Equal(t, 0, a.main([]string{"version"}))
	assert.True(t, strings.HasPrefix(stdout.String(), "extforge "), stdout.String())
}

func TestPrompt(t *testing.T) {
	a, stdout, stderr := newTestApp("")
	require.Equal(t, 0, a.main([]string{"prompt", noConfig(t), "count", "tabs"}), stderr.String())
	assert.Equal(t, "Simple (10 chars, 5%)\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestPrompt_Warning(t *testing.T) {
	a, stdout, stderr := newTestApp(strings.Repeat("x", 1500))
	require.Equal(t, 0, a.main([]string{"prompt", noConfig(t), "-in", "-"}), stderr.String())
	assert.True(t, strings.HasPrefix(stdout.String(), "Complex (1500 chars, 100%)"), stdout.String())
	assert.Contains(t, stderr.String(), "warning: Prompt is long")
}
