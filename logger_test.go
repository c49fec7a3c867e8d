package extforge

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

// captureLogs routes the package logger into a buffer at level for the
// duration of the test.
func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestLogger_SilentByDefault(t *testing.T) {
	captureLogs(t, slog.LevelDebug)
	SetLogger(nil)

	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should leave a disabled logger")
	}
	if _, err := New().RenderDescription(`PNG icon, 4x4, background notacolor, text "A"`); err != nil {
		t.Fatalf("RenderDescription() error: %v", err)
	}
}

func TestRender_LogsAtDebug(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)

	if _, err := New().RenderDescription("PNG icon, 4x4, background #000 #fff"); err != nil {
		t.Fatalf("RenderDescription() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"render icon", "width=4", "height=4", "colors=2", "label=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug record missing %q: %s", want, out)
		}
	}
}

func TestRender_QuietAboveDebug(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	if _, err := New().RenderDescription("PNG icon, 4x4, background notacolor"); err != nil {
		t.Fatalf("RenderDescription() error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("render logged above debug: %s", buf.String())
	}
}

func TestParseColor_LogsUnresolved(t *testing.T) {
	tests := []struct {
		token  string
		logged bool
	}{
		{"notacolor", true},
		{"#12345", true},
		{"#3C78DC", false},
		{"teal", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			buf := captureLogs(t, slog.LevelDebug)
			ParseColor(tt.token)
			got := strings.Contains(buf.String(), "unresolved color")
			if got != tt.logged {
				t.Errorf("ParseColor(%q) logged = %v, want %v: %s", tt.token, got, tt.logged, buf.String())
			}
		})
	}
}
