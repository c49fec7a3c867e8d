package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/extforge/bundle"
)

func TestAudit(t *testing.T) {
	doc := `<html><head>` +
		`<style>@import url("https://fonts.example.com/css");` +
		`body{background:url(//cdn.example.com/a.png)}` +
		`.logo{background:url('data:image/png;base64,AAAA')}` +
		`.local{background:url(img/bg.png)}</style>` +
		`<link rel="stylesheet" href="missing.css">` +
		`</head><body>` +
		`<div style="background-image: url('http://example.com/y.png'); color: red"></div>` +
		`</body></html>`

	got := Audit(doc)

	assert.ElementsMatch(t, []Finding{
		{Kind: ExternalImport, Ref: "https://fonts.example.com/css"},
		{Kind: ExternalURL, Ref: "//cdn.example.com/a.png"},
		{Kind: UnresolvedLink, Ref: "missing.css"},
		{Kind: ExternalURL, Ref: "http://example.com/y.png"},
	}, got)
}

func TestAudit_Clean(t *testing.T) {
	assert.Empty(t, Audit(`<style>p{margin:0}</style><p style="color:red">ok</p>`))
	assert.Empty(t, Audit(PlaceholderNotice))
	assert.Empty(t, Audit(""))
}

func TestAudit_ComposedDocument(t *testing.T) {
	doc := `<link rel="stylesheet" href="style.css"><link rel="stylesheet" href="gone.css">`
	page := text("popup.html", doc)

	out := Compose(page, doc, []bundle.SourceFile{page, text("style.css", "a{}")})

	assert.Equal(t, []Finding{{Kind: UnresolvedLink, Ref: "gone.css"}}, Audit(out))
}

func TestIsExternal(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/a.css", true},
		{"HTTP://example.com/a.css", true},
		{"//example.com/a.css", true},
		{"chrome-extension://id/a.css", true},
		{"data:text/css,a{}", true},
		{"style.css", false},
		{"/style.css", false},
		{"../css/style.css", false},
		{"a:b/style.css", true},
		{"1a:b", false},
	}
	for _, tt := range tests {
		if got := isExternal(tt.ref); got != tt.want {
			t.Errorf("isExternal(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
