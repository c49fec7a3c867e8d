package preview

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"
	"golang.org/x/net/html"
)

// RenderGuide converts a markdown guide to an HTML fragment. Raw HTML in
// the source is dropped.
func RenderGuide(md string) string {
	p := mdparser.NewWithExtensions(mdparser.CommonExtensions | mdparser.AutoHeadingIDs)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.HrefTargetBlank,
	})
	return string(markdown.ToHTML([]byte(md), p, r))
}

// GuidePage wraps a rendered guide in a standalone document.
func GuidePage(title, md string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title></head>\n<body style='padding: 20px; font-family: sans-serif;'>\n")
	sb.WriteString(RenderGuide(md))
	sb.WriteString("</body></html>\n")
	return sb.String()
}

// Heading is one entry of a guide's outline.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Outline lists the headings of a markdown guide in document order.
func Outline(md string) []Heading {
	p := mdparser.NewWithExtensions(mdparser.CommonExtensions | mdparser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	var out []Heading
	ast.WalkFunc(doc, func(n ast.Node, entering bool) ast.WalkStatus {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.GoToNext
		}
		out = append(out, Heading{Level: h.Level, ID: h.HeadingID, Text: plainText(h)})
		return ast.SkipChildren
	})
	return out
}

// plainText concatenates the literal text under n.
func plainText(n ast.Node) string {
	var sb strings.Builder
	ast.WalkFunc(n, func(c ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch leaf := c.(type) {
		case *ast.Text:
			sb.Write(leaf.Literal)
		case *ast.Code:
			sb.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(sb.String())
}
