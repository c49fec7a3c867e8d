// Package preview assembles a renderable HTML document from a selected
// generated file and its siblings.
//
// Stylesheet links in the chosen markup are replaced by inline <style>
// elements when the referenced file can be found in the bundle; links that
// cannot be resolved are left byte-for-byte as they were. Composition is
// total: it never fails, it degrades.
//
// The composed document is unreviewed machine-generated content. Render it
// only in an isolated context without script execution or network access;
// SandboxPolicy is a Content-Security-Policy suitable for that.
package preview
