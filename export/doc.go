// Package export turns a bundle into the files a user downloads: source
// text as written, icon descriptions rendered to PNG, and the two guides
// under fixed names.
//
// Rendering happens concurrently on a bounded worker pool. An icon that
// cannot be rasterized is skipped and reported; it never stops the rest of
// the bundle from being exported.
package export
