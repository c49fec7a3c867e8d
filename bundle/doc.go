// Package bundle models the file set a browser extension generator returns.
//
// A Bundle is decoded once from the generator's JSON response and then only
// edited in place: files are never added or removed, but their content may
// be replaced (for example after a structural icon edit).
package bundle
