package bundle

import "errors"

// Sentinel errors for bundle package.
var (
	// ErrMalformedJSON is returned when the response is not valid JSON.
	ErrMalformedJSON = errors.New("bundle: malformed JSON")

	// ErrMissingFiles is returned when the response has no files array.
	ErrMissingFiles = errors.New("bundle: files array is missing")

	// ErrDuplicatePath is returned when two files share a path.
	ErrDuplicatePath = errors.New("bundle: duplicate file path")

	// ErrEmptyPath is returned for a file without a path.
	ErrEmptyPath = errors.New("bundle: file path is empty")

	// ErrUnknownPath is returned when a path names no file in the bundle.
	ErrUnknownPath = errors.New("bundle: unknown file path")
)
