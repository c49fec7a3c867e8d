package bundle

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// response is the generator's JSON payload.
type response struct {
	Files          *[]SourceFile `json:"files"`
	TestingGuide   string        `json:"testing_guide"`
	SecurityReview string        `json:"security_review"`
}

// Decode reads a generator response. A surrounding ```json fence, which
// generators add despite being asked not to, is tolerated.
func Decode(r io.Reader) (*Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bundle: read response: %w", err)
	}
	return DecodeString(string(raw))
}

// DecodeString is Decode for an in-memory response.
func DecodeString(s string) (*Bundle, error) {
	var resp response
	if err := json.Unmarshal([]byte(StripFence(s)), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if resp.Files == nil {
		return nil, ErrMissingFiles
	}
	return New(*resp.Files, resp.TestingGuide, resp.SecurityReview)
}

// StripFence removes a leading ```json (or bare ```) line and a trailing
// ``` from s, ignoring surrounding whitespace.
func StripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimPrefix(t, "json")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// Encode writes b in the generator's JSON format.
func Encode(w io.Writer, b *Bundle) error {
	files := b.Files()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(response{
		Files:          &files,
		TestingGuide:   b.TestingGuide,
		SecurityReview: b.SecurityReview,
	})
}
