// Package frontmatter implements the vault's front-matter codec: a leading
// YAML block fenced by `---`, followed by the markdown body.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

var (
	// ErrMalformed indicates the document does not begin with the front-matter
	// fence, or the closing fence is absent.
	ErrMalformed = errors.New("malformed front matter")

	// ErrInvalid indicates the front matter is present but does not
	// deserialize to a key-value mapping.
	ErrInvalid = errors.New("invalid front matter")
)

// Split separates the front-matter block from the markdown body.
//
// Only the first two fence occurrences are structural: a document containing
// `---` later in the body splits at the first two occurrences regardless.
// The body is everything after the second fence, verbatim (it usually starts
// with the newline that followed the closing fence).
func Split(content string) (front, body string, err error) {
	if !strings.HasPrefix(content, fence) {
		return "", "", fmt.Errorf("%w: document does not begin with %q", ErrMalformed, fence)
	}
	rest := content[len(fence):]
	idx := strings.Index(rest, fence)
	if idx < 0 {
		return "", "", fmt.Errorf("%w: closing delimiter is missing", ErrMalformed)
	}
	return rest[:idx], rest[idx+len(fence):], nil
}

// ParseMetadata decodes raw front matter (without fences) into a map.
//
// Empty front matter yields an empty map. Any non-mapping document shape
// (list, scalar) fails with ErrInvalid.
func ParseMetadata(front string) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal([]byte(front), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	fields, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: front matter must be a key-value mapping", ErrInvalid)
	}
	return fields, nil
}
