// Package vault models the source tree of a notes vault: discovery of its
// files, resolution of internal links against them, and the permalink
// backfill that persists computed output paths into note front matter.
package vault

import "strings"

// File is one discovered vault entry. Exactly two kinds exist: *Document for
// markdown notes and *Asset for everything else. The set is closed; callers
// switch on the concrete type for variant-specific access.
type File interface {
	// Path returns the slash-separated path relative to the vault root.
	Path() string

	// OutputPath returns the path the entry occupies in the generated site.
	// It is only defined for entries eligible for output: published
	// documents and targeted assets. Querying it otherwise is an error.
	OutputPath() (string, error)

	// Target marks the entry reachable from a rendered document. Targeting
	// an unpublished document is an error, since the link would dangle.
	Target() error

	// WriteOut emits the entry into outputDir if it is eligible: documents
	// write only when published, assets only when targeted. Existing
	// destinations are never overwritten.
	WriteOut(root, outputDir string) error

	sealed()
}

// matchesURL reports whether the file's relative path ends with url,
// case-insensitively. Suffix matching lets short unambiguous fragments
// resolve the way note cross-links are written.
func matchesURL(f File, url string) bool {
	if url == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(f.Path()), strings.ToLower(url))
}

// sanitizeOutputPath makes a computed path safe for URLs and filesystems:
// spaces become underscores, as does every byte outside [A-Za-z0-9/_.-].
// Explicit permalinks are never sanitized.
func sanitizeOutputPath(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '/' || c == '_' || c == '.' || c == '-':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
