package vault

import (
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"git.home.luguber.info/inful/notegen/internal/logfields"
)

// Resolver matches raw link and image destinations against the complete set
// of loaded vault entries. It must only be constructed once loading has
// finished: suffix-match ambiguity detection is order-independent only when
// every candidate is already known.
type Resolver struct {
	files []File
}

// NewResolver builds a resolver over the loaded entries.
func NewResolver(files []File) *Resolver {
	return &Resolver{files: files}
}

// Resolve maps a raw destination to a site URL.
//
// External URLs (anything with a scheme or host) pass through unchanged.
// Internal destinations are percent-decoded, matched case-insensitively as a
// path suffix against every known entry (with a second pass appending .md so
// extension-less links work) and must match exactly one file. The match is
// marked targeted and its output path returned with a single leading slash.
func (r *Resolver) Resolve(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLinkSyntax, raw, err)
	}
	if u.Scheme != "" || u.Host != "" {
		return raw, nil
	}
	if u.RawQuery != "" || hasPathParams(u.Path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLinkSyntax, raw)
	}

	trimmed := strings.TrimLeft(u.Path, "/")
	if trimmed == "" {
		return "", ErrEmptyLink
	}

	matched := make(map[string]File)
	r.collectMatches(trimmed, matched)
	if !strings.HasSuffix(strings.ToLower(trimmed), ".md") {
		r.collectMatches(trimmed+".md", matched)
	}

	if len(matched) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoMatch, u.Path)
	}
	if len(matched) > 1 {
		paths := make([]string, 0, len(matched))
		for p := range matched {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		return "", fmt.Errorf("%w %q; matches: %s", ErrAmbiguousMatch, u.Path, strings.Join(paths, ", "))
	}

	var selected File
	for _, f := range matched {
		selected = f
	}
	if err := selected.Target(); err != nil {
		return "", err
	}
	out, err := selected.OutputPath()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	slog.Debug("resolved internal link", logfields.Link(u.Path), logfields.Output(out))
	return out, nil
}

func (r *Resolver) collectMatches(trimmed string, matched map[string]File) {
	for _, f := range r.files {
		if matchesURL(f, trimmed) {
			matched[f.Path()] = f
		}
	}
}

// hasPathParams reports `;`-style parameters on the final path segment.
func hasPathParams(p string) bool {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	return strings.ContainsRune(p, ';')
}
