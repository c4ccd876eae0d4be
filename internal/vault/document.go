package vault

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/notegen/internal/frontmatter"
	"git.home.luguber.info/inful/notegen/internal/logfields"
	"git.home.luguber.info/inful/notegen/internal/minify"
)

// TagHideCreatedDate suppresses the created date on the rendered page.
const TagHideCreatedDate = "hide-created-date"

// Document is a markdown note. Its front matter is parsed and validated at
// construction; any problem there fails the whole vault load.
type Document struct {
	path        string
	RawBody     string
	Published   bool
	Title       string
	Tags        map[string]struct{}
	DateCreated time.Time
	DateUpdated time.Time

	meta             map[string]any
	outputPath       string
	missingPermalink bool
	permalinkValue   string
	html             string
	hasHTML          bool
}

// NewDocument reads and validates the markdown file at relPath under root.
func NewDocument(relPath, root string) (*Document, error) {
	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", relPath, err)
	}

	front, body, err := frontmatter.Split(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}
	meta, err := frontmatter.ParseMetadata(front)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}
	slog.Debug("parsed front matter", logfields.Path(relPath), slog.Any("meta", meta))

	if _, ok := meta["aliases"]; ok {
		return nil, fmt.Errorf("%s: %w", relPath, ErrUnsupportedAliasField)
	}

	d := &Document{
		path:    relPath,
		RawBody: body,
		meta:    meta,
	}
	d.Published = meta["publish"] == true
	d.Title = strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))

	d.Tags, err = parseTags(meta["tags"])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}

	output := sanitizeOutputPath(strings.TrimSuffix(relPath, path.Ext(relPath)))
	permalink, err := parsePermalink(meta["permalink"])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}
	if permalink != "" {
		output = permalink
	} else if d.Published {
		d.missingPermalink = true
		d.permalinkValue = strings.TrimLeft(output, "/")
	}
	d.outputPath = output

	d.DateCreated, err = parseDate(meta["date created"], "date created")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}
	d.DateUpdated, err = parseDate(meta["date modified"], "date modified")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", relPath, err)
	}

	return d, nil
}

func parseDate(v any, field string) (time.Time, error) {
	switch value := v.(type) {
	case time.Time:
		return value, nil
	case string:
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w: %s: %q", ErrInvalidDate, field, value)
	default:
		return time.Time{}, fmt.Errorf("%w: missing or invalid %s: %v", ErrInvalidDate, field, v)
	}
}

func parsePermalink(v any) (string, error) {
	switch value := v.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	default:
		return "", fmt.Errorf("%w: %v", ErrInvalidPermalink, v)
	}
}

func parseTags(v any) (map[string]struct{}, error) {
	tags := make(map[string]struct{})
	switch value := v.(type) {
	case nil:
	case string:
		tags[value] = struct{}{}
	case []any:
		for _, item := range value {
			tag, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: entry %v", ErrInvalidTags, item)
			}
			tags[tag] = struct{}{}
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidTags, v)
	}
	return tags, nil
}

func (d *Document) sealed() {}

// Path returns the slash-separated source path relative to the vault root.
func (d *Document) Path() string { return d.path }

// HasTag reports whether the note's front matter carries the tag.
func (d *Document) HasTag(tag string) bool {
	_, ok := d.Tags[tag]
	return ok
}

// OutputPath returns the explicit permalink verbatim, or the sanitized
// extension-less source path. Unpublished documents have no output path.
func (d *Document) OutputPath() (string, error) {
	if !d.Published {
		return "", fmt.Errorf("%s: %w: no output path", d.path, ErrNotPublished)
	}
	return d.outputPath, nil
}

// Target asserts the document can be linked to. Linking an unpublished
// document would produce a dangling link, so it is an error.
func (d *Document) Target() error {
	if !d.Published {
		return fmt.Errorf("%s: %w: cannot be targeted", d.path, ErrNotPublished)
	}
	return nil
}

// MissingPermalink reports whether the document is published and still needs
// its computed permalink persisted back to the source file.
func (d *Document) MissingPermalink() bool { return d.missingPermalink }

// SetHTML stores the fully rendered page. The render stage sets it exactly once.
func (d *Document) SetHTML(html string) error {
	if d.hasHTML {
		return fmt.Errorf("%s: %w", d.path, ErrHTMLAlreadySet)
	}
	d.html = html
	d.hasHTML = true
	return nil
}

// HTML returns the rendered page and whether it has been set.
func (d *Document) HTML() (string, bool) { return d.html, d.hasHTML }

// WriteOut writes the minified page to <outputDir>/<outputPath>/index.html.
// Unpublished documents are skipped; existing destinations are never
// overwritten.
func (d *Document) WriteOut(root, outputDir string) error {
	if !d.Published {
		return nil
	}
	if !d.hasHTML {
		return fmt.Errorf("%s: %w", d.path, ErrMissingHTML)
	}
	out, err := d.OutputPath()
	if err != nil {
		return err
	}

	destDir := filepath.Join(outputDir, filepath.FromSlash(strings.TrimLeft(out, "/")))
	dest := filepath.Join(destDir, "index.html")
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%s: %w", dest, ErrOutputExists)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", d.path, err)
	}
	if err := os.WriteFile(dest, []byte(minify.HTML(d.html)), 0o644); err != nil {
		return fmt.Errorf("write page for %s: %w", d.path, err)
	}
	slog.Info("wrote page", logfields.Path(d.path), logfields.Output(filepath.ToSlash(dest)))
	return nil
}
