package vault

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"git.home.luguber.info/inful/notegen/internal/frontmatter"
	"git.home.luguber.info/inful/notegen/internal/logfields"
)

// PersistPermalink writes the computed permalink back into the source file's
// front matter. It is a no-op unless the document is published and was loaded
// without an explicit permalink, and it runs only after the document has been
// written to the output tree.
//
// The rewrite re-reads the current on-disk source rather than trusting the
// in-memory copy: a human may have edited the file between load and write.
// It is accepted only when a line diff proves the change is exactly one
// inserted `permalink:` line; any other shape fails with ErrUnsafeRewrite
// and leaves the source untouched.
func (d *Document) PersistPermalink(root string) error {
	if !d.Published || !d.missingPermalink {
		return nil
	}

	value := d.permalinkValue
	d.meta["permalink"] = value
	if err := rewriteFrontMatter(filepath.Join(root, filepath.FromSlash(d.path)), d.meta, d.RawBody, value); err != nil {
		return err
	}
	d.missingPermalink = false
	slog.Warn("missing permalink in front matter; backfilled",
		logfields.Path(d.path), logfields.Permalink(value))
	return nil
}

func rewriteFrontMatter(sourcePath string, meta map[string]any, body, value string) error {
	rendered, err := frontmatter.SerializeMetadata(meta)
	if err != nil {
		return fmt.Errorf("serialize front matter for %s: %w", sourcePath, err)
	}
	updated := "---\n" + rendered + "\n---" + body

	onDisk, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("re-read %s: %w", sourcePath, err)
	}
	front, onDiskBody, err := frontmatter.Split(string(onDisk))
	if err != nil {
		return fmt.Errorf("%s: %w", sourcePath, err)
	}
	onDiskMeta, err := frontmatter.ParseMetadata(front)
	if err != nil {
		return fmt.Errorf("%s: %w", sourcePath, err)
	}
	baselineRendered, err := frontmatter.SerializeMetadata(onDiskMeta)
	if err != nil {
		return fmt.Errorf("serialize front matter for %s: %w", sourcePath, err)
	}
	baseline := "---\n" + baselineRendered + "\n---" + onDiskBody

	// The opcode shape is asserted precisely: a textual "contains" check
	// would admit multi-line edits hiding around the inserted line.
	updatedLines := strings.Split(updated, "\n")
	matcher := difflib.NewMatcher(strings.Split(baseline, "\n"), updatedLines)
	var changes []difflib.OpCode
	for _, op := range matcher.GetOpCodes() {
		if op.Tag != 'e' {
			changes = append(changes, op)
		}
	}
	if len(changes) != 1 || changes[0].Tag != 'i' || changes[0].J2-changes[0].J1 != 1 {
		return fmt.Errorf("%s: %w", sourcePath, ErrUnsafeRewrite)
	}
	if updatedLines[changes[0].J1] != "permalink: "+value {
		return fmt.Errorf("%s: %w", sourcePath, ErrUnsafeRewrite)
	}

	if err := os.WriteFile(sourcePath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", sourcePath, err)
	}
	return nil
}
