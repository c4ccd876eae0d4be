package vault

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/notegen/internal/logfields"
)

// excludedComponents prunes tooling directories from the walk: the vault's
// version control and the note-taking tool's own configuration.
var excludedComponents = map[string]bool{
	".git":      true,
	".obsidian": true,
}

// Load walks the vault rooted at root and returns every regular file as a
// vault entry, in lexicographic slash-path order so builds are reproducible
// across runs and platforms.
//
// Markdown files (case-insensitive .md) become Documents, everything else
// Assets. A single invalid document aborts the load; there is no partial
// mode.
func Load(root string) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotADirectory)
	}
	slog.Info("loading vault", logfields.Path(root))

	var rels []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && excludedComponents[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || excludedComponents[d.Name()] {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault %s: %w", root, err)
	}
	sort.Strings(rels)

	files := make([]File, 0, len(rels))
	for _, rel := range rels {
		slog.Debug("processing file", logfields.Path(rel))
		if strings.EqualFold(path.Ext(rel), ".md") {
			doc, err := NewDocument(rel, root)
			if err != nil {
				return nil, err
			}
			files = append(files, doc)
		} else {
			files = append(files, NewAsset(rel))
		}
	}

	slog.Info("discovered vault files", logfields.Count(len(files)))
	return files, nil
}
