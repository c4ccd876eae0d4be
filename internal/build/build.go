// Package build orchestrates a full site build: prepare the output tree,
// load the vault, render every published note, mirror targeted assets and
// static files, write the index, and backfill missing permalinks.
package build

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/notegen/internal/logfields"
	"git.home.luguber.info/inful/notegen/internal/markdown"
	"git.home.luguber.info/inful/notegen/internal/minify"
	"git.home.luguber.info/inful/notegen/internal/site"
	"git.home.luguber.info/inful/notegen/internal/vault"
)

// Options configures a single build run.
type Options struct {
	InputDir  string
	OutputDir string
	// Overwrite allows clearing an existing output directory before the run.
	Overwrite bool
	// IgnoreOutput lists top-level entries of the output directory that
	// survive the overwrite clear.
	IgnoreOutput []string
	SiteTitle    string
	// StaticDir is copied to <output>/static when set.
	StaticDir string
}

// Run performs one complete build. The vault is loaded in full before any
// link resolution so ambiguity detection sees every candidate; permalink
// backfill runs last, once the whole output tree has been written.
func Run(opts Options) error {
	log := slog.With(logfields.BuildID(uuid.NewString()))

	if err := validateOutputDir(opts.InputDir, opts.OutputDir); err != nil {
		return err
	}
	if err := prepareOutputDir(opts.OutputDir, opts.Overwrite, opts.IgnoreOutput, log); err != nil {
		return err
	}
	log.Info("building site", logfields.Path(opts.InputDir), logfields.Output(opts.OutputDir))

	files, err := vault.Load(opts.InputDir)
	if err != nil {
		return err
	}
	renderer, err := site.NewRenderer(opts.SiteTitle)
	if err != nil {
		return err
	}
	if err := renderAll(files, renderer, log); err != nil {
		return err
	}
	for _, f := range files {
		if err := f.WriteOut(opts.InputDir, opts.OutputDir); err != nil {
			return err
		}
	}
	if opts.StaticDir != "" {
		if err := copyStatic(opts.StaticDir, opts.OutputDir, log); err != nil {
			return err
		}
	}
	if err := writeIndex(files, opts.OutputDir, renderer, log); err != nil {
		return err
	}
	for _, doc := range publishedDocuments(files) {
		if err := doc.PersistPermalink(opts.InputDir); err != nil {
			return err
		}
	}

	log.Info("site build complete")
	return nil
}

// renderAll converts every published note to a full HTML page. Links and
// images resolve against the complete file set, marking referenced assets
// targeted as a side effect.
func renderAll(files []vault.File, renderer *site.Renderer, log *slog.Logger) error {
	resolver := vault.NewResolver(files)
	for _, doc := range publishedDocuments(files) {
		body, err := markdown.Render(doc.RawBody, resolver)
		if err != nil {
			return fmt.Errorf("render %s: %w", doc.Path(), err)
		}
		page, err := renderer.RenderPage(doc.Title, body, doc.DateCreated, doc.DateUpdated,
			!doc.HasTag(vault.TagHideCreatedDate))
		if err != nil {
			return err
		}
		if err := doc.SetHTML(page); err != nil {
			return err
		}
		log.Debug("rendered document", logfields.Path(doc.Path()), logfields.Title(doc.Title))
	}
	return nil
}

func publishedDocuments(files []vault.File) []*vault.Document {
	var docs []*vault.Document
	for _, f := range files {
		if doc, ok := f.(*vault.Document); ok && doc.Published {
			docs = append(docs, doc)
		}
	}
	return docs
}

// writeIndex renders the front page listing of published notes, newest
// creation date first.
func writeIndex(files []vault.File, outputDir string, renderer *site.Renderer, log *slog.Logger) error {
	posts := publishedDocuments(files)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].DateCreated.After(posts[j].DateCreated)
	})

	entries := make([]site.IndexEntry, 0, len(posts))
	for _, post := range posts {
		out, err := post.OutputPath()
		if err != nil {
			return err
		}
		entries = append(entries, site.IndexEntry{
			Title: post.Title,
			Link:  "/" + strings.TrimLeft(out, "/"),
		})
	}

	rendered, err := renderer.RenderIndex(entries)
	if err != nil {
		return err
	}
	indexPath := filepath.Join(outputDir, "index.html")
	if _, err := os.Stat(indexPath); err == nil {
		return fmt.Errorf("%s: %w", indexPath, vault.ErrOutputExists)
	}
	if err := os.WriteFile(indexPath, []byte(minify.HTML(rendered)), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	log.Info("wrote index", logfields.Output(filepath.ToSlash(indexPath)), logfields.Count(len(entries)))
	return nil
}

// copyStatic mirrors the static directory into <output>/static, minifying
// HTML and CSS on the way.
func copyStatic(staticDir, outputDir string, log *slog.Logger) error {
	info, err := os.Stat(staticDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("static directory %s: %w", staticDir, vault.ErrNotADirectory)
	}

	var rels []string
	err = filepath.WalkDir(staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk static directory %s: %w", staticDir, err)
	}
	sort.Strings(rels)

	destRoot := filepath.Join(outputDir, "static")
	for _, rel := range rels {
		source := filepath.Join(staticDir, filepath.FromSlash(rel))
		dest := filepath.Join(destRoot, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create static output directory: %w", err)
		}
		if minify.ShouldMinifyPath(rel) {
			content, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("read static file %s: %w", rel, err)
			}
			if err := os.WriteFile(dest, []byte(minify.ForPath(rel, string(content))), 0o644); err != nil {
				return fmt.Errorf("write static file %s: %w", rel, err)
			}
		} else if err := copyFile(source, dest); err != nil {
			return fmt.Errorf("copy static file %s: %w", rel, err)
		}
	}

	log.Info("copied static assets", logfields.Output(filepath.ToSlash(destRoot)), logfields.Count(len(rels)))
	return nil
}

// validateOutputDir rejects output directories that would make the build read
// its own output or clear its input.
func validateOutputDir(inputDir, outputDir string) error {
	in, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolve output directory: %w", err)
	}
	if in == out || isWithin(in, out) || isWithin(out, in) {
		return fmt.Errorf("%s: %w", outputDir, ErrNestedOutputDir)
	}
	return nil
}

// isWithin reports whether child is strictly inside parent. Both paths must
// be absolute and cleaned.
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func prepareOutputDir(outputDir string, overwrite bool, ignoreOutput []string, log *slog.Logger) error {
	info, err := os.Stat(outputDir)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("%s: %w", outputDir, ErrOutputDirExists)
		}
		if !info.IsDir() {
			return fmt.Errorf("output path %s: %w", outputDir, vault.ErrNotADirectory)
		}
		if err := clearDirectory(outputDir, ignoreOutput); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat output directory %s: %w", outputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outputDir, err)
	}
	log.Info("prepared output directory", logfields.Output(outputDir))
	return nil
}

// clearDirectory removes every top-level entry of the output directory except
// those named by ignoreOutput.
func clearDirectory(outputDir string, ignoreOutput []string) error {
	keep := make(map[string]bool, len(ignoreOutput))
	for _, raw := range ignoreOutput {
		name := filepath.Clean(raw)
		if name == "." || name == ".." || filepath.IsAbs(name) ||
			strings.ContainsRune(filepath.ToSlash(name), '/') {
			return fmt.Errorf("%w: %s", ErrIgnoreOutputNotTopLevel, raw)
		}
		keep[name] = true
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return fmt.Errorf("read output directory %s: %w", outputDir, err)
	}
	for _, entry := range entries {
		if keep[entry.Name()] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
			return fmt.Errorf("clear output directory: %w", err)
		}
	}
	return nil
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
