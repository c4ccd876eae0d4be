package vault

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/notegen/internal/logfields"
	"git.home.luguber.info/inful/notegen/internal/minify"
)

// Asset is any non-markdown vault file. It carries no metadata; its whole
// lifecycle is load, possibly get targeted by a resolved link, and be copied
// to the output tree if so.
type Asset struct {
	path     string
	Targeted bool
}

// NewAsset wraps the asset at the slash-separated relative path.
func NewAsset(relPath string) *Asset {
	return &Asset{path: relPath}
}

func (a *Asset) sealed() {}

// Path returns the slash-separated source path relative to the vault root.
func (a *Asset) Path() string { return a.path }

// OutputPath returns the sanitized source path. Assets that nothing links to
// are never emitted and have no output path.
func (a *Asset) OutputPath() (string, error) {
	if !a.Targeted {
		return "", fmt.Errorf("%s: %w", a.path, ErrNotTargeted)
	}
	return sanitizeOutputPath(a.path), nil
}

// Target marks the asset reachable so it is written to the output tree.
func (a *Asset) Target() error {
	a.Targeted = true
	return nil
}

// WriteOut copies the asset to its mirrored output path, minifying HTML and
// CSS on the way. Untargeted assets are skipped; existing destinations are
// never overwritten.
func (a *Asset) WriteOut(root, outputDir string) error {
	if !a.Targeted {
		return nil
	}
	out, err := a.OutputPath()
	if err != nil {
		return err
	}

	source := filepath.Join(root, filepath.FromSlash(a.path))
	dest := filepath.Join(outputDir, filepath.FromSlash(strings.TrimLeft(out, "/")))
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%s: %w", dest, ErrOutputExists)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory for %s: %w", a.path, err)
	}

	if minify.ShouldMinifyPath(a.path) {
		content, err := os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", a.path, err)
		}
		if err := os.WriteFile(dest, []byte(minify.ForPath(a.path, string(content))), 0o644); err != nil {
			return fmt.Errorf("write asset %s: %w", a.path, err)
		}
	} else if err := copyFile(source, dest); err != nil {
		return fmt.Errorf("copy asset %s: %w", a.path, err)
	}

	slog.Info("copied asset", logfields.Path(a.path), logfields.Output(filepath.ToSlash(dest)))
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
