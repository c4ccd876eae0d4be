package vault

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MixedVault_ClassifiesAndSortsFiles(t *testing.T) {
	root := t.TempDir()
	writeVaultFile(t, root, "notes/b.md", publishedNote)
	writeVaultFile(t, root, "notes/a.MD", publishedNote)
	writeVaultFile(t, root, "img/pic.png", "binary")

	files, err := Load(root)
	require.NoError(t, err)
	require.Len(t, files, 3)

	require.Equal(t, "img/pic.png", files[0].Path())
	require.IsType(t, &Asset{}, files[0])
	require.Equal(t, "notes/a.MD", files[1].Path())
	require.IsType(t, &Document{}, files[1])
	require.Equal(t, "notes/b.md", files[2].Path())
	require.IsType(t, &Document{}, files[2])
}

func TestLoad_ToolingDirectories_AreExcluded(t *testing.T) {
	root := t.TempDir()
	writeVaultFile(t, root, ".git/config", "x")
	writeVaultFile(t, root, ".obsidian/app.json", "{}")
	writeVaultFile(t, root, "notes/.obsidian/app.json", "{}")
	writeVaultFile(t, root, "notes/a.md", publishedNote)

	files, err := Load(root)
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "notes/a.md", files[0].Path())
}

func TestLoad_RootIsFile_ReturnsNotADirectory(t *testing.T) {
	root := t.TempDir()
	writeVaultFile(t, root, "file.txt", "x")

	_, err := Load(filepath.Join(root, "file.txt"))
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestLoad_MissingRoot_ReturnsNotADirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestLoad_InvalidDocument_AbortsLoad(t *testing.T) {
	root := t.TempDir()
	writeVaultFile(t, root, "good.md", publishedNote)
	writeVaultFile(t, root, "bad.md", "no front matter\n")

	_, err := Load(root)
	require.Error(t, err)
}
