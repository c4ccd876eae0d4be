package build

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notegen/internal/vault"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(content)
}

// testVault builds a small vault: two published notes (one linking the other
// and an image), an unpublished draft, and an asset nothing links to.
func testVault(t *testing.T) string {
	t.Helper()
	input := t.TempDir()
	writeFile(t, input, "notes/My Post.md", `---
publish: true
date created: 2024-02-01
date modified: 2024-02-02
---

See [linked](Linked%20Note) and ![diagram](pic.png).
`)
	writeFile(t, input, "notes/Linked Note.md", `---
publish: true
date created: 2024-01-01
date modified: 2024-01-02
---

Older note.
`)
	writeFile(t, input, "notes/Draft.md", `---
date created: 2024-03-01
date modified: 2024-03-02
---

Not public.
`)
	writeFile(t, input, "img/pic.png", "png-bytes")
	writeFile(t, input, "img/unused.png", "never linked")
	return input
}

func TestRun_FullBuild_WritesPagesAssetsAndIndex(t *testing.T) {
	input := testVault(t)
	output := filepath.Join(t.TempDir(), "site")

	require.NoError(t, Run(Options{
		InputDir:  input,
		OutputDir: output,
		SiteTitle: "Test Site",
	}))

	page := readFile(t, output, "notes/My_Post/index.html")
	require.Contains(t, page, `href="/notes/Linked_Note"`)
	require.Contains(t, page, `src="/img/pic.png"`)
	require.Contains(t, page, "<title>My Post | Test Site</title>")

	require.Equal(t, "png-bytes", readFile(t, output, "img/pic.png"))
	_, err := os.Stat(filepath.Join(output, "img", "unused.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = os.Stat(filepath.Join(output, "notes", "Draft"))
	require.ErrorIs(t, err, os.ErrNotExist)

	index := readFile(t, output, "index.html")
	require.Contains(t, index, `href="/notes/My_Post"`)
	require.Contains(t, index, `href="/notes/Linked_Note"`)
	require.Less(t,
		strings.Index(index, "My_Post"), strings.Index(index, "Linked_Note"),
		"index must list newest creation date first")
	require.NotContains(t, index, "Draft")
}

func TestRun_FullBuild_BackfillsPermalinks(t *testing.T) {
	input := testVault(t)

	require.NoError(t, Run(Options{
		InputDir:  input,
		OutputDir: filepath.Join(t.TempDir(), "site"),
		SiteTitle: "Test Site",
	}))

	require.Contains(t, readFile(t, input, "notes/My Post.md"), "permalink: notes/My_Post\n")
	require.Contains(t, readFile(t, input, "notes/Linked Note.md"), "permalink: notes/Linked_Note\n")
	require.NotContains(t, readFile(t, input, "notes/Draft.md"), "permalink:")
}

func TestRun_SecondRunWithOverwrite_Succeeds(t *testing.T) {
	input := testVault(t)
	output := filepath.Join(t.TempDir(), "site")
	opts := Options{InputDir: input, OutputDir: output, SiteTitle: "Test Site"}

	require.NoError(t, Run(opts))
	require.ErrorIs(t, Run(opts), ErrOutputDirExists)

	opts.Overwrite = true
	require.NoError(t, Run(opts))
}

func TestRun_IgnoreOutput_PreservesTopLevelEntry(t *testing.T) {
	input := testVault(t)
	output := filepath.Join(t.TempDir(), "site")
	opts := Options{InputDir: input, OutputDir: output, SiteTitle: "Test Site"}

	require.NoError(t, Run(opts))
	writeFile(t, output, "CNAME", "example.com")

	opts.Overwrite = true
	opts.IgnoreOutput = []string{"CNAME"}
	require.NoError(t, Run(opts))
	require.Equal(t, "example.com", readFile(t, output, "CNAME"))
}

func TestRun_IgnoreOutputNested_IsRejected(t *testing.T) {
	input := testVault(t)
	output := filepath.Join(t.TempDir(), "site")
	opts := Options{InputDir: input, OutputDir: output, SiteTitle: "Test Site"}

	require.NoError(t, Run(opts))

	opts.Overwrite = true
	opts.IgnoreOutput = []string{"nested/path"}
	require.ErrorIs(t, Run(opts), ErrIgnoreOutputNotTopLevel)
}

func TestRun_OutputInsideInput_IsRejected(t *testing.T) {
	input := testVault(t)

	err := Run(Options{
		InputDir:  input,
		OutputDir: filepath.Join(input, "site"),
		SiteTitle: "Test Site",
	})
	require.ErrorIs(t, err, ErrNestedOutputDir)

	parent := t.TempDir()
	err = Run(Options{
		InputDir:  parent,
		OutputDir: parent,
		SiteTitle: "Test Site",
	})
	require.ErrorIs(t, err, ErrNestedOutputDir)
}

func TestRun_StaticDir_IsCopiedAndMinified(t *testing.T) {
	input := testVault(t)
	static := t.TempDir()
	writeFile(t, static, "style.css", "body {\n  color : red;\n}\n")
	writeFile(t, static, "logo.png", "logo-bytes")
	output := filepath.Join(t.TempDir(), "site")

	require.NoError(t, Run(Options{
		InputDir:  input,
		OutputDir: output,
		SiteTitle: "Test Site",
		StaticDir: static,
	}))

	require.Equal(t, "body{color:red;}", readFile(t, output, "static/style.css"))
	require.Equal(t, "logo-bytes", readFile(t, output, "static/logo.png"))
}

func TestRun_MissingStaticDir_ReturnsError(t *testing.T) {
	input := testVault(t)

	err := Run(Options{
		InputDir:  input,
		OutputDir: filepath.Join(t.TempDir(), "site"),
		SiteTitle: "Test Site",
		StaticDir: filepath.Join(t.TempDir(), "nope"),
	})
	require.ErrorIs(t, err, vault.ErrNotADirectory)
}

func TestRun_BrokenLink_FailsWithNoMatch(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "a.md", `---
publish: true
date created: 2024-01-01
date modified: 2024-01-02
---

[broken](missing)
`)

	err := Run(Options{
		InputDir:  input,
		OutputDir: filepath.Join(t.TempDir(), "site"),
		SiteTitle: "Test Site",
	})
	require.ErrorIs(t, err, vault.ErrNoMatch)
}

func TestRun_AmbiguousLink_FailsWithAmbiguousMatch(t *testing.T) {
	input := t.TempDir()
	note := `---
publish: true
date created: 2024-01-01
date modified: 2024-01-02
---

body
`
	writeFile(t, input, "notes/post.md", note)
	writeFile(t, input, "archive/post.md", note)
	writeFile(t, input, "a.md", `---
publish: true
date created: 2024-01-01
date modified: 2024-01-02
---

[which](post)
`)

	err := Run(Options{
		InputDir:  input,
		OutputDir: filepath.Join(t.TempDir(), "site"),
		SiteTitle: "Test Site",
	})
	require.ErrorIs(t, err, vault.ErrAmbiguousMatch)
}

func TestRun_LinkToUnpublished_Fails(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "secret.md", `---
date created: 2024-01-01
date modified: 2024-01-02
---

hidden
`)
	writeFile(t, input, "a.md", `---
publish: true
date created: 2024-01-01
date modified: 2024-01-02
---

[see](secret)
`)

	err := Run(Options{
		InputDir:  input,
		OutputDir: filepath.Join(t.TempDir(), "site"),
		SiteTitle: "Test Site",
	})
	require.ErrorIs(t, err, vault.ErrNotPublished)
}

func TestRun_HideCreatedDateTag_OmitsCreatedDate(t *testing.T) {
	input := t.TempDir()
	writeFile(t, input, "a.md", `---
publish: true
tags: [hide-created-date]
date created: 2024-01-01
date modified: 2024-02-02
---

body
`)
	output := filepath.Join(t.TempDir(), "site")

	require.NoError(t, Run(Options{
		InputDir:  input,
		OutputDir: output,
		SiteTitle: "Test Site",
	}))

	page := readFile(t, output, "a/index.html")
	require.NotContains(t, page, "2024-01-01")
	require.Contains(t, page, "2024-02-02")
}
