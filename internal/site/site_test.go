package site

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	updated = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
)

func TestRenderPage_ShowCreatedDate_EmitsBothDates(t *testing.T) {
	r, err := NewRenderer("My Site")
	require.NoError(t, err)

	out, err := r.RenderPage("A Note", "<p>body</p>", created, updated, true)
	require.NoError(t, err)
	require.Contains(t, out, "<title>A Note | My Site</title>")
	require.Contains(t, out, `<time datetime="2024-01-02">January 2024</time>`)
	require.Contains(t, out, `<time datetime="2024-03-04">March 2024</time>`)
	require.Contains(t, out, "<p>body</p>")
}

func TestRenderPage_HideCreatedDate_OmitsCreated(t *testing.T) {
	r, err := NewRenderer("My Site")
	require.NoError(t, err)

	out, err := r.RenderPage("A Note", "<p>body</p>", created, updated, false)
	require.NoError(t, err)
	require.NotContains(t, out, "2024-01-02")
	require.Contains(t, out, `<time datetime="2024-03-04">March 2024</time>`)
}

func TestRenderPage_TitleIsEscaped_BodyIsNot(t *testing.T) {
	r, err := NewRenderer("My Site")
	require.NoError(t, err)

	out, err := r.RenderPage("a < b", "<p>raw & html</p>", created, updated, true)
	require.NoError(t, err)
	require.Contains(t, out, "a &lt; b")
	require.Contains(t, out, "<p>raw & html</p>")
}

func TestRenderIndex_ListsEntriesInOrder(t *testing.T) {
	r, err := NewRenderer("My Site")
	require.NoError(t, err)

	out, err := r.RenderIndex([]IndexEntry{
		{Title: "Newest", Link: "/notes/newest"},
		{Title: "Older", Link: "/notes/older"},
	})
	require.NoError(t, err)
	require.Contains(t, out, `<a href="/notes/newest">Newest</a>`)
	require.Contains(t, out, `<a href="/notes/older">Older</a>`)
	require.Less(t,
		strings.Index(out, "Newest"), strings.Index(out, "Older"),
		"entries must keep the given order")
}

func TestRenderIndex_NoEntries_StillRenders(t *testing.T) {
	r, err := NewRenderer("My Site")
	require.NoError(t, err)

	out, err := r.RenderIndex(nil)
	require.NoError(t, err)
	require.Contains(t, out, "<title>Home | My Site</title>")
}
