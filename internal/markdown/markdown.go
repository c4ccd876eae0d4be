// Package markdown renders note bodies to HTML. It layers three small syntax
// extensions over goldmark (wikilinks, %% comments and ==mark== highlights)
// and routes every link and image destination through a URLResolver so
// internal links point at resolved site paths and referenced assets get
// marked reachable.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// URLResolver maps raw link and image destinations to site URLs. A resolution
// error aborts the render of the whole document.
type URLResolver interface {
	Resolve(url string) (string, error)
}

// Render converts a note body (front matter already removed) to HTML.
func Render(body string, resolver URLResolver) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.TaskList,
			extension.DefinitionList,
			Wikilinks,
			Comments,
			Marks,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&resolvingRenderer{resolver: resolver}, 500),
			),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// resolvingRenderer replaces the default link and image rendering so the
// destination passes through the resolver before the tag is emitted.
type resolvingRenderer struct {
	resolver URLResolver
}

func (r *resolvingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gast.KindLink, r.renderLink)
	reg.Register(gast.KindImage, r.renderImage)
}

func (r *resolvingRenderer) renderLink(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</a>")
		return gast.WalkContinue, nil
	}
	n := node.(*gast.Link)
	resolved, err := r.resolver.Resolve(string(n.Destination))
	if err != nil {
		return gast.WalkStop, err
	}
	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(resolved), true)))
	if n.Title != nil {
		_, _ = w.WriteString(`" title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
	}
	_, _ = w.WriteString(`">`)
	return gast.WalkContinue, nil
}

func (r *resolvingRenderer) renderImage(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkContinue, nil
	}
	n := node.(*gast.Image)
	resolved, err := r.resolver.Resolve(string(n.Destination))
	if err != nil {
		return gast.WalkStop, err
	}
	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(resolved), true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML(textContent(n, source)))
	_, _ = w.WriteString(`"`)
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(">")
	return gast.WalkSkipChildren, nil
}

// textContent flattens a node's inline children to plain text (alt text).
func textContent(n gast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gast.Text:
			buf.Write(node.Segment.Value(source))
		case *gast.String:
			buf.Write(node.Value)
		default:
			buf.Write(textContent(c, source))
		}
	}
	return buf.Bytes()
}
