package markdown

import (
	"bytes"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Wikilinks parses [[page]] and [[page|display text]] into ordinary links
// whose destination is the page name with an .md extension, so they resolve
// exactly like markdown links to note files.
var Wikilinks goldmark.Extender = &wikilinks{}

type wikilinks struct{}

func (e *wikilinks) Extend(m goldmark.Markdown) {
	// Higher priority than the regular link parser so [[..]] is claimed
	// before it is read as nested bracket syntax.
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&wikilinkParser{}, 150),
	))
}

type wikilinkParser struct{}

func (p *wikilinkParser) Trigger() []byte {
	return []byte{'['}
}

func (p *wikilinkParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	// Shortest valid form is [[x]]. The whole link must sit on one line.
	if len(line) < 5 || line[1] != '[' {
		return nil
	}
	stop := bytes.Index(line, []byte("]]"))
	if stop < 2 {
		return nil
	}

	inner := string(line[2:stop])
	page, display := inner, inner
	if i := strings.IndexByte(inner, '|'); i >= 0 {
		page, display = inner[:i], inner[i+1:]
	}
	page = strings.TrimSpace(page)
	display = strings.TrimSpace(display)
	if page == "" || display == "" {
		return nil
	}

	dest := page
	if !strings.EqualFold(path.Ext(page), ".md") {
		dest += ".md"
	}

	block.Advance(stop + 2)
	link := gast.NewLink()
	link.Destination = []byte(dest)
	link.AppendChild(link, gast.NewString([]byte(display)))
	return link
}
