package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Comments elides %%..%% comment syntax from the output. Inline comments sit
// on a single line; a line holding only %% opens a comment block that runs
// until the next such line, or to the end of the document when unclosed.
var Comments goldmark.Extender = &comments{}

type comments struct{}

func (e *comments) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&commentBlockParser{}, 800),
		),
		parser.WithInlineParsers(
			util.Prioritized(&inlineCommentParser{}, 500),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&commentRenderer{}, 500),
	))
}

var kindInlineComment = gast.NewNodeKind("InlineComment")

type inlineComment struct {
	gast.BaseInline
}

func (n *inlineComment) Kind() gast.NodeKind {
	return kindInlineComment
}

func (n *inlineComment) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type inlineCommentParser struct{}

func (p *inlineCommentParser) Trigger() []byte {
	return []byte{'%'}
}

func (p *inlineCommentParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	// Shortest valid form is %%x%%.
	if len(line) < 5 || line[1] != '%' {
		return nil
	}
	stop := bytes.Index(line[3:], []byte("%%"))
	if stop < 0 {
		return nil
	}
	block.Advance(stop + 5)
	return &inlineComment{}
}

var kindCommentBlock = gast.NewNodeKind("CommentBlock")

type commentBlock struct {
	gast.BaseBlock
}

func (n *commentBlock) Kind() gast.NodeKind {
	return kindCommentBlock
}

func (n *commentBlock) IsRaw() bool {
	return true
}

func (n *commentBlock) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type commentBlockParser struct{}

func (p *commentBlockParser) Trigger() []byte {
	return []byte{'%'}
}

func isCommentFence(line []byte, lineOffset int) bool {
	width, _ := util.IndentWidth(line, lineOffset)
	if width > 3 {
		return false
	}
	return string(util.TrimRightSpace(util.TrimLeftSpace(line))) == "%%"
}

func (p *commentBlockParser) Open(parent gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, segment := reader.PeekLine()
	if !isCommentFence(line, reader.LineOffset()) {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return &commentBlock{}, parser.NoChildren
}

func (p *commentBlockParser) Continue(node gast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isCommentFence(line, reader.LineOffset()) {
		reader.Advance(segment.Len() - 1)
		return parser.Close
	}
	// Commented lines are consumed and dropped.
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *commentBlockParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {
}

func (p *commentBlockParser) CanInterruptParagraph() bool {
	return true
}

func (p *commentBlockParser) CanAcceptIndentedLine() bool {
	return false
}

type commentRenderer struct{}

func (r *commentRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindInlineComment, renderNothing)
	reg.Register(kindCommentBlock, renderNothing)
}

func renderNothing(w util.BufWriter, source []byte, node gast.Node, entering bool) (gast.WalkStatus, error) {
	return gast.WalkSkipChildren, nil
}
