// Package minify shrinks HTML and CSS text on the way into the output tree.
//
// Minification is best-effort and must never fail a build: on any parse
// problem the input is logged and returned unchanged.
package minify

import (
	"bytes"
	"log/slog"
	"path"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/notegen/internal/logfields"
)

// preserveContent lists elements whose text must not be touched.
var preserveContent = map[string]bool{
	"pre":      true,
	"code":     true,
	"textarea": true,
	"script":   true,
	"style":    true,
}

// ShouldMinifyPath reports whether the file at p is minified rather than
// copied byte-for-byte.
func ShouldMinifyPath(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm", ".css":
		return true
	}
	return false
}

// ForPath minifies content according to the extension of p.
func ForPath(p, content string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return HTML(content)
	case ".css":
		return CSS(content)
	}
	return content
}

// HTML strips comments and collapses inter-tag whitespace. The input is
// parsed as a full document, so fragments come back wrapped in the usual
// html/head/body skeleton.
func HTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		slog.Error("failed to minify HTML; leaving output as-is", logfields.Error(err))
		return s
	}
	compact(doc, false)
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		slog.Error("failed to render minified HTML; leaving output as-is", logfields.Error(err))
		return s
	}
	return buf.String()
}

func compact(n *html.Node, preserve bool) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			if !preserve {
				collapsed := collapseSpace(c.Data)
				if collapsed == "" {
					n.RemoveChild(c)
				} else {
					c.Data = collapsed
				}
			}
		case html.CommentNode:
			n.RemoveChild(c)
		case html.ElementNode:
			compact(c, preserve || preserveContent[c.Data])
		}
		c = next
	}
}

// collapseSpace reduces each whitespace run to a single space and drops
// whitespace-only text entirely.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// CSS strips comments and collapses whitespace, including around the
// punctuation that never needs surrounding space.
func CSS(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inComment := false
	pendingSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inComment {
			if c == '*' && i+1 < len(s) && s[i+1] == '/' {
				inComment = false
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			inComment = true
			i++
			continue
		}
		if isSpace(c) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			if !cssTight(c) && !cssTight(b.String()[b.Len()-1]) {
				b.WriteByte(' ')
			}
			pendingSpace = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// cssTight reports bytes that never need adjacent whitespace.
func cssTight(b byte) bool {
	switch b {
	case '{', '}', ';', ':', ',', '>':
		return true
	}
	return false
}
