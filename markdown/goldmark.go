package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Goldmark converts Markdown with github.com/yuin/goldmark.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a Goldmark converter with GFM and footnotes enabled. Raw HTML in the
// source is passed through.
func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

// Convert renders src to HTML.
func (g *Goldmark) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if !wantsTOC(src) {
		if err := g.md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("goldmark: %w", err)
		}
		return buf.Bytes(), nil
	}

	doc := g.md.Parser().Parse(text.NewReader(src))
	var t toc
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		h.Level, id = t.add(h.Level, id, gmText(h, src))
		if id != "" {
			h.SetAttributeString("id", []byte(id))
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("goldmark: %w", err)
	}

	writeTOC(&buf, t.headings)
	if err := g.md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, fmt.Errorf("goldmark: %w", err)
	}
	return buf.Bytes(), nil
}

// gmText collects the inline text below n.
func gmText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
