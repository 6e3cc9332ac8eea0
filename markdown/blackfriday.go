package markdown

import (
	"bytes"

	"github.com/russross/blackfriday/v2"
)

// bfExtensions are the parser extensions used for every document.
const bfExtensions = blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs | blackfriday.Footnotes

// Blackfriday converts Markdown with github.com/russross/blackfriday/v2.
type Blackfriday struct {
	flags blackfriday.HTMLFlags
}

// NewBlackfriday returns a Blackfriday converter using the common HTML flags.
func NewBlackfriday() *Blackfriday {
	return &Blackfriday{flags: blackfriday.CommonHTMLFlags}
}

// Convert renders src to HTML.
func (b *Blackfriday) Convert(src []byte) ([]byte, error) {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: b.flags})
	if !wantsTOC(src) {
		return blackfriday.Run(src, blackfriday.WithRenderer(r), blackfriday.WithExtensions(bfExtensions)), nil
	}

	doc := blackfriday.New(blackfriday.WithRenderer(r), blackfriday.WithExtensions(bfExtensions)).Parse(src)
	var t toc
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || n.Type != blackfriday.Heading || n.IsTitleblock {
			return blackfriday.GoToNext
		}
		n.Level, n.HeadingID = t.add(n.Level, n.HeadingID, bfText(n))
		return blackfriday.SkipChildren
	})

	var buf bytes.Buffer
	writeTOC(&buf, t.headings)
	r.RenderHeader(&buf, doc)
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return r.RenderNode(&buf, n, entering)
	})
	r.RenderFooter(&buf, doc)
	return buf.Bytes(), nil
}

// bfText collects the literal text below n.
func bfText(n *blackfriday.Node) string {
	var buf bytes.Buffer
	n.Walk(func(c *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && (c.Type == blackfriday.Text || c.Type == blackfriday.Code) {
			buf.Write(c.Literal)
		}
		return blackfriday.GoToNext
	})
	return buf.String()
}
