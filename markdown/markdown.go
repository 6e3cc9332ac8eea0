/*
Package markdown converts Markdown bodies into HTML.

Two engines are available: "blackfriday" (the default) and "goldmark". Both behave the same way
with respect to the table of contents: when the source contains a "#" anywhere, the output begins
with a "Table of Contents" heading followed by a <div class="toc"> list linking every heading, and
every heading in the document is pushed down one level so the injected heading stays the only
top-level one.
*/
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strconv"
)

// Engine names accepted by New.
const (
	EngineBlackfriday = "blackfriday"
	EngineGoldmark    = "goldmark"
)

// ErrUnknownEngine is returned by New for an unsupported engine name.
var ErrUnknownEngine = errors.New("unknown markdown engine")

// tocHeader precedes the table of contents.
const tocHeader = "<h1>Table of Contents</h1>\n"

// maxLevel is the deepest HTML heading.
const maxLevel = 6

// Converter turns Markdown source into HTML.
type Converter interface {
	Convert(src []byte) ([]byte, error)
}

// New returns the Converter for the named engine. An empty name selects blackfriday.
func New(engine string) (Converter, error) {
	switch engine {
	case "", EngineBlackfriday:
		return NewBlackfriday(), nil
	case EngineGoldmark:
		return NewGoldmark(), nil
	}
	return nil, fmt.Errorf("markdown.New: %w: %q", ErrUnknownEngine, engine)
}

// wantsTOC reports whether a table of contents is injected for src.
func wantsTOC(src []byte) bool {
	return bytes.IndexByte(src, '#') >= 0
}

// heading is one entry of the table of contents.
type heading struct {
	level int
	id    string
	text  string
}

// shiftLevel pushes a heading level down by one, staying a valid HTML heading.
func shiftLevel(level int) int {
	if level < maxLevel {
		return level + 1
	}
	return level
}

// toc collects the headings of a document while it is walked. Each engine feeds it the
// headings in document order and stores the returned level and id back on its own node.
type toc struct {
	headings []heading
	ids      map[string]int
}

// add records a heading found at level with the given id and text. It returns the shifted
// level and an id not used by any earlier heading.
func (t *toc) add(level int, id, text string) (int, string) {
	level = shiftLevel(level)
	if id != "" {
		id = t.uniqueID(id)
	}
	t.headings = append(t.headings, heading{level: level, id: id, text: text})
	return level, id
}

// uniqueID suffixes id with "-N" until it is unused, the way the blackfriday renderer does.
func (t *toc) uniqueID(id string) string {
	if t.ids == nil {
		t.ids = make(map[string]int)
	}
	for count, found := t.ids[id]; found; count, found = t.ids[id] {
		next := id + "-" + strconv.Itoa(count+1)
		if _, taken := t.ids[next]; !taken {
			t.ids[id] = count + 1
			id = next
		} else {
			id += "-1"
		}
	}
	t.ids[id] = 0
	return id
}

// writeTOC writes the table of contents block as nested lists following heading levels.
func writeTOC(w *bytes.Buffer, hs []heading) {
	w.WriteString(tocHeader)
	w.WriteString("<div class=\"toc\">\n<ul>")
	if len(hs) > 0 {
		w.WriteString("\n")
	}
	var open []int // level of the <li> left open at each depth
	for _, h := range hs {
		if n := len(open); n > 0 {
			if h.level > open[n-1] {
				w.WriteString("<ul>\n")
			} else {
				w.WriteString("</li>\n")
				open = open[:n-1]
				for len(open) > 0 && open[len(open)-1] >= h.level {
					w.WriteString("</ul>\n</li>\n")
					open = open[:len(open)-1]
				}
			}
		}
		open = append(open, h.level)
		fmt.Fprintf(w, `<li><a href="#%s">%s</a>`, h.id, html.EscapeString(h.text))
	}
	if len(open) > 0 {
		w.WriteString("</li>\n")
		for range open[1:] {
			w.WriteString("</ul>\n</li>\n")
		}
	}
	w.WriteString("</ul>\n</div>\n")
}
