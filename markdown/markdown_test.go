package markdown

import (
	"bytes"
	"errors"
	"regexp"
	"slices"
	"strings"
	"testing"
)

func TestWriteTOC(t *testing.T) {
	var tests = []struct {
		hs     []heading
		expect string
	}{
		{nil, "<div class=\"toc\">\n<ul></ul>\n</div>\n"},
		{
			[]heading{{2, "a", "A"}, {3, "b", "B"}, {2, "c", "C & D"}},
			"<div class=\"toc\">\n<ul>\n" +
				"<li><a href=\"#a\">A</a><ul>\n" +
				"<li><a href=\"#b\">B</a></li>\n" +
				"</ul>\n</li>\n" +
				"<li><a href=\"#c\">C &amp; D</a></li>\n" +
				"</ul>\n</div>\n",
		},
		{
			[]heading{{2, "a", "A"}, {3, "b", "B"}, {4, "c", "C"}},
			"<div class=\"toc\">\n<ul>\n" +
				"<li><a href=\"#a\">A</a><ul>\n" +
				"<li><a href=\"#b\">B</a><ul>\n" +
				"<li><a href=\"#c\">C</a></li>\n" +
				"</ul>\n</li>\n" +
				"</ul>\n</li>\n" +
				"</ul>\n</div>\n",
		},
	}
	for i, test := range tests {
		var buf bytes.Buffer
		writeTOC(&buf, test.hs)
		if s := buf.String(); s != tocHeader+test.expect {
			t.Errorf("%d: expected\n%s\nbut got\n%s", i, tocHeader+test.expect, s)
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", EngineBlackfriday, EngineGoldmark} {
		c, err := New(name)
		if err != nil || c == nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
	}
	_, err := New("pandoc")
	if !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("Expected ErrUnknownEngine but got %v", err)
	}
}

func TestConvert(t *testing.T) {
	for _, name := range []string{EngineBlackfriday, EngineGoldmark} {
		c, err := New(name)
		if err != nil {
			t.Fatal(err)
		}

		out, err := c.Convert([]byte("Just some *plain* text.\n"))
		if err != nil {
			t.Errorf("%s: %v", name, err)
		}
		s := string(out)
		if !strings.Contains(s, "<p>Just some <em>plain</em> text.</p>") {
			t.Errorf("%s: unexpected output %q", name, s)
		}
		if strings.Contains(s, "Table of Contents") {
			t.Errorf("%s: no table of contents expected in %q", name, s)
		}

		out, err = c.Convert([]byte("# Hello\n\nIntro.\n\n## World\n\nMore.\n"))
		if err != nil {
			t.Errorf("%s: %v", name, err)
		}
		s = string(out)
		for _, want := range []string{
			"<h1>Table of Contents</h1>\n<div class=\"toc\">",
			`<a href="#hello">Hello</a>`,
			`<a href="#world">World</a>`,
			`<h2 id="hello">Hello</h2>`,
			`<h3 id="world">World</h3>`,
		} {
			if !strings.Contains(s, want) {
				t.Errorf("%s: expected %q in %q", name, want, s)
			}
		}
		if strings.Count(s, "<h1") != 1 {
			t.Errorf("%s: expected a single <h1> in %q", name, s)
		}
		if !strings.HasPrefix(s, tocHeader) {
			t.Errorf("%s: output should start with the table of contents heading: %q", name, s)
		}
	}
}

func TestConvertDuplicateHeadings(t *testing.T) {
	tests := []struct {
		src string
		ids []string
	}{
		{"# Same\n\ntext\n\n# Same\n", []string{"same", "same-1"}},
		{"# Same\n\n# Same\n\n# Same 1\n", []string{"same", "same-1", "same-1-1"}},
	}
	hrefRegexp := regexp.MustCompile(`href="#([^"]*)"`)
	idRegexp := regexp.MustCompile(`<h\d id="([^"]*)"`)
	for _, name := range []string{EngineBlackfriday, EngineGoldmark} {
		c, _ := New(name)
		for _, test := range tests {
			out, err := c.Convert([]byte(test.src))
			if err != nil {
				t.Fatal(err)
			}
			var hrefs, ids []string
			for _, m := range hrefRegexp.FindAllStringSubmatch(string(out), -1) {
				hrefs = append(hrefs, m[1])
			}
			for _, m := range idRegexp.FindAllStringSubmatch(string(out), -1) {
				ids = append(ids, m[1])
			}
			if !slices.Equal(hrefs, test.ids) {
				t.Errorf("%s %q: expected links %v but got %v", name, test.src, test.ids, hrefs)
			}
			if !slices.Equal(ids, test.ids) {
				t.Errorf("%s %q: expected heading ids %v but got %v", name, test.src, test.ids, ids)
			}
		}
	}
}

func TestUniqueID(t *testing.T) {
	var tc toc
	var got []string
	for _, id := range []string{"a", "a", "a-1", "a", "b"} {
		got = append(got, tc.uniqueID(id))
	}
	expect := []string{"a", "a-1", "a-1-1", "a-2", "b"}
	if !slices.Equal(got, expect) {
		t.Errorf("Expected %v but got %v", expect, got)
	}
}
