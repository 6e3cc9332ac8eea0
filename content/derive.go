package content

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordsPerMinute is the reading speed used for the reading time.
const WordsPerMinute = 130

var (
	// commentRegexp matches header-style comments left in a body.
	commentRegexp = regexp.MustCompile(`<!-- .* -->`)

	// excerptRegexp matches what an excerpt leaves out entirely: heading marks,
	// top headings, comments and the table of contents.
	excerptRegexp = regexp.MustCompile(`#|<h(?:1|2 id=".*")>.*</h(?:1|2)>|<!-- .* -->|<div class="toc">(?s:.*?)</div>`)

	titleReplacer = strings.NewReplacer("-", " ", "_", " ")

	// bracketReplacer blanks angle brackets the tokenizer leaves in text, like "a < b".
	bracketReplacer = strings.NewReplacer("<", " ", ">", " ")
)

// StripComments removes comments like "<!-- key : value -->" from s.
func StripComments(s string) string {
	return commentRegexp.ReplaceAllString(s, "")
}

// WordsCount returns the number of whitespace separated words in s.
func WordsCount(s string) int {
	return len(strings.Fields(s))
}

// ReadingTime returns the minutes needed to read words, never less than one.
func ReadingTime(words int) int {
	if t := words / WordsPerMinute; t > 0 {
		return t
	}
	return 1
}

// Truncate returns the first n words of the HTML in s as plain text.
func Truncate(s string, n int) string {
	s = excerptRegexp.ReplaceAllString(s, "")
	words := strings.Fields(stripTags(s))
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

// stripTags replaces every tag in s by a space, keeping text as written apart from stray
// angle brackets, which become spaces too.
func stripTags(s string) string {
	var (
		b strings.Builder
		z = html.NewTokenizer(strings.NewReader(s))
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			bracketReplacer.WriteString(&b, string(z.Raw()))
		default:
			b.WriteByte(' ')
		}
	}
}

// DefaultTitle turns a slug like "hello-world" into "Hello World".
func DefaultTitle(slug, lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return cases.Title(tag).String(titleReplacer.Replace(slug))
}
