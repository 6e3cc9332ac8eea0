/*
Package header extracts the metadata block found at the top of a content file.

The block is a run of HTML comments of the form

	<!-- title : My glorious page -->
	<!-- tags : go, web -->

Parsing stops at the first line that is not such a directive. A "tags" directive whose value is a
single character also stops parsing; that line is left in the body.
*/
package header

import (
	"regexp"
	"unicode/utf8"
)

// directiveRegexp matches one directive anchored at the current offset, including the
// whitespace that surrounds it.
var directiveRegexp = regexp.MustCompile(`^\s*<!--\s*(.+?)\s*:\s*(.+?)\s*-->\s*`)

// Header is an ordered mapping of directive keys to values.
type Header struct {
	keys   []string
	values map[string]string
}

// Get returns the value stored for key.
func (h Header) Get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Keys returns the keys in the order they were first seen.
func (h Header) Keys() []string {
	k := make([]string, len(h.keys))
	copy(k, h.keys)
	return k
}

// Len reports the number of keys.
func (h Header) Len() int {
	return len(h.keys)
}

// Map returns a copy of the header as a plain map.
func (h Header) Map() map[string]string {
	m := make(map[string]string, len(h.values))
	for k, v := range h.values {
		m[k] = v
	}
	return m
}

// set upserts key; a repeated key keeps its original position.
func (h *Header) set(key, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Parse reads the leading directives of text. It returns the header and the byte offset
// where the body begins.
func Parse(text string) (Header, int) {
	var (
		h   Header
		end int
	)
	for end < len(text) {
		m := directiveRegexp.FindStringSubmatchIndex(text[end:])
		if m == nil {
			break
		}
		key := text[end+m[2] : end+m[3]]
		value := text[end+m[4] : end+m[5]]
		if key == "tags" && utf8.RuneCountInString(value) < 2 {
			break
		}
		h.set(key, value)
		end += m[1]
	}
	return h, end
}
