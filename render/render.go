/*
Package render substitutes {{ key }} placeholders in templates.

There is no control flow: a placeholder is replaced by the value stored for its key, and a
placeholder whose key is unknown is copied to the output as written. Substituted values are never
scanned again, so a value that looks like a placeholder stays as it is.
*/
package render

import (
	"strings"
)

const (
	otag = "{{"
	ctag = "}}"
)

// Params maps placeholder keys to their values.
type Params map[string]string

// Merge returns a new Params holding p overlaid by each of others in turn.
func (p Params) Merge(others ...Params) Params {
	n := len(p)
	for _, o := range others {
		n += len(o)
	}
	r := make(Params, n)
	for k, v := range p {
		r[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			r[k] = v
		}
	}
	return r
}

// Render returns tpl with every known placeholder replaced by its value.
func Render(tpl string, params Params) string {
	var (
		b   strings.Builder
		pos int
	)
	b.Grow(len(tpl))
	for {
		i := strings.Index(tpl[pos:], otag)
		if i < 0 {
			b.WriteString(tpl[pos:])
			return b.String()
		}
		start := pos + i
		b.WriteString(tpl[pos:start])
		key, end, ok := readTag(tpl, start)
		if !ok {
			// not a placeholder here; the next one may start one byte later
			b.WriteByte(tpl[start])
			pos = start + 1
			continue
		}
		if v, found := params[key]; found {
			b.WriteString(v)
		} else {
			b.WriteString(tpl[start:end])
		}
		pos = end
	}
}

// readTag reads the placeholder starting at tpl[start:], returning its key and
// the offset just past the closing braces.
func readTag(tpl string, start int) (key string, end int, ok bool) {
	i := skipSpace(tpl, start+len(otag))
	k := i
	for k < len(tpl) && tpl[k] != '}' && !isSpace(tpl[k]) {
		k++
	}
	if k == i {
		return "", 0, false
	}
	j := skipSpace(tpl, k)
	if !strings.HasPrefix(tpl[j:], ctag) {
		return "", 0, false
	}
	return tpl[i:k], j + len(ctag), true
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
