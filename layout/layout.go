// Package layout discovers the template files of a theme.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Item names used when assembling pages.
const (
	Page = "page"
	Post = "post"
	List = "list"
	Item = "item"
)

// Set maps layout item names, like "page" or "post", to template files.
// A Set is read-only once created.
type Set struct {
	name  string
	files map[string]string
}

// New builds a Set from the files matching pattern. An item is named after its file's
// base name up to the first ".".
func New(name, pattern string) (*Set, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("layout.New: %w", err)
	}
	s := Set{
		name:  name,
		files: make(map[string]string, len(matches)),
	}
	for _, m := range matches {
		base := filepath.Base(m)
		if i := strings.IndexByte(base, '.'); i >= 0 {
			base = base[:i]
		}
		s.files[base] = m
	}
	return &s, nil
}

// Name returns the name the set was registered with, like "html" or "xml".
func (s *Set) Name() string {
	return s.name
}

// Items returns the sorted item names.
func (s *Set) Items() []string {
	items := make([]string, 0, len(s.files))
	for k := range s.files {
		items = append(items, k)
	}
	sort.Strings(items)
	return items
}

// Has reports whether the set has a template for item.
func (s *Set) Has(item string) bool {
	_, ok := s.files[item]
	return ok
}

// Template reads the template for item. An item without a file yields an empty template.
func (s *Set) Template(item string) (string, error) {
	fn, ok := s.files[item]
	if !ok {
		return "", nil
	}
	b, err := os.ReadFile(fn)
	if err != nil {
		return "", fmt.Errorf("layout %s: %w", s.name, err)
	}
	return string(b), nil
}
