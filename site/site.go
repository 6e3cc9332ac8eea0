/*
Package site assembles content records into finished pages.

For every record a post page is written to "<out>/<path>/<unique_id>-<slug>/index.html" by
wrapping the "post" layout into the "page" layout and filling it with the record. For a whole
collection a list page is written to "<out>/<path>/index.html": each record is rendered with the
"item" layout, the results are joined and placed into the "list" layout inside the "page" layout.
Fields other than "content" on the list page come from the first record of the collection.

A "sitemap.txt" naming every HTML page is written once all collections are done.
*/
package site

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ancientlore/otsu/content"
	"github.com/ancientlore/otsu/layout"
	"github.com/ancientlore/otsu/metrics"
	"github.com/ancientlore/otsu/render"
)

// Layout set names.
const (
	HTML = "html"
	XML  = "xml"
)

// DefaultOutput is the default output folder.
const DefaultOutput = "_site"

var (
	// ErrEmptyCollection is returned when a list is rendered for a collection without records.
	ErrEmptyCollection = errors.New("empty collection")
	// ErrNoLayouts is returned when a layout set was never registered.
	ErrNoLayouts = errors.New("no such layout set")
)

// Site writes pages into an output folder.
type Site struct {
	out      string
	layouts  map[string]*layout.Set
	recorder metrics.Recorder
	pages    []string // URL paths of written HTML pages
}

// New returns a Site writing to out. rec may be nil.
func New(out string, rec metrics.Recorder) *Site {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Site{
		out:      out,
		layouts:  make(map[string]*layout.Set),
		recorder: rec,
	}
}

// AddLayouts registers a layout set under its name.
func (s *Site) AddLayouts(set *layout.Set) {
	s.layouts[set.Name()] = set
}

// templates reads the named items of a layout set.
func (s *Site) templates(setName string, items ...string) ([]string, error) {
	set, ok := s.layouts[setName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoLayouts, setName)
	}
	r := make([]string, len(items))
	for i, item := range items {
		tpl, err := set.Template(item)
		if err != nil {
			return nil, err
		}
		r[i] = tpl
	}
	return r, nil
}

// RenderPosts writes a page for every record using the given layout set.
func (s *Site) RenderPosts(setName string, records []*content.Record) error {
	tpls, err := s.templates(setName, layout.Page, layout.Post)
	if err != nil {
		return fmt.Errorf("RenderPosts: %w", err)
	}
	for _, r := range records {
		var page render.Session
		page.Stage(tpls[0], render.Params{"content": tpls[1]})
		page.Then(r.Params())
		fn := filepath.Join(s.out, r.PathOrig, r.FormattedName, "index.html")
		if err = writeFile(fn, page.String()); err != nil {
			return fmt.Errorf("RenderPosts: %w", err)
		}
		s.recorder.IncPages(metrics.KindPost)
		s.pages = append(s.pages, pagePath(r.PathOrig, r.FormattedName))
		log.Printf("Rendered %s", r.ShortName)
	}
	return nil
}

// RenderList writes the index page of the collection using the given layout set.
func (s *Site) RenderList(setName string, pc *content.PathContainer, records []*content.Record) error {
	err := s.renderList(setName, pc, records, filepath.Join(s.out, pc.PathOrig, "index.html"))
	if err != nil {
		return fmt.Errorf("RenderList: %w", err)
	}
	s.recorder.IncPages(metrics.KindList)
	s.pages = append(s.pages, pagePath(pc.PathOrig))
	log.Printf("Rendered list %s", pc.Name)
	return nil
}

// RenderFeed writes "index.xml" for the collection using the xml layout set. It does
// nothing when the set is missing or has no page layout.
func (s *Site) RenderFeed(pc *content.PathContainer, records []*content.Record) error {
	set, ok := s.layouts[XML]
	if !ok || !set.Has(layout.Page) {
		return nil
	}
	err := s.renderList(XML, pc, records, filepath.Join(s.out, pc.PathOrig, "index.xml"))
	if err != nil {
		return fmt.Errorf("RenderFeed: %w", err)
	}
	s.recorder.IncPages(metrics.KindFeed)
	log.Printf("Rendered feed %s", pc.Name)
	return nil
}

func (s *Site) renderList(setName string, pc *content.PathContainer, records []*content.Record, fn string) error {
	if len(records) == 0 {
		return fmt.Errorf("%s: %w", pc.Name, ErrEmptyCollection)
	}
	tpls, err := s.templates(setName, layout.Page, layout.List, layout.Item)
	if err != nil {
		return err
	}

	var shell render.Session
	shell.Stage(tpls[0], render.Params{"content": tpls[1]})

	var items strings.Builder
	for _, r := range records {
		var item render.Session
		item.Stage(tpls[2], r.Params())
		items.WriteString(item.String())
	}

	shell.Then(records[0].Params().Merge(render.Params{"content": items.String()}))
	return writeFile(fn, shell.String())
}

// WriteSitemap writes "sitemap.txt" listing the absolute URL of every HTML page written so far.
func (s *Site) WriteSitemap(siteURL string) error {
	if len(s.pages) == 0 {
		return nil
	}
	base := strings.TrimSuffix(siteURL, "/")
	pages := slices.Clone(s.pages)
	slices.Sort(pages)
	var b strings.Builder
	for _, p := range slices.Compact(pages) {
		b.WriteString(base)
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := writeFile(filepath.Join(s.out, "sitemap.txt"), b.String()); err != nil {
		return fmt.Errorf("WriteSitemap: %w", err)
	}
	return nil
}

// pagePath returns the URL path of the folder holding a page, with leading and trailing slashes.
func pagePath(elem ...string) string {
	p := path.Join(append([]string{"/"}, elem...)...)
	if p != "/" {
		p += "/"
	}
	return p
}

// writeFile writes data to fn, creating folders as needed.
func writeFile(fn, data string) error {
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return err
	}
	return os.WriteFile(fn, []byte(data), 0644)
}
