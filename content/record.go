/*
Package content turns source files into fully resolved content records.

A record combines, from lowest to highest precedence, the global settings, the metadata header of
the file (with defaults for "language" and "tags"), the fields derived from the file name and body,
and the path context of the collection the file belongs to. Every field is computed when the record
is built; a record never changes afterwards.
*/
package content

import (
	"fmt"
	"strconv"

	"github.com/ancientlore/otsu/header"
	"github.com/ancientlore/otsu/markdown"
	"github.com/ancientlore/otsu/render"
)

// Header defaults.
const (
	DefaultLanguage = "en"
	DefaultTags     = "blog"
)

// Options holds collection-level parameters for building records.
type Options struct {
	Truncate  int                // Excerpt length in words; excerpts are made when 2 or more
	Converter markdown.Converter // Markdown engine; blackfriday when nil
}

// Record is a content file with all of its metadata resolved.
type Record struct {
	FileMeta

	Source       string // Path of the source file
	Title        string // Title from the header, the settings, or the slug
	Language     string // "language" header
	Tags         string // "tags" header
	Content      string // Body, rendered to HTML for Markdown files
	WordsCount   int    // Words in the body before rendering
	ReadingTime  int    // Minutes to read
	Truncated    string // Plain text excerpt
	HasTruncated bool   // Whether Truncated was computed
	BasePath     string // Relative root of the collection
	PathOrig     string // Output path of the collection

	Header   header.Header // Directives from the top of the file
	Settings render.Params // Global settings
}

// NewRecord builds the record for the file name with source text src. pc supplies the
// path context and may be nil.
func NewRecord(name, src string, settings render.Params, pc *PathContainer, opts Options) (*Record, error) {
	fm, err := ParseFilename(name)
	if err != nil {
		return nil, err
	}
	h, end := header.Parse(src)
	r := Record{
		FileMeta: fm,
		Source:   name,
		Language: DefaultLanguage,
		Tags:     DefaultTags,
		Header:   h,
		Settings: settings.Merge(),
	}
	if v, ok := h.Get("language"); ok {
		r.Language = v
	}
	if v, ok := h.Get("tags"); ok {
		r.Tags = v
	}
	if v, ok := h.Get("title"); ok {
		r.Title = v
	} else if v, ok := settings["title"]; ok {
		r.Title = v
	} else {
		r.Title = DefaultTitle(fm.ShortName, r.Language)
	}
	if pc != nil {
		r.BasePath = pc.RelativeRoot
		r.PathOrig = pc.PathOrig
	}

	body := StripComments(src[end:])
	r.WordsCount = WordsCount(body)
	r.ReadingTime = ReadingTime(r.WordsCount)
	r.Content = body
	if fm.Markdown {
		conv := opts.Converter
		if conv == nil {
			conv = markdown.NewBlackfriday()
		}
		b, err := conv.Convert([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("NewRecord %q: %w", name, err)
		}
		r.Content = string(b)
	}
	if opts.Truncate > 1 {
		r.Truncated = Truncate(r.Content, opts.Truncate)
		r.HasTruncated = true
	}
	return &r, nil
}

// Params flattens the record for rendering.
func (r *Record) Params() render.Params {
	p := make(render.Params, len(r.Settings)+r.Header.Len()+16)
	for k, v := range r.Settings {
		p[k] = v
	}
	p["language"] = r.Language
	p["tags"] = r.Tags
	p["title"] = r.Title
	for _, k := range r.Header.Keys() {
		p[k], _ = r.Header.Get(k)
	}

	p["date"] = r.Date
	p["rfc_2822_date"] = r.RFC2822Date
	p["short_name"] = r.ShortName
	p["unique_id"] = r.UniqueID
	p["formated_name"] = r.FormattedName
	p["markdown"] = strconv.FormatBool(r.Markdown)
	p["content"] = r.Content
	p["words_count"] = strconv.Itoa(r.WordsCount)
	p["reading_time"] = strconv.Itoa(r.ReadingTime)
	if r.HasTruncated {
		p["truncated"] = r.Truncated
	}

	p["base_path"] = r.BasePath
	p["path_orig"] = r.PathOrig
	return p
}
