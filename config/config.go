// Package config loads the site settings file.
//
// The top-level scalar keys of the file are the settings: a flat overlay on top of Defaults that is
// merged into every page. Collections of content are declared as a list under "collection":
//
//	author = "me"
//	site_url = "https://example.com"
//
//	[[collection]]
//	name = "blog_path"
//	path = "/blog/"
//	source = "content/posts/**/*.md"
//	recursive = true
//
// TOML, YAML and JSON files are accepted; the format is chosen by the file extension.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ancientlore/otsu/render"
)

// File formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// collectionKey holds the collection declarations instead of a setting.
const collectionKey = "collection"

// ErrUnknownFormat is returned for settings files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown settings format")

// Collection declares a collection of content files.
type Collection struct {
	Name      string `toml:"name" yaml:"name" json:"name"`                // Logical name
	Path      string `toml:"path" yaml:"path" json:"path"`                // Output path, like "/blog/"
	Source    string `toml:"source" yaml:"source" json:"source"`          // Glob of source files
	Recursive bool   `toml:"recursive" yaml:"recursive" json:"recursive"` // Whether "**" crosses directories
}

// DefaultCollection is used when the settings file declares none.
var DefaultCollection = Collection{
	Name:      "blog_path",
	Path:      "/blog/",
	Source:    "content/posts/**/*.md",
	Recursive: true,
}

// Config is the loaded settings file. It is not modified after loading.
type Config struct {
	settings    render.Params
	collections []Collection
}

// collections is used to decode the collection declarations.
type collections struct {
	Collection []Collection `toml:"collection" yaml:"collection" json:"collection"`
}

// Defaults returns the settings used when the file does not override them.
func Defaults(now time.Time) render.Params {
	return render.Params{
		"theme":             "default",
		"relative":          "true",
		"base_path":         "/",
		"subtitle":          "Lorem Ipsum",
		"author":            "otsu",
		"tags":              "none",
		"site_url":          "http://example.com",
		"list_description":  "",
		"current_year":      strconv.Itoa(now.Year()),
		"post_posted_on":    "Posted on",
		"post_reading_time": "minutes to read",
		"post_tags":         "Tags",
		"post_words":        "words",
	}
}

// FormatOf returns the format of the named file by its extension.
func FormatOf(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Load reads the named settings file. It is not an error if the file does not exist;
// the defaults are used instead.
func Load(name string) (*Config, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Parse(nil, format)
		}
		return nil, fmt.Errorf("Cannot read settings file: %w", err)
	}
	cfg, err := Parse(b, format)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse settings file %q: %w", name, err)
	}
	return cfg, nil
}

// Parse decodes settings data in the given format.
func Parse(data []byte, format string) (*Config, error) {
	var (
		raw  = make(map[string]any)
		decl collections
		err  error
	)
	if len(bytes.TrimSpace(data)) > 0 {
		switch format {
		case FormatTOML:
			if err = toml.Unmarshal(data, &raw); err == nil {
				err = toml.Unmarshal(data, &decl)
			}
		case FormatYAML:
			if err = yaml.Unmarshal(data, &raw); err == nil {
				err = yaml.Unmarshal(data, &decl)
			}
		case FormatJSON:
			d := json.NewDecoder(bytes.NewReader(data))
			d.UseNumber()
			if err = d.Decode(&raw); err == nil {
				err = json.Unmarshal(data, &decl)
			}
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		}
		if err != nil {
			return nil, err
		}
	}

	cfg := Config{
		settings:    Defaults(time.Now()),
		collections: decl.Collection,
	}
	for k, v := range raw {
		if k == collectionKey {
			continue
		}
		if s, ok := scalar(v); ok {
			cfg.settings[k] = s
		}
	}
	if len(cfg.collections) == 0 {
		cfg.collections = []Collection{DefaultCollection}
	}
	for i, c := range cfg.collections {
		if c.Name == "" || c.Source == "" {
			return nil, fmt.Errorf("collection %d needs a name and a source", i)
		}
	}
	return &cfg, nil
}

// scalar returns the string form of a setting value. Tables and arrays are not settings.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case map[string]any, []any:
		return "", false
	}
	return fmt.Sprint(v), true
}

// Settings returns a copy of the flat settings.
func (c *Config) Settings() render.Params {
	return c.settings.Merge()
}

// Setting returns the named setting.
func (c *Config) Setting(key string) string {
	return c.settings[key]
}

// Collections returns the declared collections.
func (c *Config) Collections() []Collection {
	r := make([]Collection, len(c.collections))
	copy(r, c.collections)
	return r
}

// LayoutPattern returns the glob of the theme's layout files with the given extension.
func (c *Config) LayoutPattern(ext string) string {
	return filepath.Join("themes", c.settings["theme"], "layout", "*."+ext)
}
