package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlSettings = `
author = "someone"
current_year = 1999
relative = false
ratio = 1.5

[extra]
ignored = "yes"

[[collection]]
name = "blog_path"
path = "/blog/"
source = "content/posts/**/*.md"
recursive = true

[[collection]]
name = "pages"
path = "pages"
source = "content/pages/*.html"
`

const yamlSettings = `
author: someone
current_year: 1999
relative: false
list: [1, 2]
collection:
  - name: notes
    path: /notes/
    source: notes/*.md
`

const jsonSettings = `{
	"author": "someone",
	"current_year": 1999,
	"relative": false,
	"collection": [{"name": "notes", "path": "/notes/", "source": "notes/*.md"}]
}`

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		format string
		data   string
		n      int
	}{
		{FormatTOML, tomlSettings, 2},
		{FormatYAML, yamlSettings, 1},
		{FormatJSON, jsonSettings, 1},
	} {
		t.Run(tc.format, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.data), tc.format)
			require.NoError(t, err)

			s := cfg.Settings()
			assert.Equal(t, "someone", s["author"])
			assert.Equal(t, "1999", s["current_year"])
			assert.Equal(t, "false", s["relative"])
			assert.Equal(t, "default", s["theme"], "defaults must survive")
			assert.NotContains(t, s, "collection")
			assert.NotContains(t, s, "extra")
			assert.NotContains(t, s, "list")

			require.Len(t, cfg.Collections(), tc.n)
		})
	}
}

func TestParseTOMLCollections(t *testing.T) {
	cfg, err := Parse([]byte(tomlSettings), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, []Collection{
		DefaultCollection,
		{Name: "pages", Path: "pages", Source: "content/pages/*.html"},
	}, cfg.Collections())
	assert.Equal(t, "1.5", cfg.Setting("ratio"))
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil, FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, []Collection{DefaultCollection}, cfg.Collections())
	assert.Equal(t, strconv.Itoa(time.Now().Year()), cfg.Setting("current_year"))
	assert.Equal(t, filepath.Join("themes", "default", "layout", "*.html"), cfg.LayoutPattern("html"))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("author = "), FormatTOML)
	assert.Error(t, err)

	_, err = Parse([]byte("[[collection]]\npath = \"/x/\"\n"), FormatTOML)
	assert.Error(t, err, "a collection needs a name and a source")

	_, err = Parse([]byte("a: b"), "ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Setting("theme"))

	fn := filepath.Join(dir, "blog_settings.yml")
	require.NoError(t, os.WriteFile(fn, []byte("theme: dark\n"), 0644))
	cfg, err = Load(fn)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Setting("theme"))
	assert.Equal(t, filepath.Join("themes", "dark", "layout", "*.xml"), cfg.LayoutPattern("xml"))

	_, err = Load(filepath.Join(dir, "settings.ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSettingsIsCopy(t *testing.T) {
	cfg, err := Parse(nil, FormatJSON)
	require.NoError(t, err)
	s := cfg.Settings()
	s["theme"] = "changed"
	assert.Equal(t, "default", cfg.Setting("theme"))
}

func TestParseRecursiveGlob(t *testing.T) {
	cfg, err := Parse([]byte("author = \"me\"\n\n[[collection]]\nname = \"blog_path\"\npath = \"/blog/\"\nsource = \"content/posts/**/*.md\"\nrecursive = true\n"), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, "me", cfg.Setting("author"))
	assert.Equal(t, []Collection{DefaultCollection}, cfg.Collections())
}
