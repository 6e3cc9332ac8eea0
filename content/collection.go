package content

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ancientlore/otsu/render"
)

// PathContainer binds a collection to its source files and output location.
type PathContainer struct {
	Name         string   // Logical name of the collection
	PathOrig     string   // Output path, like "/blog/"
	Source       string   // Glob pattern of the source files
	Recursive    bool     // Whether "**" crosses directories
	RelativeRoot string   // Prefix leading from a page back to the site root
	Files        []string // Matched source files, in match order
}

// NewPathContainer matches the source pattern and returns the container. When recursive
// is false, "**" matches like "*".
func NewPathContainer(name, pathOrig, source string, recursive bool) (*PathContainer, error) {
	pattern := source
	if !recursive {
		for strings.Contains(pattern, "**") {
			pattern = strings.ReplaceAll(pattern, "**", "*")
		}
	}
	files, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("NewPathContainer %s: %w", name, err)
	}
	return &PathContainer{
		Name:         name,
		PathOrig:     pathOrig,
		Source:       source,
		Recursive:    recursive,
		RelativeRoot: RelativeRoot(pathOrig),
		Files:        files,
	}, nil
}

// RelativeRoot returns "./" for a path without slashes and one "../" per slash otherwise.
func RelativeRoot(pathOrig string) string {
	n := strings.Count(pathOrig, "/")
	if n == 0 {
		return "./"
	}
	return strings.Repeat("../", n)
}

// ReadRecord reads the file name and builds its record.
func ReadRecord(name string, settings render.Params, pc *PathContainer, opts Options) (*Record, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("ReadRecord: %w", err)
	}
	return NewRecord(name, string(b), settings, pc, opts)
}

// Collect builds a record for every file of pc, in the order the files were matched.
// The first failure aborts the collection.
func Collect(settings render.Params, pc *PathContainer, opts Options) ([]*Record, error) {
	records := make([]*Record, 0, len(pc.Files))
	for _, fn := range pc.Files {
		r, err := ReadRecord(fn, settings, pc, opts)
		if err != nil {
			return nil, fmt.Errorf("Collect %s: %w", pc.Name, err)
		}
		records = append(records, r)
	}
	return records, nil
}
