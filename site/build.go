package site

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ancientlore/otsu/config"
	"github.com/ancientlore/otsu/content"
	"github.com/ancientlore/otsu/layout"
	"github.com/ancientlore/otsu/markdown"
	"github.com/ancientlore/otsu/metrics"
)

// Options controls a build.
type Options struct {
	Out       string             // Output folder; DefaultOutput when empty
	Clean     bool               // Remove the output folder first
	Truncate  int                // Excerpt length in words
	Converter markdown.Converter // Markdown engine
	Recorder  metrics.Recorder   // Build statistics; may be nil
}

// Build renders every collection declared in cfg. Paths in cfg are relative to the
// current folder.
func Build(cfg *config.Config, opts Options) error {
	start := time.Now()
	if opts.Out == "" {
		opts.Out = DefaultOutput
	}
	if opts.Clean {
		if err := clean(opts.Out); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
	}

	s := New(opts.Out, opts.Recorder)
	for _, name := range []string{HTML, XML} {
		set, err := layout.New(name, cfg.LayoutPattern(name))
		if err != nil {
			return fmt.Errorf("Build: %w", err)
		}
		s.AddLayouts(set)
		log.Printf("Loaded %s layouts: %v", name, set.Items())
	}

	settings := cfg.Settings()
	copts := content.Options{Truncate: opts.Truncate, Converter: opts.Converter}
	for _, c := range cfg.Collections() {
		pc, err := content.NewPathContainer(c.Name, c.Path, c.Source, c.Recursive)
		if err != nil {
			return fmt.Errorf("Build: %w", err)
		}
		records, err := content.Collect(settings, pc, copts)
		if err != nil {
			return fmt.Errorf("Build: %w", err)
		}
		s.recorder.AddRecords(pc.Name, len(records))
		for _, r := range records {
			s.recorder.AddWords(r.WordsCount)
		}
		log.Printf("Collected %d files for %s", len(records), pc.Name)

		if err = s.RenderPosts(HTML, records); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
		if err = s.RenderList(HTML, pc, records); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
		if err = s.RenderFeed(pc, records); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
	}
	if err := s.WriteSitemap(settings["site_url"]); err != nil {
		return fmt.Errorf("Build: %w", err)
	}
	s.recorder.ObserveBuildDuration(time.Since(start))
	return nil
}

// clean removes the output folder, refusing to remove the current folder or a root.
func clean(out string) error {
	p := filepath.Clean(out)
	if p == "." || p == ".." || p == filepath.Dir(p) {
		return fmt.Errorf("refusing to clean %q", out)
	}
	return os.RemoveAll(p)
}
