package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facebookgo/flagenv"
	"github.com/joho/godotenv"

	"github.com/ancientlore/otsu/config"
	"github.com/ancientlore/otsu/markdown"
	"github.com/ancientlore/otsu/metrics"
	"github.com/ancientlore/otsu/site"
	"github.com/ancientlore/otsu/web"
)

// main is where it all begins. 😀
func main() {
	// Optional .env file, read before flagenv looks at the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Cannot read .env: %s", err)
		os.Exit(1)
	}

	// Setup flags
	var (
		fRoot              = flag.String("root", ".", "Root of the blog sources.")
		fSettings          = flag.String("settings", "blog_settings.toml", "Settings file (.toml, .yaml or .json).")
		fOut               = flag.String("out", site.DefaultOutput, "Output folder.")
		fClean             = flag.Bool("clean", false, "Remove the output folder before building.")
		fTruncate          = flag.Int("truncate", 25, "Words in the excerpt of each post.")
		fEngine            = flag.String("engine", markdown.EngineBlackfriday, "Markdown engine: blackfriday or goldmark.")
		fServe             = flag.String("serve", "", "Serve the output on this address after building, like :8080.")
		fCache             = flag.Int64("cache", 10*1024*1024, "Preview cache size in bytes; 0 disables caching.")
		fCacheDuration     = flag.Duration("cacheduration", 10*time.Second, "Preview cache expiration.")
		fExpires           = flag.Duration("expires", 0, "Expires header for pages; 0 for none.")
		fStaticExpires     = flag.Duration("staticexpires", 0, "Expires header for other files; 0 for none.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
	)
	flag.Parse()
	flagenv.Parse()

	// Switch to blog folder
	err := os.Chdir(*fRoot)
	if err != nil {
		log.Printf("Cannot switch to root %q: %s", *fRoot, err)
		os.Exit(1)
	}
	log.Printf("Changed to %q directory", *fRoot)

	cfg, err := config.Load(*fSettings)
	if err != nil {
		log.Print(err)
		os.Exit(2)
	}
	log.Printf("Loaded settings with %d collections", len(cfg.Collections()))

	conv, err := markdown.New(*fEngine)
	if err != nil {
		log.Print(err)
		os.Exit(3)
	}

	rec := metrics.NewPrometheusRecorder()
	err = site.Build(cfg, site.Options{
		Out:       *fOut,
		Clean:     *fClean,
		Truncate:  *fTruncate,
		Converter: conv,
		Recorder:  rec,
	})
	if err != nil {
		log.Printf("Cannot build site: %s", err)
		os.Exit(4)
	}
	log.Printf("Site written to %q", *fOut)

	if *fServe == "" {
		return
	}

	srv := &http.Server{
		Addr: *fServe,
		Handler: web.NewHandler(os.DirFS(*fOut), web.Options{
			GroupName:     "otsu",
			CacheBytes:    *fCache,
			CacheDuration: *fCacheDuration,
			Expires:       *fExpires,
			StaticExpires: *fStaticExpires,
			Metrics:       rec.Handler(),
		}),
		ReadTimeout:       *fReadTimeout,
		WriteTimeout:      *fWriteTimeout,
		ReadHeaderTimeout: *fReadHeaderTimeout,
	}

	// interrupt from the terminal, SIGTERM from kubernetes
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := web.Serve(ctx, srv); err != nil {
		log.Printf("HTTP server: %s", err)
		os.Exit(5)
	}
}
