/*
Package web serves a generated site for previewing.

Files are read through a groupcache backed cache of the output folder, compressed with gzip
when the client accepts it, and given Expires headers. Missing pages are answered with the
site's own "404.html" when it has one.
*/
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ancientlore/cachefs"
	"github.com/golang/groupcache"
)

// ShutdownTimeout bounds the time Serve waits for open requests.
const ShutdownTimeout = 10 * time.Second

// Options configures the preview handler.
type Options struct {
	GroupName     string            // groupcache group; must be unique in the process
	CacheBytes    int64             // Cache size; no caching when zero
	CacheDuration time.Duration     // Cached files expire around this interval
	Expires       time.Duration     // Expires for pages and feeds
	StaticExpires time.Duration     // Expires for other files
	Headers       map[string]string // Extra response headers; DefaultHeaders when nil
	Metrics       http.Handler      // Served at /metrics when set
}

var registerPeers sync.Once

// NewHandler returns the handler serving fsys.
func NewHandler(fsys fs.FS, opts Options) http.Handler {
	if opts.CacheBytes > 0 {
		registerPeers.Do(func() {
			groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
		})
		fsys = cachefs.New(fsys, &cachefs.Config{
			GroupName:   opts.GroupName,
			SizeInBytes: opts.CacheBytes,
			Duration:    opts.CacheDuration,
		})
	}
	headers := opts.Headers
	if headers == nil {
		headers = DefaultHeaders
	}

	mux := http.NewServeMux()
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics)
	}
	mux.Handle("/",
		HeaderHandler(
			ExpiresHandler(
				gziphandler.GzipHandler(
					HiddenHandler(
						ErrorHandler(http.FileServer(http.FS(fsys)), fsys),
					),
				),
				opts.Expires,
				opts.StaticExpires,
			),
			headers,
		),
	)
	return mux
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Printf("Listening for requests on %s", srv.Addr)

	select {
	case err := <-errc:
		return fmt.Errorf("Serve: %w", err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("Serve: shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Serve: %w", err)
	}
	log.Print("Goodbye.")
	return nil
}
