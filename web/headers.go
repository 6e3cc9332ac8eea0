package web

import (
	"net/http"
	"path"
	"strings"
	"time"
)

var gmtZone *time.Location

func init() {
	var err error
	gmtZone, err = time.LoadLocation("GMT")
	if err != nil {
		gmtZone = time.UTC
	}
}

// DefaultHeaders are added to every response of the preview server.
var DefaultHeaders = map[string]string{
	"X-Content-Type-Options": "nosniff",
	"X-Frame-Options":        "SAMEORIGIN",
}

// HeaderHandler returns an http.Handler that adds the given headers to the response.
func HeaderHandler(h http.Handler, headers map[string]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			w.Header().Set(k, v)
		}
		h.ServeHTTP(w, r)
	})
}

// isPage reports whether the request path names a generated page rather than an asset.
func isPage(p string) bool {
	if strings.HasSuffix(p, "/") {
		return true
	}
	switch path.Ext(p) {
	case ".html", ".xml", ".txt":
		return true
	}
	return false
}

// ExpiresHandler sets the Expires header, using pages for generated pages and feeds
// and assets for everything else. A zero duration leaves the header unset.
func ExpiresHandler(h http.Handler, pages, assets time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expiry := assets
		if isPage(r.URL.Path) {
			expiry = pages
		}
		if expiry != 0 {
			w.Header().Set("Expires", time.Now().Add(expiry).In(gmtZone).Format(time.RFC1123))
		}
		h.ServeHTTP(w, r)
	})
}

// HiddenHandler answers 404 for paths with an element starting with a period.
func HiddenHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, part := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(part, ".") {
				http.NotFound(w, r)
				return
			}
		}
		h.ServeHTTP(w, r)
	})
}
