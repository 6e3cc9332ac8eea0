package web

import (
	"io/fs"
	"net/http"
)

// errorPages maps status codes to the page served in their place.
var errorPages = map[int]string{
	http.StatusNotFound:            "404.html",
	http.StatusInternalServerError: "500.html",
}

// ErrorHandler replaces the body of 404 and 500 responses with "404.html" or "500.html"
// from fsys when the site has one.
func ErrorHandler(h http.Handler, fsys fs.FS) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(&errorWriter{ResponseWriter: w, fsys: fsys}, r)
	})
}

type errorWriter struct {
	http.ResponseWriter
	fsys     fs.FS
	replaced bool
	err      error
}

func (w *errorWriter) Write(b []byte) (int, error) {
	if w.replaced {
		// the original error body is dropped
		return len(b), w.err
	}
	return w.ResponseWriter.Write(b)
}

func (w *errorWriter) WriteHeader(statusCode int) {
	name, ok := errorPages[statusCode]
	if !ok {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	b, err := fs.ReadFile(w.fsys, name)
	if err != nil {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
	w.replaced = true
	_, w.err = w.ResponseWriter.Write(b)
}
