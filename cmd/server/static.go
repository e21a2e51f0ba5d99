package main

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// staticHandler serves the frontend from the public directory. Unknown
// paths answer 404 with the index page body so the frontend can show its
// own not-found state, matching how the site behaved before this rewrite.
type staticHandler struct {
	dir string
}

func newStaticHandler(dir string) *staticHandler {
	return &staticHandler{dir: dir}
}

// page returns a handler pinned to one file, used for pretty routes like
// /formular.
func (s *staticHandler) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(s.dir, name))
	}
}

// serve resolves the request path inside the public directory.
func (s *staticHandler) serve(w http.ResponseWriter, r *http.Request) {
	// path.Clean plus the prefix check keeps traversal sequences from
	// escaping the public directory.
	clean := path.Clean("/" + r.URL.Path)
	if strings.Contains(clean, "..") {
		http.NotFound(w, r)
		return
	}

	if clean == "/" {
		http.ServeFile(w, r, filepath.Join(s.dir, "index.html"))
		return
	}

	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		http.ServeFile(w, r, target)
		return
	}

	s.fallback(w, r)
}

// fallback answers 404 with the index page so deep links into the frontend
// still load it.
func (s *staticHandler) fallback(w http.ResponseWriter, r *http.Request) {
	body, err := os.ReadFile(filepath.Join(s.dir, "index.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}
