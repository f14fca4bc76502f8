package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// StaticHandler serves the built frontend. Unknown paths outside /api fall
// back to index.html so client-side routing works on a hard refresh.
type StaticHandler struct {
	dir    string
	logger zerolog.Logger
}

// NewStaticHandler creates a static file handler rooted at dir.
func NewStaticHandler(dir string, logger zerolog.Logger) *StaticHandler {
	return &StaticHandler{
		dir:    dir,
		logger: logger.With().Str("handler", "static").Logger(),
	}
}

// Serve handles any request not matched by an API route.
func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "Not found", h.logger)
		return
	}

	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if rel != "" {
		path := filepath.Join(h.dir, rel)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
	}

	index := filepath.Join(h.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		writeError(w, http.StatusNotFound, "Not found", h.logger)
		return
	}

	http.ServeFile(w, r, index)
}
