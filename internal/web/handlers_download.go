package web

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

var errBadDownloadName = errors.New("download name not found")

// handleDownload serves a staged conversion result. Staged names carry a UUID
// prefix that is stripped from the attachment filename.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		s.respondError(w, r, errBadDownloadName, http.StatusBadRequest)
		return
	}
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		s.respondError(w, r, errBadDownloadName, http.StatusBadRequest)
		return
	}

	full := filepath.Join(s.service.DownloadDir(), name)
	if _, err := os.Stat(full); err != nil {
		s.respondError(w, r, errBadDownloadName, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+displayName(name)+`"`)
	http.ServeFile(w, r, full)
}

// displayName strips the staging UUID prefix, leaving the user-facing name.
func displayName(staged string) string {
	if i := strings.Index(staged, "_"); i == 36 {
		return staged[i+1:]
	}
	return staged
}
