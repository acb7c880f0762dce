package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rolandschnurr/dfq-converter/internal/core"
)

// errFileTooLarge deliberately reuses the stdlib's MaxBytesReader wording so
// both paths map to the same user message.
var errFileTooLarge = errors.New("request body too large")

// handleConvert converts a batch of uploaded DFQ files. The form may carry
// multiple "files" parts; a single failing file is reported in the result,
// not as a request failure.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	maxBody := s.cfg.Upload.MaxFileSize * int64(s.cfg.Upload.MaxFiles)
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		s.respondError(w, r, core.ErrNoFiles, http.StatusBadRequest)
		return
	}
	if len(parts) > s.cfg.Upload.MaxFiles {
		s.respondError(w, r, fmt.Errorf("batch of %d exceeds the limit of %d files", len(parts), s.cfg.Upload.MaxFiles), http.StatusBadRequest)
		return
	}

	uploads := make([]core.Upload, 0, len(parts))
	for _, part := range parts {
		if part.Size > s.cfg.Upload.MaxFileSize {
			s.respondError(w, r, fmt.Errorf("%s: %w", part.Filename, errFileTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		f, err := part.Open()
		if err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, s.cfg.Upload.MaxFileSize+1))
		f.Close()
		if err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		uploads = append(uploads, core.Upload{Name: part.Filename, Data: data})
	}

	// Gate whole-request concurrency; batch-internal parallelism is the
	// service's business.
	if err := s.service.Limiter().Acquire(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	defer s.service.Limiter().Release()

	batch, err := s.service.ConvertBatch(r.Context(), uploads)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	status := http.StatusOK
	if len(batch.Converted) == 0 {
		// Nothing usable in the batch.
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, batch)
}
