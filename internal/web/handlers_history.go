package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rolandschnurr/dfq-converter/internal/store"
)

// handleHistory lists recent conversions. Requires a configured database.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, r, errors.New("limit must be a non-negative integer"), http.StatusBadRequest)
			return
		}
		limit = n
	}

	conversions, err := s.service.Store().RecentConversions(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if conversions == nil {
		conversions = []store.Conversion{}
	}
	writeJSON(w, http.StatusOK, conversions)
}
