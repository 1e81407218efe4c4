package server

import (
	"net/http"
	"time"

	"github.com/abhisek/studyhub/internal/analytics"
	"github.com/abhisek/studyhub/internal/progress"
)

// handleAnalyticsSummary computes the dashboard numbers from the current
// record snapshot. No state is written; stale reads are acceptable here.
func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	rec, _, err := s.records.Get(r.Context(), s.owner(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	today := progress.DayOf(time.Now().UTC())
	respondJSON(w, http.StatusOK, analytics.Summarize(rec, today))
}
