package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/studyhub/internal/progress"
)

// handleGetRecord returns the owner's full progress record. A student who
// has never written anything gets the empty record, not a 404.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, _, err := s.records.Get(r.Context(), s.owner(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var result progress.QuizResult
	if err := decodeJSON(r, &result); err != nil {
		handleError(w, r, err)
		return
	}

	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return progress.AppendQuizResult(cur, result)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpsertMastery(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	var body struct {
		SubjectName string `json:"subjectName"`
		Progress    int    `json:"progress"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	now := time.Now().UTC()
	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return progress.UpsertSubjectMastery(cur, subjectID, body.SubjectName, body.Progress, now)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
