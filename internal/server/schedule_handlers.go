package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/studyhub/internal/progress"
)

// Homework and exams share the scheduled-item shape; the handlers differ
// only in which list the mutator touches.

func (s *Server) handleAddHomework(w http.ResponseWriter, r *http.Request) {
	s.addScheduled(w, r, progress.AddHomework)
}

func (s *Server) handleCompleteHomework(w http.ResponseWriter, r *http.Request) {
	s.byIDScheduled(w, r, progress.CompleteHomework)
}

func (s *Server) handleDeleteHomework(w http.ResponseWriter, r *http.Request) {
	s.byIDScheduled(w, r, progress.DeleteHomework)
}

func (s *Server) handleAddExam(w http.ResponseWriter, r *http.Request) {
	s.addScheduled(w, r, progress.AddExam)
}

func (s *Server) handleCompleteExam(w http.ResponseWriter, r *http.Request) {
	s.byIDScheduled(w, r, progress.CompleteExam)
}

func (s *Server) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	s.byIDScheduled(w, r, progress.DeleteExam)
}

func (s *Server) addScheduled(w http.ResponseWriter, r *http.Request, add func(progress.Record, progress.ScheduledItem) (progress.Record, error)) {
	var item progress.ScheduledItem
	if err := decodeJSON(r, &item); err != nil {
		handleError(w, r, err)
		return
	}
	if item.Title == "" {
		handleError(w, r, NewValidationError("title cannot be empty"))
		return
	}

	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return add(cur, item)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) byIDScheduled(w http.ResponseWriter, r *http.Request, op func(progress.Record, string) (progress.Record, error)) {
	id := chi.URLParam(r, "id")

	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return op(cur, id)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
