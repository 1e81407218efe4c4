package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/studyhub/internal/progress"
)

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var task progress.StudyTask
	if err := decodeJSON(r, &task); err != nil {
		handleError(w, r, err)
		return
	}

	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return progress.AddStudyTask(cur, task)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var task progress.StudyTask
	if err := decodeJSON(r, &task); err != nil {
		handleError(w, r, err)
		return
	}
	task.ID = chi.URLParam(r, "id")

	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return progress.UpdateStudyTask(cur, task)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return progress.DeleteStudyTask(cur, id)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		return progress.ToggleStudyTask(cur, id)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
