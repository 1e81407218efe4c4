package server

import (
	"net/http"
	"time"

	"github.com/abhisek/studyhub/internal/profile"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.Get(r.Context(), s.owner(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if p == nil {
		handleError(w, r, &AppError{
			Code:    ErrCodeNotFound,
			Message: "no profile yet; create one first",
			Status:  http.StatusNotFound,
		})
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		AvatarURL   string `json:"avatarUrl"`
		SchoolBoard string `json:"schoolBoard"`
		Grade       string `json:"grade"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.Name == "" || body.Email == "" {
		handleError(w, r, NewValidationError("name and email are required"))
		return
	}

	p := profile.Profile{
		UID:         s.owner(r),
		Name:        body.Name,
		Email:       body.Email,
		AvatarURL:   body.AvatarURL,
		SchoolBoard: body.SchoolBoard,
		Grade:       body.Grade,
		JoinedAt:    time.Now().UTC(),
	}
	if err := s.profiles.Create(r.Context(), p); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd profile.Update
	if err := decodeJSON(r, &upd); err != nil {
		handleError(w, r, err)
		return
	}

	p, err := s.profiles.Update(r.Context(), s.owner(r), upd)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
