package server

import (
	"net/http"
	"time"

	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/progress"
	"github.com/abhisek/studyhub/internal/quizgen"
	"github.com/abhisek/studyhub/internal/tutor"
)

// aiConfigured rejects the request when no provider was set up. Data
// routes keep working; only the AI routes answer with this error.
func (s *Server) aiConfigured(w http.ResponseWriter, r *http.Request) bool {
	if s.quizzes == nil {
		handleError(w, r, llm.ErrNotConfigured)
		return false
	}
	return true
}

// parseAttachment turns an optional data-URI upload into an attachment,
// enforcing the configured size limit before anything leaves the server.
func (s *Server) parseAttachment(uri string) (*llm.Attachment, error) {
	if uri == "" {
		return nil, nil
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(uri)) > s.cfg.MaxUploadBytes {
		return nil, NewValidationError("attachment exceeds the upload size limit")
	}
	att, err := llm.ParseDataURI(uri)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}
	return att, nil
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if !s.aiConfigured(w, r) {
		return
	}

	var body struct {
		Content      string `json:"content"`
		Attachment   string `json:"attachment"` // data URI
		NumQuestions int    `json:"numQuestions"`
		Difficulty   string `json:"difficulty"`
		Grade        string `json:"grade"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	att, err := s.parseAttachment(body.Attachment)
	if err != nil {
		handleError(w, r, err)
		return
	}

	quiz, err := s.quizzes.Generate(r.Context(), quizgen.GenerateInput{
		Content:      body.Content,
		Attachment:   att,
		NumQuestions: body.NumQuestions,
		Difficulty:   body.Difficulty,
		Grade:        body.Grade,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"title":     quiz.Title,
		"questions": quiz.Questions,
	})
}

func (s *Server) handleTutorChat(w http.ResponseWriter, r *http.Request) {
	if !s.aiConfigured(w, r) {
		return
	}

	var body struct {
		History    []tutor.Turn `json:"history"`
		Message    string       `json:"message"`
		Notes      string       `json:"notes"`
		Attachment string       `json:"attachment"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.Message == "" {
		handleError(w, r, NewValidationError("message cannot be empty"))
		return
	}

	att, err := s.parseAttachment(body.Attachment)
	if err != nil {
		handleError(w, r, err)
		return
	}

	reply, err := s.tutor.Chat(r.Context(), tutor.ChatInput{
		History:    body.History,
		Message:    body.Message,
		Notes:      body.Notes,
		Attachment: att,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if !s.aiConfigured(w, r) {
		return
	}

	var body struct {
		Notes      string `json:"notes"`
		Attachment string `json:"attachment"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.Notes == "" && body.Attachment == "" {
		handleError(w, r, NewValidationError("notes or attachment required"))
		return
	}

	att, err := s.parseAttachment(body.Attachment)
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.tutor.Summarize(r.Context(), body.Notes, att)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// handleRefreshRecommendations regenerates the recommendation list from
// the current record and stores it in the same atomic update that read it.
func (s *Server) handleRefreshRecommendations(w http.ResponseWriter, r *http.Request) {
	if !s.aiConfigured(w, r) {
		return
	}

	now := time.Now().UTC()
	rec, err := s.records.AtomicUpdate(r.Context(), s.owner(r), func(cur progress.Record) (progress.Record, error) {
		recs, genErr := s.recommender.Generate(r.Context(), cur, now)
		if genErr != nil {
			return cur, genErr
		}
		return progress.SetRecommendations(cur, recs)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec.Recommendations)
}
