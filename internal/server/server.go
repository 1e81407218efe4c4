// Package server exposes the StudyHub HTTP API. Every data route is scoped
// to the authenticated owner; the AI routes degrade to a configuration
// error when no provider is set up.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/studyhub/internal/config"
	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/logger"
	"github.com/abhisek/studyhub/internal/quizgen"
	"github.com/abhisek/studyhub/internal/recommend"
	"github.com/abhisek/studyhub/internal/store"
	"github.com/abhisek/studyhub/internal/tutor"
)

// Server wires the HTTP handlers to the store and the AI services.
type Server struct {
	cfg      config.Config
	records  store.RecordRepo
	profiles store.ProfileRepo

	// AI services. All nil when no provider is configured; the handlers
	// then answer with AI_NOT_CONFIGURED instead of failing at startup.
	quizzes     *quizgen.Generator
	tutor       *tutor.Service
	recommender *recommend.Generator

	log *logger.Logger
}

// New creates a Server. provider may be nil when no LLM is configured.
func New(cfg config.Config, st *store.Store, provider llm.Provider, log *logger.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		records:  st.RecordRepo(),
		profiles: st.ProfileRepo(),
		log:      log,
	}
	if provider != nil {
		s.quizzes = quizgen.New(provider, quizgen.DefaultConfig())
		s.tutor = tutor.NewService(provider, tutor.DefaultConfig())
		s.recommender = recommend.New(provider, recommend.DefaultConfig())
	}
	return s
}

// Routes builds the router with all middleware and endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.ownerMiddleware)

		r.Get("/record", s.handleGetRecord)

		r.Post("/quizzes", s.handleSubmitQuiz)
		r.Post("/quizzes/generate", s.handleGenerateQuiz)

		r.Post("/planner", s.handleAddTask)
		r.Put("/planner/{id}", s.handleUpdateTask)
		r.Delete("/planner/{id}", s.handleDeleteTask)
		r.Post("/planner/{id}/toggle", s.handleToggleTask)

		r.Put("/mastery/{subjectID}", s.handleUpsertMastery)

		r.Post("/homework", s.handleAddHomework)
		r.Post("/homework/{id}/complete", s.handleCompleteHomework)
		r.Delete("/homework/{id}", s.handleDeleteHomework)

		r.Post("/exams", s.handleAddExam)
		r.Post("/exams/{id}/complete", s.handleCompleteExam)
		r.Delete("/exams/{id}", s.handleDeleteExam)

		r.Get("/profile", s.handleGetProfile)
		r.Post("/profile", s.handleCreateProfile)
		r.Put("/profile", s.handleUpdateProfile)

		r.Post("/tutor/chat", s.handleTutorChat)
		r.Post("/notes/summarize", s.handleSummarize)
		r.Post("/recommendations/refresh", s.handleRefreshRecommendations)

		r.Get("/analytics/summary", s.handleAnalyticsSummary)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"aiConfigured": s.quizzes != nil,
	})
}
