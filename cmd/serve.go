package cmd

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyhub/internal/config"
	"github.com/abhisek/studyhub/internal/llm"
	"github.com/abhisek/studyhub/internal/logger"
	"github.com/abhisek/studyhub/internal/server"
	"github.com/abhisek/studyhub/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the StudyHub HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			if err := store.EnsureDir(p); err != nil {
				return err
			}
			cfg.DBPath = p
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
		logger.SetDefault(log)

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// A missing API key is not fatal: the data routes still work and
		// the AI routes answer with a configuration error.
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			if !errors.Is(err, llm.ErrNotConfigured) {
				return err
			}
			log.Warn("no LLM provider configured; AI features are disabled")
			provider = nil
		}

		srv := server.New(cfg, st, provider, log)
		if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides STUDYHUB_ADDR)")
}
