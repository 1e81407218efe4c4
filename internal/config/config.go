// Package config loads StudyHub configuration from a .env file and
// STUDYHUB_* environment variables. LLM provider settings live in
// internal/llm and are read separately.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/studyhub/internal/store"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	ShutdownTimeout int // seconds
	MaxUploadBytes  int64
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("STUDYHUB_ADDR", ":8080"),
		DBPath:          envOr("STUDYHUB_DB", defaultDBPath()),
		LogLevel:        envOr("STUDYHUB_LOG_LEVEL", "INFO"),
		ShutdownTimeout: envIntOr("STUDYHUB_SHUTDOWN_TIMEOUT", 10),
		MaxUploadBytes:  int64(envIntOr("STUDYHUB_MAX_UPLOAD_KB", 4096)) * 1024,
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "STUDYHUB_ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "STUDYHUB_DB cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("STUDYHUB_LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, "STUDYHUB_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		problems = append(problems, "STUDYHUB_MAX_UPLOAD_KB must be positive")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func defaultDBPath() string {
	p, err := store.DefaultDBPath()
	if err != nil {
		// Fall back to the working directory when no home dir exists
		// (containers, CI).
		return "studyhub.db"
	}
	return p
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
