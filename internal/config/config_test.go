package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/studyhub/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:            ":8080",
		DBPath:          "studyhub.db",
		LogLevel:        "INFO",
		ShutdownTimeout: 10,
		MaxUploadBytes:  4 << 20,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "LOUD"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STUDYHUB_LOG_LEVEL")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}
	err := cfg.Validate()
	assert.Error(t, err)
	for _, want := range []string{"STUDYHUB_ADDR", "STUDYHUB_DB", "STUDYHUB_SHUTDOWN_TIMEOUT", "STUDYHUB_MAX_UPLOAD_KB"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("STUDYHUB_ADDR", ":9090")
	t.Setenv("STUDYHUB_DB", "custom.db")
	t.Setenv("STUDYHUB_SHUTDOWN_TIMEOUT", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.ShutdownTimeout, "invalid int falls back to default")
}
