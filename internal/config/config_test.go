package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "./storage/uploads", cfg.UploadPath)
	assert.Equal(t, "./storage/templates", cfg.TemplatePath)
	assert.Equal(t, 4, cfg.WorkerConcurrency)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBUsername: "radar",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "3306",
		DBDatabase: "radar",
	}

	assert.Equal(t, "radar:secret@tcp(db:3306)/radar?parseTime=true&loc=Local", cfg.GetDSN())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("WORKER_CONCURRENCY", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, 8, cfg.WorkerConcurrency)
}
