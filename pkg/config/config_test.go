package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_GeminiConfig(t *testing.T) {
	os.Setenv("GEMINI_API_KEY", "test-key")
	os.Setenv("GEMINI_MODEL", "gemini-test")
	defer func() {
		os.Unsetenv("GEMINI_API_KEY")
		os.Unsetenv("GEMINI_MODEL")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-test", cfg.Gemini.Model)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("SERVER_PORT")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "", cfg.Gemini.APIKey)
	assert.Equal(t, "campus_clinic", cfg.Database.Database)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "clinic",
		Password: "secret",
		Database: "campus_clinic",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5433 user=clinic password=secret dbname=campus_clinic sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
