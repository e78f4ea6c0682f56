package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/frames")
	t.Setenv("ENV", "")
	t.Setenv("PORT", ":9090")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("UPLOAD_SESSION_TTL", "")
	t.Setenv("MIGRATIONS_ENABLED", "")
	t.Setenv("PUBLIC_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://u:p@localhost:5432/frames", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.UploadSessionTTL)
	assert.True(t, cfg.MigrationsEnabled)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "http://localhost:9090", cfg.PublicBaseURL)
}

func TestLoad_BuildsConnectionStringFromParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "frames")
	t.Setenv("DB_NAME", "store")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=frames password=secret dbname=store sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]map[string]string{
		"missing database":  {"DATABASE_URL": "", "DB_HOST": ""},
		"bad ttl":           {"DATABASE_URL": "postgres://x", "UPLOAD_SESSION_TTL": "soon"},
		"negative ttl":      {"DATABASE_URL": "postgres://x", "UPLOAD_SESSION_TTL": "-5m"},
		"bad migrations":    {"DATABASE_URL": "postgres://x", "MIGRATIONS_ENABLED": "maybe"},
		"production secret": {"DATABASE_URL": "postgres://x", "ENV": "production", "JWT_SECRET": ""},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
