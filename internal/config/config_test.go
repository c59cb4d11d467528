package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeRemote, cfg.Mode)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.True(t, cfg.SessionRequireToken)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

func TestLoad_LocalMode(t *testing.T) {
	t.Setenv("PETHOME_MODE", "local")
	t.Setenv("DB_DSN", "postgres://localhost/pethome")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.Equal(t, "postgres://localhost/pethome", cfg.DatabaseDSN)
}

func TestLoad_InvalidMode(t *testing.T) {
	t.Setenv("PETHOME_MODE", "hybrid")

	_, err := Load()
	require.Error(t, err)
}
