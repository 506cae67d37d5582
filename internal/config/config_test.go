package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEB_PORT", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, "./database.db", cfg.DatabasePath)
	assert.Equal(t, 0, cfg.AuditRetentionDays)
}

func TestLoadPortPrecedence(t *testing.T) {
	// WEB_PORT wins over PORT when both are set
	t.Setenv("WEB_PORT", "8081")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.ServerPort)
}

func TestLoadPortFallback(t *testing.T) {
	t.Setenv("WEB_PORT", "")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("WEB_PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}
