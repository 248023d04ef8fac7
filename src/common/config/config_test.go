package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, errs := Load("")
	require.Empty(t, errs)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.PostgresEnabled())
	assert.False(t, cfg.MQEnabled())
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "port: 8081\nsession_ttl: 30m\npreview_rows: 7\nredis_addr: redis:6379\nmax_urgency_floor: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")

	cfg, errs := Load(path)
	require.Empty(t, errs)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 7, cfg.PreviewRows)
	assert.Equal(t, DefaultHighlightRows, cfg.HighlightRows)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 5.0, cfg.MaxUrgencyFloor)
	assert.True(t, cfg.PostgresEnabled())
}

func TestLoadInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("HISTOGRAM_BINS", "-2")

	_, errs := Load("")
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "SESSION_TTL")
	assert.Contains(t, errs[1].Error(), "PORT")
	assert.ErrorIs(t, errs[2], ErrInvalidBins)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, errs := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Nil(t, cfg)
	require.Len(t, errs, 1)
}
