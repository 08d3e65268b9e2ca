package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezhumalaisanjay/go-rentalform/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "pdf", cfg.Server.DefaultFormat)
	assert.Equal(t, int64(10), cfg.Server.MaxUploadMB)
	assert.Equal(t, "Liberty Place Rental Application", cfg.Letterhead.Title)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ".", cfg.SaveDir)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("RENTALFORM_SERVER_ADDR", ":9999")
	t.Setenv("RENTALFORM_LOG_LEVEL", "debug")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":7070"
  default_format: text
letterhead:
  title: "Test Property"
save_dir: /tmp/drafts
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "text", cfg.Server.DefaultFormat)
	assert.Equal(t, "Test Property", cfg.Letterhead.Title)
	assert.Equal(t, "/tmp/drafts", cfg.SaveDir)
	// Keys the file omits keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestMalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{nope"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
