package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8118, cfg.HTTPPort)
	assert.Equal(t, ".specdev", cfg.DataDir)
	assert.True(t, cfg.AutoResearchPrestep)
	assert.True(t, cfg.EnableAutomationHooks)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: 9000\ndata_dir: /tmp/specdev\nenable_automation_hooks: false\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "/tmp/specdev", cfg.DataDir)
	assert.False(t, cfg.EnableAutomationHooks)
	// Untouched keys keep defaults.
	assert.True(t, cfg.AutoResearchPrestep)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: 9000\n"), 0o600))
	t.Setenv("SPECDEV_HTTP_PORT", "9100")
	t.Setenv("SPECDEV_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8118, cfg.HTTPPort)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("SPECDEV_HTTP_PORT", "-1")
	_, err := Load("")
	assert.Error(t, err)
}
