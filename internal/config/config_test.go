package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "bash", cfg.Shell)
	assert.Equal(t, 2*time.Second, cfg.ShellTimeout)
	assert.True(t, cfg.Minimize)
	assert.Nil(t, cfg.Color)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysYAMLOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmplgram.yaml")
	err := os.WriteFile(path, []byte("shell: zsh\nshell_timeout: 5s\nminimize: false\ncolor: true\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zsh", cfg.Shell)
	assert.Equal(t, 5*time.Second, cfg.ShellTimeout)
	assert.False(t, cfg.Minimize)
	require.NotNil(t, cfg.Color)
	assert.True(t, *cfg.Color)
}

func TestLoadReadsEnvVarWhenPathEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmplgram.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shell: fish\n"), 0644))
	t.Setenv("CMPLGRAM_CFG_FILE", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fish", cfg.Shell)
}

func TestColorEnabled(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.ColorEnabled(true))
	assert.False(t, cfg.ColorEnabled(false))

	on := true
	cfg.Color = &on
	assert.True(t, cfg.ColorEnabled(false))

	off := false
	cfg.Color = &off
	assert.False(t, cfg.ColorEnabled(true))
}
