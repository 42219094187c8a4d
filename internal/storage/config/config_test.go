package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mopack/internal/storage/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "vanilla", cfg.Launcher)
	assert.Equal(t, "master", cfg.Branch)
	assert.Empty(t, cfg.Source)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "mopack")
	cfg := &config.Config{
		Launcher: "multimc-PrismLauncher",
		Source:   "owner/modpack",
		Branch:   "dev",
	}
	require.NoError(t, cfg.Save(dir))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("source: owner/modpack\n"), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "owner/modpack", cfg.Source)
	assert.Equal(t, "vanilla", cfg.Launcher)
	assert.Equal(t, "master", cfg.Branch)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("launcher: [broken"), 0644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}
