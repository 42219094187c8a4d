package installer_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mopack/internal/domain"
	"mopack/internal/installer"
)

func TestMarkerName(t *testing.T) {
	marker := installer.MarkerName(testSource)
	assert.NotContains(t, marker, "/")
	assert.NotContains(t, marker, "=")

	decoded, err := base64.RawURLEncoding.DecodeString(marker)
	require.NoError(t, err)
	assert.Equal(t, testSource, string(decoded))

	assert.NotEqual(t, marker, installer.MarkerName("other/pack/"))
}

func TestInstall_DownloadsEnabledItems(t *testing.T) {
	files := newFileServer(t)
	m := newManifest()
	m.Mods = []domain.Item{
		ddlItem("Alpha", files.URL+"/alpha.jar", domain.DefaultID),
		ddlItem("Beta", files.URL+"/beta.jar", "extras"),
	}
	m.Shaderpacks = []domain.Item{
		ddlItem("Shader", files.URL+"/shader.zip", domain.DefaultID),
	}

	p, stub := newProfile(t, m)
	require.NoError(t, installer.Install(context.Background(), p))

	root, err := stub.ModpackRoot(packUUID)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "mods", "alpha.jar"))
	assert.NoFileExists(t, filepath.Join(root, "mods", "beta.jar"))
	assert.FileExists(t, filepath.Join(root, "shaderpacks", "shader.zip"))

	assert.True(t, p.Installed)
	assert.False(t, p.UpdateAvailable)
	require.NotNil(t, p.LocalManifest)
	assert.Equal(t, filepath.Join(root, "mods", "alpha.jar"), p.LocalManifest.Mods[0].Path)
	assert.Empty(t, p.LocalManifest.Mods[1].Path)
	assert.Equal(t, testSource+testBranch, p.LocalManifest.Source)

	require.Len(t, stub.profiles, 1)
	assert.Equal(t, "Test Pack", stub.profiles[0].Name)
}

func TestInstall_WritesMarkerAndLocalManifest(t *testing.T) {
	files := newFileServer(t)
	m := newManifest()
	m.Mods = []domain.Item{ddlItem("Alpha", files.URL+"/alpha.jar", domain.DefaultID)}

	p, stub := newProfile(t, m)
	require.NoError(t, installer.Install(context.Background(), p))

	root, err := stub.ModpackRoot(packUUID)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, installer.MarkerName(testSource)))

	data, err := os.ReadFile(filepath.Join(root, "manifest.json"))
	require.NoError(t, err)
	var local domain.Manifest
	require.NoError(t, json.Unmarshal(data, &local))
	assert.Equal(t, "1.0.0", local.ModpackVersion)
	assert.Equal(t, packUUID, local.UUID)
	assert.NotEmpty(t, local.Mods[0].Path)
}

func TestInstall_RemovesDisabledResolvedItem(t *testing.T) {
	m := newManifest()
	p, stub := newProfile(t, m)

	root, err := stub.ModpackRoot(packUUID)
	require.NoError(t, err)
	staleDir := filepath.Join(root, "mods")
	require.NoError(t, os.MkdirAll(staleDir, 0755))
	stale := filepath.Join(staleDir, "beta.jar")
	require.NoError(t, os.WriteFile(stale, []byte("jar"), 0644))

	m.Mods = []domain.Item{
		{Name: "Beta", Source: domain.SourceDDL, Location: "unused", ID: "extras", Path: stale},
	}

	require.NoError(t, installer.Install(context.Background(), p))

	assert.NoFileExists(t, stale)
	assert.Empty(t, p.LocalManifest.Mods[0].Path)
}

func TestInstall_IsIdempotent(t *testing.T) {
	files := newFileServer(t)
	m := newManifest()
	m.Mods = []domain.Item{ddlItem("Alpha", files.URL+"/alpha.jar", domain.DefaultID)}

	p, _ := newProfile(t, m)
	require.NoError(t, installer.Install(context.Background(), p))

	// Re-run with the resolved manifest, as a repair would.
	p.Manifest = p.LocalManifest
	require.NoError(t, installer.Install(context.Background(), p))
	assert.True(t, p.Installed)
}

func TestInstall_RejectsEscapedItemPath(t *testing.T) {
	m := newManifest()
	m.Mods = []domain.Item{
		{Name: "Evil", Source: domain.SourceDDL, Location: "unused", ID: domain.DefaultID, Path: "/elsewhere/mods/evil.jar"},
	}

	p, _ := newProfile(t, m)
	err := installer.Install(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrPathViolation)
	assert.False(t, p.Installed)
}

func TestInstall_FailedDownloadFailsCategory(t *testing.T) {
	m := newManifest()
	m.Mods = []domain.Item{
		{Name: "Gone", Source: domain.SourceDDL, Location: "http://127.0.0.1:1/gone.jar", ID: domain.DefaultID},
	}

	p, _ := newProfile(t, m)
	err := installer.Install(context.Background(), p)
	require.Error(t, err)
	assert.False(t, p.Installed)
}
