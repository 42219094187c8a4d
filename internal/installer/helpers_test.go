package installer_test

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mopack/internal/domain"
	"mopack/internal/httpcache"
	"mopack/internal/installer"
	"mopack/internal/launcher"
	"mopack/internal/source"
)

const (
	packUUID   = "8a3f0e2d-4b1c-4f6e-9a7d-2c5b8e1f0a3d"
	testSource = "owner/modpack/"
	testBranch = "master"
)

// stubLauncher keeps everything under a temp dir and records profile writes.
// It reports no loader base so installs skip the loader step.
type stubLauncher struct {
	dir      string
	profiles []*domain.Manifest
}

func (s *stubLauncher) Kind() launcher.Kind { return launcher.KindVanilla }

func (s *stubLauncher) ModpackRoot(uuid string) (string, error) {
	root := filepath.Join(s.dir, uuid)
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", err
	}
	return root, nil
}

func (s *stubLauncher) LoaderBase() (string, bool) { return "", false }

func (s *stubLauncher) WriteProfile(m *domain.Manifest, _ string) error {
	s.profiles = append(s.profiles, m)
	return nil
}

func (s *stubLauncher) Uninstall(string) error { return nil }

func newManifest() *domain.Manifest {
	return &domain.Manifest{
		ManifestVersion: 3,
		ModpackVersion:  "1.0.0",
		Name:            "Test Pack",
		UUID:            packUUID,
		Loader:          domain.Loader{Type: domain.LoaderFabric, Version: "0.15.11", MinecraftVersion: "1.20.4"},
		EnabledFeatures: []string{domain.DefaultID},
		MaxMem:          2048,
		MinMem:          512,
	}
}

func newProfile(t *testing.T, m *domain.Manifest) (*installer.InstallerProfile, *stubLauncher) {
	t.Helper()
	stub := &stubLauncher{dir: t.TempDir()}
	client := httpcache.New("")
	return &installer.InstallerProfile{
		Manifest:        m,
		HTTP:            client,
		Resolver:        source.NewResolver(client),
		ModpackSource:   testSource,
		ModpackBranch:   testBranch,
		EnabledFeatures: []string{domain.DefaultID},
		Launcher:        stub,
	}, stub
}

// newFileServer serves deterministic bytes for any path, named after the
// final path segment.
func newFileServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("content of " + path.Base(r.URL.Path)))
	}))
	t.Cleanup(server.Close)
	return server
}

func ddlItem(name, url, id string) domain.Item {
	return domain.Item{Name: name, Source: domain.SourceDDL, Location: url, ID: id}
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
