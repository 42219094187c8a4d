package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mopack/internal/domain"
	"mopack/internal/httpcache"
	"mopack/internal/source"
)

func TestValidatePath(t *testing.T) {
	root := "/home/user/.mopack/abc"
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"inside category dir", "/home/user/.mopack/abc/mods/sodium.jar", false},
		{"directly in root", "/home/user/.mopack/abc/sodium.jar", true},
		{"outside root", "/home/user/other/mods/sodium.jar", true},
		{"traversal", "/home/user/.mopack/abc/mods/../../evil.jar", true},
		{"nested too deep", "/home/user/.mopack/abc/mods/sub/sodium.jar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := source.ValidatePath(tt.path, root)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrPathViolation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolve_UnsupportedSource(t *testing.T) {
	r := source.NewResolver(httpcache.New(""))
	item := domain.Item{Name: "Weird", Source: domain.Source(99)}
	_, err := r.Resolve(context.Background(), item, domain.CategoryMods, t.TempDir(), domain.LoaderFabric)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
}

func TestResolveDDL_FilenameFromContentDisposition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="sodium-0.5.8.jar"`)
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	root := t.TempDir()
	r := source.NewResolver(httpcache.New(""))
	item := domain.Item{Name: "Sodium", Source: domain.SourceDDL, Location: server.URL + "/dl"}

	path, err := r.Resolve(context.Background(), item, domain.CategoryMods, root, domain.LoaderFabric)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "mods", "sodium-0.5.8.jar"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jar bytes"), data)
}

func TestResolveDDL_FilenameFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	root := t.TempDir()
	r := source.NewResolver(httpcache.New(""))
	item := domain.Item{Name: "Lithium", Source: domain.SourceDDL, Location: server.URL + "/files/lithium-1.2.jar"}

	path, err := r.Resolve(context.Background(), item, domain.CategoryShaderpacks, root, domain.LoaderFabric)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "shaderpacks", "lithium-1.2.jar"), path)
}

func TestResolveDDL_NoFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	}))
	defer server.Close()

	r := source.NewResolver(httpcache.New(""))
	item := domain.Item{Name: "Anon", Source: domain.SourceDDL, Location: server.URL}

	_, err := r.Resolve(context.Background(), item, domain.CategoryMods, t.TempDir(), domain.LoaderFabric)
	assert.ErrorIs(t, err, domain.ErrNoFilename)
}

func TestResolveDDL_HostileFilenameIsContained(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="../../evil.jar"`)
		w.Write([]byte("bytes"))
	}))
	defer server.Close()

	root := t.TempDir()
	r := source.NewResolver(httpcache.New(""))
	item := domain.Item{Name: "Evil", Source: domain.SourceDDL, Location: server.URL + "/dl"}

	path, err := r.Resolve(context.Background(), item, domain.CategoryMods, root, domain.LoaderFabric)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "mods", "evil.jar"), path)
	assert.NoError(t, source.ValidatePath(path, root))
}
