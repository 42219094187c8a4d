// Package source resolves manifest items to files on disk. Each source kind
// is a strategy for turning an item's location into bytes and a destination
// filename; all of them land in the item category's directory under the
// modpack root.
package source

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"mopack/internal/domain"
	"mopack/internal/httpcache"
)

// Resolver downloads items. ModrinthBase is overridable for tests.
type Resolver struct {
	HTTP         *httpcache.Client
	ModrinthBase string
}

// NewResolver returns a Resolver against the public registry endpoint.
func NewResolver(http *httpcache.Client) *Resolver {
	return &Resolver{HTTP: http, ModrinthBase: defaultModrinthBase}
}

// Resolve downloads the item into the category directory under modpackRoot
// and returns the final on-disk path. loaderType narrows registry lookups to
// compatible entries.
func (r *Resolver) Resolve(ctx context.Context, item domain.Item, cat domain.Category, modpackRoot string, loaderType domain.LoaderType) (string, error) {
	log.Debug("resolving item", "name", item.Name, "source", item.Source, "category", cat)
	switch item.Source {
	case domain.SourceModrinth:
		return r.resolveModrinth(ctx, item, cat, modpackRoot, loaderType)
	case domain.SourceDDL:
		return r.resolveDDL(ctx, item, cat, modpackRoot)
	case domain.SourceMediafire:
		return r.resolveMediafire(ctx, item, cat, modpackRoot)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedSource, item.Source)
	}
}

// write places resolved bytes at <root>/<category>/<filename>, creating the
// category directory if needed. The filename is reduced to its base so a
// hostile header can't escape the category directory.
func write(root string, cat domain.Category, filename string, data []byte) (string, error) {
	dir := filepath.Join(root, cat.Dir())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s directory: %w", cat.Dir(), err)
	}
	dest := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

// ValidatePath enforces the containment invariant: a resolved item path's
// grandparent directory must be the modpack root.
func ValidatePath(path, root string) error {
	if filepath.Dir(filepath.Dir(filepath.Clean(path))) != filepath.Clean(root) {
		return fmt.Errorf("%w: %s", domain.ErrPathViolation, path)
	}
	return nil
}

// attachmentFilename extracts the filename from an attachment
// content-disposition header value, or "" when the header doesn't carry one.
func attachmentFilename(cd string) string {
	if cd == "" {
		return ""
	}
	mediatype, params, err := mime.ParseMediaType(cd)
	if err != nil || mediatype != "attachment" {
		return ""
	}
	return params["filename"]
}
