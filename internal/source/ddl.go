package source

import (
	"context"
	"fmt"
	"net/url"
	"path"

	"mopack/internal/domain"
)

// resolveDDL fetches a direct download link. The destination filename comes
// from an attachment content-disposition header when the server sends one,
// otherwise from the URL's final path segment.
func (r *Resolver) resolveDDL(ctx context.Context, item domain.Item, cat domain.Category, root string) (string, error) {
	resp, err := r.HTTP.GetUncached(ctx, item.Location)
	if err != nil {
		return "", fmt.Errorf("downloading %q: %w", item.Name, err)
	}

	filename := attachmentFilename(resp.Header("Content-Disposition"))
	if filename == "" {
		filename = urlFilename(item.Location)
	}
	if filename == "" {
		return "", fmt.Errorf("%w for %q (%s)", domain.ErrNoFilename, item.Name, item.Location)
	}
	return write(root, cat, filename, resp.Body)
}

func urlFilename(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}
