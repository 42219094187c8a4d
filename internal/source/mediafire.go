package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"mopack/internal/domain"
)

var downloadAnchorSels = []cascadia.Matcher{
	cascadia.MustCompile("a#downloadButton"),
	cascadia.MustCompile(`a[aria-label="Download file"]`),
}

// resolveMediafire scrapes the hosting page for its download anchor and
// follows it. Unlike ddl there is no URL-derived filename fallback: the
// follow-up response must carry an attachment content-disposition header,
// because the scraped link's path segment is an opaque token.
func (r *Resolver) resolveMediafire(ctx context.Context, item domain.Item, cat domain.Category, root string) (string, error) {
	page, err := r.HTTP.GetUncached(ctx, item.Location)
	if err != nil {
		return "", fmt.Errorf("fetching download page for %q: %w", item.Name, err)
	}

	link, err := downloadLink(page.Body)
	if err != nil {
		return "", fmt.Errorf("scraping download page for %q: %w", item.Name, err)
	}

	resp, err := r.HTTP.GetUncached(ctx, link)
	if err != nil {
		return "", fmt.Errorf("downloading %q: %w", item.Name, err)
	}
	filename := attachmentFilename(resp.Header("Content-Disposition"))
	if filename == "" {
		return "", fmt.Errorf("%w for %q: missing attachment content-disposition", domain.ErrNoFilename, item.Name)
	}
	return write(root, cat, filename, resp.Body)
}

func downloadLink(page []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	for _, sel := range downloadAnchorSels {
		n := cascadia.Query(root, sel)
		if n == nil {
			continue
		}
		for _, attr := range n.Attr {
			if attr.Namespace == "" && attr.Key == "href" {
				return attr.Val, nil
			}
		}
	}
	return "", fmt.Errorf("no download anchor found")
}
