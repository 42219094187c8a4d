// Package forge talks to the Git-forge REST API hosting the modpack: branch
// listing, release lookup by tag, raw manifest fetch and authenticated asset
// downloads.
//
// A modpack source is the "<owner>/<repo>/" path segment including the
// trailing slash; a branch doubles as the release tag carrying the include
// bundle assets.
package forge

import (
	"context"
	"encoding/json"
	"fmt"

	"mopack/internal/httpcache"
)

const (
	defaultAPIBase = "https://api.github.com/repos/"
	defaultRawBase = "https://raw.githubusercontent.com/"
)

// Branch is a modpack source branch.
type Branch struct {
	Name string `json:"name"`
}

// Asset is a release-attached file.
type Asset struct {
	Name               string `json:"name"`
	ID                 int64  `json:"id"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release is a tagged release. Body holds a JSON table mapping bundle zip
// names to their md5 hashes.
type Release struct {
	TagName string  `json:"tag_name"`
	Body    string  `json:"body"`
	Assets  []Asset `json:"assets"`
}

// HashTable parses the bundle-name → md5 table published in the release
// body.
func (r *Release) HashTable() (map[string]string, error) {
	table := map[string]string{}
	if err := json.Unmarshal([]byte(r.Body), &table); err != nil {
		return nil, fmt.Errorf("parsing release hash table: %w", err)
	}
	return table, nil
}

// Client is a minimal forge REST client over the caching HTTP layer.
type Client struct {
	http    *httpcache.Client
	apiBase string
	rawBase string
}

// New returns a Client against the public API endpoints.
func New(http *httpcache.Client) *Client {
	return &Client{http: http, apiBase: defaultAPIBase, rawBase: defaultRawBase}
}

// NewWithBases returns a Client against custom endpoints. Tests point this
// at local servers.
func NewWithBases(http *httpcache.Client, apiBase, rawBase string) *Client {
	return &Client{http: http, apiBase: apiBase, rawBase: rawBase}
}

// Branches lists the source repository's branches.
func (c *Client) Branches(ctx context.Context, source string) ([]Branch, error) {
	resp, err := c.http.Get(ctx, c.apiBase+source+"branches")
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	var branches []Branch
	if err := json.Unmarshal(resp.Body, &branches); err != nil {
		return nil, fmt.Errorf("parsing branches: %w", err)
	}
	return branches, nil
}

// Release fetches the release tagged with the given branch name.
func (c *Client) Release(ctx context.Context, source, tag string) (*Release, error) {
	resp, err := c.http.Get(ctx, c.apiBase+source+"releases/tags/"+tag)
	if err != nil {
		return nil, fmt.Errorf("fetching release %q: %w", tag, err)
	}
	var rel Release
	if err := json.Unmarshal(resp.Body, &rel); err != nil {
		return nil, fmt.Errorf("parsing release %q: %w", tag, err)
	}
	return &rel, nil
}

// Asset downloads a release asset's bytes via the authenticated
// octet-stream endpoint.
func (c *Client) Asset(ctx context.Context, source string, id int64) ([]byte, error) {
	url := fmt.Sprintf("%s%sreleases/assets/%d", c.apiBase, source, id)
	resp, err := c.http.GetWithHeaders(ctx, url, map[string]string{
		"Accept": "application/octet-stream",
	})
	if err != nil {
		return nil, fmt.Errorf("downloading asset %d: %w", id, err)
	}
	return resp.Body, nil
}

// RawFile fetches a file from the source tree at the given branch.
func (c *Client) RawFile(ctx context.Context, source, branch, name string) ([]byte, error) {
	resp, err := c.http.Get(ctx, c.rawBase+source+branch+"/"+name)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	return resp.Body, nil
}
