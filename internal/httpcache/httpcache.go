// Package httpcache provides the HTTP client shared by the install pipeline:
// a plain resty client for one-shot downloads plus a fixed-capacity LRU of
// full responses keyed by URL for the API lookups that repeat across a
// session (manifest, releases, loader meta).
package httpcache

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	cacheSize     = 100
	redirectLimit = 5
	userAgent     = "mopack/1.0"
)

// Response is a reconstructable snapshot of an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Header returns the first value of the named response header.
func (r *Response) Header(name string) string {
	return r.Headers.Get(name)
}

// HTTPError reports a non-2xx response. Transport-level failures are
// returned as-is from the underlying client.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client is a caching HTTP client. Get responses are cached by exact URL
// string; GetUncached and GetWithHeaders bypass the cache entirely.
type Client struct {
	rest  *resty.Client
	cache *lru.Cache[string, *Response]
}

// New builds a Client with the session defaults: bounded redirects and a
// stable User-Agent. token, when non-empty, is sent as a bearer token on
// every request (used for authenticated forge API access).
func New(token string) *Client {
	rest := resty.New().
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(redirectLimit)).
		SetHeader("User-Agent", userAgent)
	if token != "" {
		rest.SetAuthToken(token)
	}
	// Size can't be non-positive, so the error is unreachable.
	cache, _ := lru.New[string, *Response](cacheSize)
	return &Client{rest: rest, cache: cache}
}

// Get fetches the URL, serving repeats from the cache. Only successful
// responses are cached. Concurrent misses for the same URL are not
// coalesced: each may hit the network before the first result lands in the
// cache. Callers tolerate the duplicate cost; the cached entry is whichever
// response was stored last.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	if resp, ok := c.cache.Get(url); ok {
		return resp, nil
	}
	resp, err := c.do(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Add(url, resp)
	return resp, nil
}

// GetUncached fetches the URL without consulting or populating the cache.
// Used for one-shot artifact downloads that would only evict useful entries.
func (c *Client) GetUncached(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, url, nil)
}

// GetWithHeaders fetches the URL uncached with extra request headers.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.do(ctx, url, headers)
}

func (c *Client) do(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	req := c.rest.R().SetContext(ctx)
	if headers != nil {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode()}
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Headers:    resp.Header(),
		Body:       resp.Body(),
	}, nil
}
