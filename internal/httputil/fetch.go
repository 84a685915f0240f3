// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/mcp-explorer/internal/logger"
	"github.com/pdiddy/mcp-explorer/pkg/types"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) mcp-explorer/0.1"

	// maxBodyBytes bounds how much of a remote document we read. MCP
	// descriptors are small; anything larger is not one.
	maxBodyBytes = 2 << 20
)

// Fetcher issues rate-limited, timeout-bounded GET requests. Fetch never
// returns an error: transport failures, timeouts, and non-2xx statuses all
// surface as "no content" so a single bad candidate cannot abort an
// adapter's run.
//
// The token bucket is part of the Fetcher, so concurrent searches sharing
// one adapter share one request budget.
type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	headers   map[string]string
}

// NewFetcher builds a Fetcher enforcing delay between consecutive requests.
// A zero or negative delay disables throttling (used by tests).
func NewFetcher(cfg types.HTTPConfig, delay time.Duration) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	connect := cfg.ConnectTimeout
	if connect <= 0 {
		connect = defaultConnectTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: connect,
				}).DialContext,
				TLSHandshakeTimeout: connect,
			},
		},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: ua,
	}
}

// SetHeader attaches an extra header to every request (e.g. an API token).
func (f *Fetcher) SetHeader(key, value string) {
	if f.headers == nil {
		f.headers = make(map[string]string)
	}
	f.headers[key] = value
}

// Fetch retrieves url and returns its body as text. The second return value
// is false when no content could be retrieved for any reason.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, bool) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Debug("fetch %s: bad URL: %v", url, err)
		return "", false
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/json,application/yaml,text/plain,*/*")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		logger.Debug("fetch %s: %v", url, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug("fetch %s: HTTP %d", url, resp.StatusCode)
		io.Copy(io.Discard, resp.Body)
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Debug("fetch %s: reading body: %v", url, err)
		return "", false
	}
	return string(body), true
}
