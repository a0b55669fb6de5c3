package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"feedpoll/internal/config"
)

const maxBodySize = 10 << 20

var ErrFetchFailed = errors.New("fetch failed")

// StatusError reports a proxy answer other than 200 OK.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// ProxyURL wraps feedURL into a request for the CORS proxy at proxyBase with
// caching disabled. The feed URL is not validated here.
func ProxyURL(proxyBase, feedURL string) string {
	return strings.TrimRight(proxyBase, "/") + "/get?url=" + url.QueryEscape(feedURL) + "&disableCache=true"
}

// ProxyFetcher downloads feeds through the CORS proxy.
type ProxyFetcher struct {
	clients  *ClientFactory
	proxyURL string
	limiter  *rate.Limiter
}

// NewProxyFetcher creates a fetcher. qps <= 0 disables rate limiting.
func NewProxyFetcher(clients *ClientFactory, proxyURL string, qps int) *ProxyFetcher {
	f := &ProxyFetcher{clients: clients, proxyURL: proxyURL}
	if qps > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(qps), qps)
	}
	return f
}

// Fetch issues one GET through the proxy and returns the raw body. Deadlines
// come from ctx; a context error is returned unwrapped so callers can tell a
// timeout apart from other failures.
func (f *ProxyFetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if _, ok := ctx.Deadline(); ok {
				// rate.Wait refuses early when the deadline would pass first.
				return nil, context.DeadlineExceeded
			}
			return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ProxyURL(f.proxyURL, feedURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.clients.NewHTTPClient(0).Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	return body, nil
}
