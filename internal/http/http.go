// Package http provides a wrapper around the retryablehttp.Client
// for fetching remote files with retry capabilities.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMax = 5 * time.Second
)

type HTTPDoer interface {
	Do(*retryablehttp.Request) (*http.Response, error)
}

type HTTP struct {
	doer HTTPDoer
}

var _ HTTPDoer = (*retryablehttp.Client)(nil)

// DefaultConfig returns a client that logs retries through logger.
func DefaultConfig(logger *slog.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.RetryWaitMax = defaultRetryWaitMax
	client.Logger = logger
	return client
}

func New(doer HTTPDoer) *HTTP {
	return &HTTP{doer: doer}
}

// Fetch performs a GET and returns the body of a 2xx response. The caller
// closes the body.
func (h *HTTP) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := h.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if err := ExpectStatus2xx(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func ExpectStatus2xx(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		_ = resp.Body.Close()
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
