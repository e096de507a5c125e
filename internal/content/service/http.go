// Package service implements the upstream content sources: the authenticated primary API,
// the public fallback API, public audio hosts and deterministic audio URL generation.
package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// maxResponseBytes bounds how much of an upstream JSON body is read.
const maxResponseBytes = 16 << 20

// NewHTTPClient returns the client used for upstream content calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// doJSON executes req and returns the body of a 2xx response.
// Transport failures wrap ErrUpstreamUnavailable; non-2xx statuses return *UpstreamError.
func doJSON(ctx context.Context, client *http.Client, req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contentDomain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, contentDomain.NewUpstreamError(resp.StatusCode, req.URL.Redacted())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", contentDomain.ErrUpstreamUnavailable, err)
	}
	return body, nil
}
