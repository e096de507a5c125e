package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// AudioHostClient confirms that a public audio file exists without downloading it.
type AudioHostClient struct {
	httpClient *http.Client
}

// NewAudioHostClient creates an AudioHostClient.
func NewAudioHostClient(httpClient *http.Client) *AudioHostClient {
	return &AudioHostClient{httpClient: httpClient}
}

// Probe issues a HEAD request, falling back to a one-byte ranged GET when HEAD is not allowed.
func (c *AudioHostClient) Probe(ctx context.Context, audioURL string) error {
	status, err := c.do(ctx, http.MethodHead, audioURL)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed {
		status, err = c.do(ctx, http.MethodGet, audioURL)
		if err != nil {
			return err
		}
	}
	if status < 200 || status >= 300 {
		return contentDomain.NewUpstreamError(status, audioURL)
	}
	return nil
}

func (c *AudioHostClient) do(ctx context.Context, method, audioURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, audioURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build probe request: %w", err)
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", contentDomain.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	return resp.StatusCode, nil
}
