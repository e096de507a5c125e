// Package service relays remote audio bytes so browser players can consume them
// regardless of the original host's CORS policy.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

const (
	defaultContentType = "audio/mpeg"
	userAgent          = "Quran-App/1.0"
	acceptAudio        = "audio/*,*/*;q=0.9"
)

// verseFilePattern matches per-verse file names such as 002255.mp3.
var verseFilePattern = regexp.MustCompile(`(\d{3})(\d{3})\.mp3$`)

// passthroughHeaders are copied from the upstream response. Nothing else is forwarded.
var passthroughHeaders = []string{"Content-Length", "Content-Range", "Accept-Ranges", "Last-Modified", "ETag"}

// RelayConfig configures the audio relay.
type RelayConfig struct {
	// Timeout bounds the wait for upstream response headers. The body streams without a deadline.
	Timeout time.Duration
	// PrimaryHost is the audio host whose failures trigger the alternate retry.
	PrimaryHost string
	// AlternateBaseURL receives the single retry as {AlternateBaseURL}/{CCC}{VVV}.mp3.
	AlternateBaseURL string
	// CacheMaxAge is advertised to callers in Cache-Control.
	CacheMaxAge time.Duration
	// AllowedHosts restricts relay targets, redirects included, to these hosts and their
	// subdomains. Empty allows any host.
	AllowedHosts []string
}

// Stream is a relayed upstream response. Callers must close Body.
type Stream struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
	SourceURL  string
}

// Relay fetches remote audio with a header timeout and a single alternate-host retry.
type Relay struct {
	cfg        RelayConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRelay creates a Relay. The http client must not carry its own Timeout,
// since that would also cut off long bodies.
func NewRelay(cfg RelayConfig, httpClient *http.Client, logger *slog.Logger) *Relay {
	client := &http.Client{}
	if httpClient != nil {
		copied := *httpClient
		client = &copied
	}
	r := &Relay{cfg: cfg, httpClient: client, logger: logger}
	client.CheckRedirect = r.checkRedirect
	return r
}

// hostAllowed reports whether target's host is listed, or a subdomain of a listed host.
func (r *Relay) hostAllowed(target *url.URL) bool {
	if len(r.cfg.AllowedHosts) == 0 {
		return true
	}
	host := strings.ToLower(target.Hostname())
	for _, allowed := range r.cfg.AllowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

func (r *Relay) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 10 {
		return errors.New("stopped after 10 redirects")
	}
	if !r.hostAllowed(req.URL) {
		return fmt.Errorf("%w: redirect to %s", contentDomain.ErrAudioHostNotAllowed, req.URL.Hostname())
	}
	return nil
}

// Relay fetches remoteURL, forwarding rangeHeader when set.
//
// A non-2xx answer from the primary audio host for a per-verse file is retried exactly once
// against the alternate host. There is no further retry.
func (r *Relay) Relay(ctx context.Context, remoteURL, rangeHeader string) (*Stream, error) {
	target, err := url.Parse(remoteURL)
	if err != nil || !contentDomain.IsAbsoluteURL(remoteURL) {
		return nil, contentDomain.ErrInvalidAudioURL
	}
	if !r.hostAllowed(target) {
		return nil, contentDomain.ErrAudioHostNotAllowed
	}

	resp, err := r.fetch(ctx, target.String(), rangeHeader)
	if err != nil {
		return nil, err
	}
	if isSuccess(resp.StatusCode) {
		return r.stream(resp, target.String()), nil
	}
	_ = resp.Body.Close()

	alternate, ok := r.alternateURL(target)
	if !ok {
		return nil, contentDomain.NewUpstreamError(resp.StatusCode, target.Redacted())
	}

	r.logger.Info("audio upstream failed, retrying alternate host",
		slog.Int("status", resp.StatusCode),
		slog.String("url", target.Redacted()),
		slog.String("alternate_url", alternate))

	resp, err = r.fetch(ctx, alternate, rangeHeader)
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		_ = resp.Body.Close()
		return nil, contentDomain.NewUpstreamError(resp.StatusCode, alternate)
	}
	return r.stream(resp, alternate), nil
}

// alternateURL derives the retry target for a per-verse file on the primary host.
func (r *Relay) alternateURL(target *url.URL) (string, bool) {
	if r.cfg.AlternateBaseURL == "" || !r.isPrimaryHost(target) {
		return "", false
	}
	match := verseFilePattern.FindStringSubmatch(target.Path)
	if match == nil {
		return "", false
	}
	return strings.TrimRight(r.cfg.AlternateBaseURL, "/") + "/" + match[1] + match[2] + ".mp3", true
}

func (r *Relay) isPrimaryHost(target *url.URL) bool {
	return strings.EqualFold(target.Host, r.cfg.PrimaryHost) || strings.EqualFold(target.Hostname(), r.cfg.PrimaryHost)
}

// fetch issues the GET. The header timer is stopped once headers arrive; the request context
// is released when the returned body is closed.
func (r *Relay) fetch(ctx context.Context, target, rangeHeader string) (*http.Response, error) {
	reqCtx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, target, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build audio request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptAudio)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}

	timer := time.AfterFunc(r.cfg.Timeout, cancel)
	resp, err := r.httpClient.Do(req)
	stopped := timer.Stop()
	if err != nil {
		cancel()
		if errors.Is(err, contentDomain.ErrAudioHostNotAllowed) {
			return nil, err
		}
		if !stopped {
			return nil, fmt.Errorf("%w: no response within %s", contentDomain.ErrUpstreamUnavailable, r.cfg.Timeout)
		}
		return nil, fmt.Errorf("%w: %v", contentDomain.ErrUpstreamUnavailable, err)
	}

	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

func (r *Relay) stream(resp *http.Response, sourceURL string) *Stream {
	header := make(http.Header)

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	header.Set("Content-Type", contentType)
	for _, name := range passthroughHeaders {
		if value := resp.Header.Get(name); value != "" {
			header.Set(name, value)
		}
	}

	header.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(r.cfg.CacheMaxAge.Seconds())))
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Range")

	return &Stream{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       resp.Body,
		SourceURL:  sourceURL,
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// cancelOnClose releases the request context when the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
