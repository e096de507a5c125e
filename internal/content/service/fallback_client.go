package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// FallbackClient reads the unauthenticated public content API.
type FallbackClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFallbackClient creates a FallbackClient for baseURL.
func NewFallbackClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *FallbackClient {
	return &FallbackClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// get fetches path and rejects envelopes whose embedded code is not 2xx.
func (c *FallbackClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build fallback request: %w", err)
	}

	body, err := doJSON(ctx, c.httpClient, req)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Code int `json:"code"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Code != 0 &&
		(envelope.Code < 200 || envelope.Code >= 300) {
		c.logger.Debug("fallback envelope reported failure", slog.String("path", path), slog.Int("code", envelope.Code))
		return nil, contentDomain.NewUpstreamError(envelope.Code, req.URL.Redacted())
	}
	return body, nil
}

// Chapters lists every chapter.
func (c *FallbackClient) Chapters(ctx context.Context) ([]contentDomain.Chapter, error) {
	body, err := c.get(ctx, "/surah")
	if err != nil {
		return nil, err
	}
	return normalizeChapters(body)
}

func (c *FallbackClient) edition(ctx context.Context, chapter int, edition string) ([]json.RawMessage, error) {
	body, err := c.get(ctx, "/surah/"+itoa(chapter)+"/"+url.PathEscape(edition))
	if err != nil {
		return nil, err
	}
	return extractItems(body, "ayahs")
}

// Verses returns the verses of chapter from a text edition.
func (c *FallbackClient) Verses(ctx context.Context, chapter int, edition string) ([]contentDomain.Verse, error) {
	items, err := c.edition(ctx, chapter, edition)
	if err != nil {
		return nil, err
	}
	return decodeVerses(chapter, items)
}

// Translations returns the translation of chapter from a translation edition.
func (c *FallbackClient) Translations(
	ctx context.Context,
	chapter int,
	edition string,
) ([]contentDomain.Translation, error) {
	items, err := c.edition(ctx, chapter, edition)
	if err != nil {
		return nil, err
	}
	return decodeTranslations(chapter, items)
}

// VerseAudio returns the per-verse files of chapter from an audio edition.
func (c *FallbackClient) VerseAudio(
	ctx context.Context,
	chapter int,
	edition string,
) ([]contentDomain.AudioFile, error) {
	items, err := c.edition(ctx, chapter, edition)
	if err != nil {
		return nil, err
	}

	files := make([]contentDomain.AudioFile, 0, len(items))
	for i, item := range items {
		var raw rawVerse
		if err := json.Unmarshal(item, &raw); err != nil {
			return nil, fmt.Errorf("%w: ayah: %v", contentDomain.ErrNoDataFound, err)
		}
		if !contentDomain.IsAbsoluteURL(raw.Audio) {
			return nil, fmt.Errorf("%w: ayah without absolute audio url", contentDomain.ErrNoDataFound)
		}
		files = append(files, contentDomain.AudioFile{
			VerseKey: contentDomain.VerseKey(chapter, raw.number(i)),
			URL:      raw.Audio,
			Format:   contentDomain.AudioFormatMP3,
		})
	}
	return files, nil
}
