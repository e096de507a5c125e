package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
	credentialUsecase "github.com/allisson/quran-gateway/internal/credential/usecase"
)

// verseFields are the verse fields requested from the primary API.
const verseFields = "verse_number,verse_key,page_number,juz_number,hizb_number,sajdah_number,sajdah_type," +
	"text_uthmani,text_indopak,text_imlaei"

// PrimaryConfig configures the primary content API client.
type PrimaryConfig struct {
	BaseURL             string
	ClientID            string
	ChapterAudioBaseURL string
	VerseAudioBaseURL   string
	PageSize            int
	MaxPages            int
	AudioEnabled        bool
}

// PrimaryClient calls the authenticated content API and normalizes its responses.
type PrimaryClient struct {
	cfg        PrimaryConfig
	tokens     credentialUsecase.TokenCache
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPrimaryClient creates a PrimaryClient.
func NewPrimaryClient(
	cfg PrimaryConfig,
	tokens credentialUsecase.TokenCache,
	httpClient *http.Client,
	logger *slog.Logger,
) *PrimaryClient {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1
	}
	return &PrimaryClient{
		cfg:        cfg,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// AudioEnabled reports whether audio endpoints are served by this deployment of the primary API.
func (c *PrimaryClient) AudioEnabled() bool {
	return c.cfg.AudioEnabled
}

// Get issues a GET against path and returns the raw body of a 2xx response.
//
// A 401 or 403 invalidates the cached credential and returns an error wrapping ErrAuthRejected.
// Without a credential it fails before any request is made. Failures are never retried here.
func (c *PrimaryClient) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	credential, err := c.tokens.Get(ctx)
	if err != nil {
		return nil, err
	}

	target := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build primary request: %w", err)
	}
	req.Header.Set("x-auth-token", credential.AccessToken)
	req.Header.Set("x-client-id", c.cfg.ClientID)

	body, err := doJSON(ctx, c.httpClient, req)
	if errors.Is(err, contentDomain.ErrAuthRejected) {
		if invalidateErr := c.tokens.Invalidate(ctx, credential.AccessToken); invalidateErr != nil {
			c.logger.Warn("credential invalidation failed", slog.Any("error", invalidateErr))
		}
	}
	return body, err
}

// paginate follows pagination.next_page, collecting the items stored under key.
func (c *PrimaryClient) paginate(
	ctx context.Context,
	path string,
	query url.Values,
	key string,
) ([]json.RawMessage, error) {
	var items []json.RawMessage
	page := 1
	for range c.cfg.MaxPages {
		pageQuery := url.Values{}
		for k, v := range query {
			pageQuery[k] = v
		}
		pageQuery.Set("page", itoa(page))
		pageQuery.Set("per_page", itoa(c.cfg.PageSize))

		body, err := c.Get(ctx, path, pageQuery)
		if err != nil {
			return nil, err
		}
		pageItems, err := extractItems(body, key)
		if err != nil {
			return nil, err
		}
		items = append(items, pageItems...)

		next := nextPage(body)
		if next <= page {
			break
		}
		page = next
	}
	return items, nil
}

// Chapters lists every chapter.
func (c *PrimaryClient) Chapters(ctx context.Context) ([]contentDomain.Chapter, error) {
	body, err := c.Get(ctx, "/chapters", url.Values{"language": {"en"}})
	if err != nil {
		return nil, err
	}
	return normalizeChapters(body)
}

// Verses returns the verses of chapter. When the verse listing fails for a reason other than
// rejected credentials, the Uthmani script listing is tried once.
func (c *PrimaryClient) Verses(ctx context.Context, chapter int) ([]contentDomain.Verse, error) {
	items, err := c.paginate(ctx, "/verses/by_chapter/"+itoa(chapter), url.Values{
		"words":  {"false"},
		"fields": {verseFields},
	}, "verses")
	if err == nil {
		return decodeVerses(chapter, items)
	}
	if errors.Is(err, contentDomain.ErrAuthRejected) || isCredentialError(err) {
		return nil, err
	}

	c.logger.Debug("primary verse listing failed, trying uthmani listing",
		slog.Int("chapter", chapter), slog.Any("error", err))

	body, uthmaniErr := c.Get(ctx, "/quran/verses/uthmani", url.Values{"chapter_number": {itoa(chapter)}})
	if uthmaniErr != nil {
		return nil, uthmaniErr
	}
	return normalizeVerses(chapter, body)
}

// Translations returns the translation of chapter identified by translationID.
func (c *PrimaryClient) Translations(
	ctx context.Context,
	translationID string,
	chapter int,
) ([]contentDomain.Translation, error) {
	path := "/translations/" + url.PathEscape(translationID) + "/by_chapter/" + itoa(chapter)
	items, err := c.paginate(ctx, path, nil, "translations")
	if err != nil {
		return nil, err
	}
	return decodeTranslations(chapter, items)
}

// ChapterAudio returns the absolute URL of the whole-chapter recitation.
func (c *PrimaryClient) ChapterAudio(ctx context.Context, reciterID, chapter int) (string, error) {
	body, err := c.Get(ctx, "/chapter_recitations/"+itoa(reciterID)+"/"+itoa(chapter), nil)
	if err != nil {
		return "", err
	}
	audioURL, err := normalizeChapterAudio(body)
	if err != nil {
		return "", err
	}
	return contentDomain.Absolutize(c.cfg.ChapterAudioBaseURL, audioURL), nil
}

// VerseAudio returns the per-verse recitation files of chapter, following pagination.
func (c *PrimaryClient) VerseAudio(ctx context.Context, reciterID, chapter int) ([]contentDomain.AudioFile, error) {
	items, err := c.paginate(ctx, "/recitations/"+itoa(reciterID)+"/by_chapter/"+itoa(chapter), nil, "audio_files")
	if err != nil {
		return nil, err
	}
	return normalizeVerseAudio(items, c.cfg.VerseAudioBaseURL)
}

// isCredentialError reports whether err means no credential could be obtained.
func isCredentialError(err error) bool {
	return errors.Is(err, credentialDomain.ErrConfigMissing) || errors.Is(err, credentialDomain.ErrUnavailable)
}
