package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
	credentialUsecase "github.com/allisson/quran-gateway/internal/credential/usecase"
)

var errPrimaryAudioDisabled = fmt.Errorf("%w: primary audio disabled", contentDomain.ErrUpstreamUnavailable)

// ResolverConfig holds the translation policy and fallback editions.
type ResolverConfig struct {
	// ArabicEdition is the fallback edition carrying Arabic verse text.
	ArabicEdition string
	// DefaultTranslationID is used when a request names no translation.
	DefaultTranslationID string
	// TranslationFallbackIDs are tried in order after the requested translation.
	TranslationFallbackIDs []string
	// TranslationEditions maps primary translation ids to fallback editions.
	TranslationEditions map[string]string
}

type resolver struct {
	cfg       ResolverConfig
	tokens    credentialUsecase.TokenCache
	primary   PrimarySource
	fallback  FallbackSource
	prober    AudioProber
	generator AudioURLGenerator
	logger    *slog.Logger
	now       func() time.Time
}

// NewResolver creates a Resolver over the given sources.
func NewResolver(
	cfg ResolverConfig,
	tokens credentialUsecase.TokenCache,
	primary PrimarySource,
	fallback FallbackSource,
	prober AudioProber,
	generator AudioURLGenerator,
	logger *slog.Logger,
) Resolver {
	return &resolver{
		cfg:       cfg,
		tokens:    tokens,
		primary:   primary,
		fallback:  fallback,
		prober:    prober,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

// ListChapters resolves the chapter list: primary, then fallback.
func (r *resolver) ListChapters(ctx context.Context) contentDomain.Resolved[[]contentDomain.Chapter] {
	chapters, primaryErr := r.primary.Chapters(ctx)
	if primaryErr == nil {
		return contentDomain.Succeeded(contentDomain.SourcePrimary, chapters)
	}
	r.tierFailed(ctx, "list_chapters", contentDomain.SourcePrimary, primaryErr)

	chapters, fallbackErr := r.fallback.Chapters(ctx)
	if fallbackErr == nil {
		return contentDomain.Succeeded(contentDomain.SourceFallback, chapters)
	}
	r.tierFailed(ctx, "list_chapters", contentDomain.SourceFallback, fallbackErr)

	return exhausted[[]contentDomain.Chapter](primaryErr, fallbackErr)
}

// GetVersesWithTranslation resolves verses with the first translation candidate carrying text.
func (r *resolver) GetVersesWithTranslation(
	ctx context.Context,
	chapter int,
	translationID string,
) contentDomain.Resolved[contentDomain.VersesWithTranslation] {
	if !contentDomain.IsValidChapter(chapter) {
		return contentDomain.Failed[contentDomain.VersesWithTranslation](contentDomain.ErrInvalidChapter, false, false)
	}

	candidates := r.translationCandidates(translationID)

	result, primaryErr := r.primaryVerses(ctx, chapter, candidates)
	if primaryErr == nil {
		return contentDomain.Succeeded(contentDomain.SourcePrimary, result)
	}
	r.tierFailed(ctx, "get_verses", contentDomain.SourcePrimary, primaryErr)

	result, fallbackErr := r.fallbackVerses(ctx, chapter, candidates)
	if fallbackErr == nil {
		return contentDomain.Succeeded(contentDomain.SourceFallback, result)
	}
	r.tierFailed(ctx, "get_verses", contentDomain.SourceFallback, fallbackErr)

	return exhausted[contentDomain.VersesWithTranslation](primaryErr, fallbackErr)
}

func (r *resolver) primaryVerses(
	ctx context.Context,
	chapter int,
	candidates []string,
) (contentDomain.VersesWithTranslation, error) {
	verses, err := r.primary.Verses(ctx, chapter)
	if err != nil {
		return contentDomain.VersesWithTranslation{}, err
	}

	for _, id := range candidates {
		translations, err := r.primary.Translations(ctx, id, chapter)
		if err == nil {
			return contentDomain.VersesWithTranslation{
				Verses:        verses,
				Translations:  contentDomain.AlignTranslations(verses, translations),
				TranslationID: id,
			}, nil
		}
		if isAuthFailure(err) {
			return contentDomain.VersesWithTranslation{}, err
		}
		r.logger.Debug("primary translation candidate failed",
			slog.String("translation_id", id), slog.Any("error", err))
	}
	return contentDomain.VersesWithTranslation{}, fmt.Errorf(
		"%w: no translation candidate has text", contentDomain.ErrNoDataFound)
}

type editionCandidate struct {
	id      string
	edition string
}

// fallbackVerses fetches the Arabic edition and every mappable translation edition
// concurrently, then picks the first candidate in order that carries text.
func (r *resolver) fallbackVerses(
	ctx context.Context,
	chapter int,
	candidates []string,
) (contentDomain.VersesWithTranslation, error) {
	editions := r.fallbackEditions(candidates)
	if len(editions) == 0 {
		return contentDomain.VersesWithTranslation{}, fmt.Errorf(
			"%w: no fallback edition for translation candidates", contentDomain.ErrNoDataFound)
	}

	var verses []contentDomain.Verse
	translations := make([][]contentDomain.Translation, len(editions))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		verses, err = r.fallback.Verses(gctx, chapter, r.cfg.ArabicEdition)
		return err
	})
	for i, candidate := range editions {
		g.Go(func() error {
			result, err := r.fallback.Translations(gctx, chapter, candidate.edition)
			if err != nil {
				r.logger.Debug("fallback translation candidate failed",
					slog.String("edition", candidate.edition), slog.Any("error", err))
				return nil
			}
			translations[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return contentDomain.VersesWithTranslation{}, err
	}

	for i, candidate := range editions {
		if contentDomain.HasTranslationText(translations[i]) {
			return contentDomain.VersesWithTranslation{
				Verses:        verses,
				Translations:  contentDomain.AlignTranslations(verses, translations[i]),
				TranslationID: candidate.id,
			}, nil
		}
	}
	return contentDomain.VersesWithTranslation{}, fmt.Errorf(
		"%w: no fallback translation has text", contentDomain.ErrNoDataFound)
}

// translationCandidates returns the requested id followed by the configured alternates,
// without duplicates and in order.
func (r *resolver) translationCandidates(requested string) []string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		requested = r.cfg.DefaultTranslationID
	}

	seen := make(map[string]struct{}, len(r.cfg.TranslationFallbackIDs)+1)
	candidates := make([]string, 0, len(r.cfg.TranslationFallbackIDs)+1)
	for _, id := range append([]string{requested}, r.cfg.TranslationFallbackIDs...) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, id)
	}
	return candidates
}

// fallbackEditions maps candidates to fallback editions. An id containing "." is already
// an edition; ids without a mapping are skipped.
func (r *resolver) fallbackEditions(candidates []string) []editionCandidate {
	editions := make([]editionCandidate, 0, len(candidates))
	for _, id := range candidates {
		edition := r.cfg.TranslationEditions[id]
		if edition == "" && strings.Contains(id, ".") {
			edition = id
		}
		if edition == "" {
			continue
		}
		editions = append(editions, editionCandidate{id: id, edition: edition})
	}
	return editions
}

// GetChapterAudio resolves a whole-chapter recitation URL.
func (r *resolver) GetChapterAudio(
	ctx context.Context,
	reciterID, chapter int,
) contentDomain.Resolved[contentDomain.ChapterAudio] {
	if !contentDomain.IsValidChapter(chapter) {
		return contentDomain.Failed[contentDomain.ChapterAudio](contentDomain.ErrInvalidChapter, false, false)
	}

	audio := contentDomain.ChapterAudio{
		ReciterID: reciterID,
		ChapterID: chapter,
		Format:    contentDomain.AudioFormatMP3,
	}

	primaryErr := errPrimaryAudioDisabled
	if r.primary.AudioEnabled() {
		var audioURL string
		audioURL, primaryErr = r.primary.ChapterAudio(ctx, reciterID, chapter)
		if primaryErr == nil && contentDomain.IsAbsoluteURL(audioURL) {
			audio.URL = audioURL
			return contentDomain.Succeeded(contentDomain.SourcePrimary, audio)
		}
		if primaryErr == nil {
			primaryErr = fmt.Errorf("%w: relative chapter audio url", contentDomain.ErrNoDataFound)
		}
	}
	r.tierFailed(ctx, "get_chapter_audio", contentDomain.SourcePrimary, primaryErr)

	audio.URL = r.generator.ChapterURL(reciterID, chapter)
	if err := r.prober.Probe(ctx, audio.URL); err != nil {
		r.tierFailed(ctx, "get_chapter_audio", contentDomain.SourceFallback, err)
		return contentDomain.Succeeded(contentDomain.SourceFallbackGenerated, audio)
	}
	return contentDomain.Succeeded(contentDomain.SourceFallback, audio)
}

// GetVerseAudio resolves per-verse recitation URLs for a chapter.
func (r *resolver) GetVerseAudio(
	ctx context.Context,
	reciterID, chapter int,
) contentDomain.Resolved[[]contentDomain.AudioFile] {
	if !contentDomain.IsValidChapter(chapter) {
		return contentDomain.Failed[[]contentDomain.AudioFile](contentDomain.ErrInvalidChapter, false, false)
	}

	primaryErr := errPrimaryAudioDisabled
	if r.primary.AudioEnabled() {
		var files []contentDomain.AudioFile
		files, primaryErr = r.primary.VerseAudio(ctx, reciterID, chapter)
		if primaryErr == nil && contentDomain.AllAbsolute(files) {
			return contentDomain.Succeeded(contentDomain.SourcePrimary, files)
		}
		if primaryErr == nil {
			primaryErr = fmt.Errorf("%w: relative verse audio url", contentDomain.ErrNoDataFound)
		}
	}
	r.tierFailed(ctx, "get_verse_audio", contentDomain.SourcePrimary, primaryErr)

	reciter := contentDomain.ReciterOrDefault(reciterID)
	files, err := r.fallback.VerseAudio(ctx, chapter, reciter.Edition)
	if err == nil {
		return contentDomain.Succeeded(contentDomain.SourceFallback, files)
	}
	r.tierFailed(ctx, "get_verse_audio", contentDomain.SourceFallback, err)

	return contentDomain.Succeeded(contentDomain.SourceFallbackGenerated, r.generator.VerseFiles(reciterID, chapter))
}

// Status reports whether a credential can currently be obtained. It goes through the
// token cache, so a cached credential answers without any network call.
func (r *resolver) Status(ctx context.Context) contentDomain.Status {
	status := contentDomain.Status{
		HasCredentials: r.tokens.HasCredentials(),
		Source:         contentDomain.SourceFallback,
		CheckedAt:      r.now().UTC(),
	}

	_, err := r.tokens.Get(ctx)
	switch {
	case err == nil:
		status.Authenticated = true
		status.Source = contentDomain.SourcePrimary
		status.Message = "using authenticated primary content API"
	case errors.Is(err, credentialDomain.ErrConfigMissing):
		status.Message = "client credentials not configured, using fallback sources"
	default:
		status.Message = "authentication unavailable, using fallback sources"
	}
	return status
}

func (r *resolver) tierFailed(ctx context.Context, operation string, tier contentDomain.Source, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.String("tier", string(tier)),
		slog.Any("error", err),
	}
	var upstreamErr *contentDomain.UpstreamError
	if errors.As(err, &upstreamErr) {
		attrs = append(attrs, slog.Int("status", upstreamErr.Status))
	}
	r.logger.WarnContext(ctx, "resolution tier failed", attrs...)
}

// isAuthFailure reports whether err means the primary source cannot be authenticated against.
func isAuthFailure(err error) bool {
	return errors.Is(err, contentDomain.ErrAuthRejected) ||
		errors.Is(err, credentialDomain.ErrConfigMissing) ||
		errors.Is(err, credentialDomain.ErrUnavailable)
}

// exhausted builds the terminal failure. The hints describe why the primary tier failed.
// A credential failure also wraps ErrSetupRequired so it classifies as unauthorized.
func exhausted[T any](primaryErr, fallbackErr error) contentDomain.Resolved[T] {
	setupRequired := isAuthFailure(primaryErr)
	err := fmt.Errorf("%w: primary: %v; fallback: %v", contentDomain.ErrAllTiersExhausted, primaryErr, fallbackErr)
	if setupRequired {
		err = fmt.Errorf("%w (%w)", err, contentDomain.ErrSetupRequired)
	}
	return contentDomain.Failed[T](err, setupRequired, !setupRequired)
}
