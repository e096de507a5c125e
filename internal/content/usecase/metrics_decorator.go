package usecase

import (
	"context"
	"time"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	"github.com/allisson/quran-gateway/internal/metrics"
)

// resolverWithMetrics decorates Resolver with metrics instrumentation.
// The recorded status is the source tag on success and "error" otherwise.
type resolverWithMetrics struct {
	next    Resolver
	metrics metrics.BusinessMetrics
}

// NewResolverWithMetrics wraps a Resolver with metrics recording.
func NewResolverWithMetrics(resolver Resolver, m metrics.BusinessMetrics) Resolver {
	return &resolverWithMetrics{
		next:    resolver,
		metrics: m,
	}
}

func (r *resolverWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	success bool,
	source contentDomain.Source,
) {
	status := metrics.StatusError
	if success {
		status = string(source)
	}

	r.metrics.RecordOperation(ctx, "content", operation, status)
	r.metrics.RecordDuration(ctx, "content", operation, time.Since(start), status)
}

// ListChapters records metrics for chapter listing.
func (r *resolverWithMetrics) ListChapters(ctx context.Context) contentDomain.Resolved[[]contentDomain.Chapter] {
	start := time.Now()
	result := r.next.ListChapters(ctx)
	r.record(ctx, "list_chapters", start, result.Success, result.Source)
	return result
}

// GetVersesWithTranslation records metrics for verse resolution.
func (r *resolverWithMetrics) GetVersesWithTranslation(
	ctx context.Context,
	chapter int,
	translationID string,
) contentDomain.Resolved[contentDomain.VersesWithTranslation] {
	start := time.Now()
	result := r.next.GetVersesWithTranslation(ctx, chapter, translationID)
	r.record(ctx, "get_verses", start, result.Success, result.Source)
	return result
}

// GetChapterAudio records metrics for chapter audio resolution.
func (r *resolverWithMetrics) GetChapterAudio(
	ctx context.Context,
	reciterID, chapter int,
) contentDomain.Resolved[contentDomain.ChapterAudio] {
	start := time.Now()
	result := r.next.GetChapterAudio(ctx, reciterID, chapter)
	r.record(ctx, "get_chapter_audio", start, result.Success, result.Source)
	return result
}

// GetVerseAudio records metrics for verse audio resolution.
func (r *resolverWithMetrics) GetVerseAudio(
	ctx context.Context,
	reciterID, chapter int,
) contentDomain.Resolved[[]contentDomain.AudioFile] {
	start := time.Now()
	result := r.next.GetVerseAudio(ctx, reciterID, chapter)
	r.record(ctx, "get_verse_audio", start, result.Success, result.Source)
	return result
}

// Status records metrics for status checks, tagged with the reported source.
func (r *resolverWithMetrics) Status(ctx context.Context) contentDomain.Status {
	start := time.Now()
	status := r.next.Status(ctx)
	r.record(ctx, "status", start, true, status.Source)
	return status
}
