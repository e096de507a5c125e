// Package usecase resolves content through the ordered source tiers and tags every result with its source.
package usecase

import (
	"context"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
)

// PrimarySource is the authenticated content API.
type PrimarySource interface {
	AudioEnabled() bool
	Chapters(ctx context.Context) ([]contentDomain.Chapter, error)
	Verses(ctx context.Context, chapter int) ([]contentDomain.Verse, error)
	Translations(ctx context.Context, translationID string, chapter int) ([]contentDomain.Translation, error)
	ChapterAudio(ctx context.Context, reciterID, chapter int) (string, error)
	VerseAudio(ctx context.Context, reciterID, chapter int) ([]contentDomain.AudioFile, error)
}

// FallbackSource is the public content API, addressed by edition identifiers.
type FallbackSource interface {
	Chapters(ctx context.Context) ([]contentDomain.Chapter, error)
	Verses(ctx context.Context, chapter int, edition string) ([]contentDomain.Verse, error)
	Translations(ctx context.Context, chapter int, edition string) ([]contentDomain.Translation, error)
	VerseAudio(ctx context.Context, chapter int, edition string) ([]contentDomain.AudioFile, error)
}

// AudioProber checks that a public audio file exists.
type AudioProber interface {
	Probe(ctx context.Context, audioURL string) error
}

// AudioURLGenerator derives public audio locations without any network call.
type AudioURLGenerator interface {
	ChapterURL(reciterID, chapter int) string
	VerseFiles(reciterID, chapter int) []contentDomain.AudioFile
}

// Resolver implements the logical content operations.
//
// Each operation tries the primary source, then the public network source, then (for audio only)
// generated URLs. Tiers run strictly in order and failures never escape as errors: the result is
// either a success tagged with the tier that produced it or a terminal failure.
type Resolver interface {
	ListChapters(ctx context.Context) contentDomain.Resolved[[]contentDomain.Chapter]
	GetVersesWithTranslation(
		ctx context.Context,
		chapter int,
		translationID string,
	) contentDomain.Resolved[contentDomain.VersesWithTranslation]
	GetChapterAudio(ctx context.Context, reciterID, chapter int) contentDomain.Resolved[contentDomain.ChapterAudio]
	GetVerseAudio(ctx context.Context, reciterID, chapter int) contentDomain.Resolved[[]contentDomain.AudioFile]
	Status(ctx context.Context) contentDomain.Status
}
