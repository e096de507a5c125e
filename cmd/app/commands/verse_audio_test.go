package commands

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	contentMocks "github.com/allisson/quran-gateway/internal/content/usecase/mocks"
	apperrors "github.com/allisson/quran-gateway/internal/errors"
)

func TestRunVerseAudio(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	files := []contentDomain.AudioFile{
		{VerseKey: "1:1", URL: "https://everyayah.com/data/Alafasy_128kbps/001001.mp3", Format: "mp3"},
		{VerseKey: "1:2", URL: "https://everyayah.com/data/Alafasy_128kbps/001002.mp3", Format: "mp3"},
	}

	t.Run("text-output", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		mockResolver.On("GetVerseAudio", ctx, 7, 1).
			Return(contentDomain.Succeeded(contentDomain.SourceFallbackGenerated, files))

		var out bytes.Buffer
		err := RunVerseAudio(ctx, mockResolver, logger, &out, 7, 1, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Source: fallback-generated")
		require.Contains(t, out.String(), "1:2")
		require.Contains(t, out.String(), "001002.mp3")
		mockResolver.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		mockResolver.On("GetVerseAudio", ctx, 7, 1).
			Return(contentDomain.Succeeded(contentDomain.SourcePrimary, files))

		var out bytes.Buffer
		err := RunVerseAudio(ctx, mockResolver, logger, &out, 7, 1, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"verse_key": "1:1"`)
		mockResolver.AssertExpectations(t)
	})

	t.Run("invalid-chapter", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		err := RunVerseAudio(ctx, mockResolver, logger, &bytes.Buffer{}, 7, 115, "text")

		require.Error(t, err)
		require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		mockResolver.AssertNotCalled(t, "GetVerseAudio", ctx, 7, 115)
	})

	t.Run("invalid-reciter", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		err := RunVerseAudio(ctx, mockResolver, logger, &bytes.Buffer{}, 0, 1, "text")

		require.Error(t, err)
		require.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("all-sources-failed", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		mockResolver.On("GetVerseAudio", ctx, 7, 1).
			Return(contentDomain.Failed[[]contentDomain.AudioFile](errors.New("no audio source available"), false, true))

		err := RunVerseAudio(ctx, mockResolver, logger, &bytes.Buffer{}, 7, 1, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "no audio source available")
		mockResolver.AssertExpectations(t)
	})
}
