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
)

func TestRunChapters(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	chapters := []contentDomain.Chapter{
		{
			ID:              1,
			ArabicName:      "الفاتحة",
			ComplexName:     "Al-Fātiĥah",
			TranslatedName:  "The Opener",
			VerseCount:      7,
			RevelationPlace: contentDomain.RevelationMakkah,
		},
		{
			ID:              2,
			ArabicName:      "البقرة",
			ComplexName:     "Al-Baqarah",
			TranslatedName:  "The Cow",
			VerseCount:      286,
			RevelationPlace: contentDomain.RevelationMadinah,
		},
	}

	t.Run("text-output", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		mockResolver.On("ListChapters", ctx).
			Return(contentDomain.Succeeded(contentDomain.SourcePrimary, chapters))

		var out bytes.Buffer
		err := RunChapters(ctx, mockResolver, logger, &out, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Source: primary")
		require.Contains(t, out.String(), "Al-Baqarah")
		require.Contains(t, out.String(), "286 verses")
		mockResolver.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		mockResolver.On("ListChapters", ctx).
			Return(contentDomain.Succeeded(contentDomain.SourceFallback, chapters[:1]))

		var out bytes.Buffer
		err := RunChapters(ctx, mockResolver, logger, &out, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"source": "fallback"`)
		require.Contains(t, out.String(), `"verses_count": 7`)
		mockResolver.AssertExpectations(t)
	})

	t.Run("all-sources-failed", func(t *testing.T) {
		mockResolver := &contentMocks.MockResolver{}
		mockResolver.On("ListChapters", ctx).
			Return(contentDomain.Failed[[]contentDomain.Chapter](errors.New("all sources failed"), false, true))

		var out bytes.Buffer
		err := RunChapters(ctx, mockResolver, logger, &out, "json")

		require.Error(t, err)
		require.Contains(t, err.Error(), "all sources failed")
		require.Contains(t, out.String(), `"success": false`)
		require.Contains(t, out.String(), `"fallback_needed": true`)
		mockResolver.AssertExpectations(t)
	})
}
