package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
	credentialUsecaseMocks "github.com/allisson/quran-gateway/internal/credential/usecase/mocks"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthenticatedTokens() *credentialUsecaseMocks.MockTokenCache {
	tokens := &credentialUsecaseMocks.MockTokenCache{}
	tokens.On("Get", mock.Anything).Return(&credentialDomain.Credential{AccessToken: "tok"}, nil)
	return tokens
}

func newTestPrimaryClient(t *testing.T, handler http.Handler, tokens *credentialUsecaseMocks.MockTokenCache) *PrimaryClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewPrimaryClient(PrimaryConfig{
		BaseURL:             server.URL,
		ClientID:            "client",
		ChapterAudioBaseURL: "https://audio.qurancdn.com",
		VerseAudioBaseURL:   "https://download.quranicaudio.com",
		PageSize:            2,
		MaxPages:            5,
		AudioEnabled:        true,
	}, tokens, server.Client(), newTestLogger())
}

func TestPrimaryClient_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SendsAuthHeaders", func(t *testing.T) {
		var gotToken, gotClient string
		client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotToken = r.Header.Get("x-auth-token")
			gotClient = r.Header.Get("x-client-id")
			_, _ = w.Write([]byte(`{}`))
		}), newAuthenticatedTokens())

		_, err := client.Get(ctx, "/chapters", nil)

		require.NoError(t, err)
		assert.Equal(t, "tok", gotToken)
		assert.Equal(t, "client", gotClient)
	})

	t.Run("Error_NoCredentialNoRequest", func(t *testing.T) {
		var calls atomic.Int32
		tokens := &credentialUsecaseMocks.MockTokenCache{}
		tokens.On("Get", mock.Anything).Return(nil, credentialDomain.ErrConfigMissing)
		client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}), tokens)

		_, err := client.Get(ctx, "/chapters", nil)

		assert.ErrorIs(t, err, credentialDomain.ErrConfigMissing)
		assert.Equal(t, int32(0), calls.Load())
	})

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(fmt.Sprintf("Error_AuthRejected_%d_Invalidates", status), func(t *testing.T) {
			tokens := newAuthenticatedTokens()
			tokens.On("Invalidate", mock.Anything, "tok").Return(nil).Once()
			client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}), tokens)

			_, err := client.Get(ctx, "/chapters", nil)

			assert.ErrorIs(t, err, contentDomain.ErrAuthRejected)
			tokens.AssertCalled(t, "Invalidate", mock.Anything, "tok")
		})
	}

	t.Run("Error_ServerErrorDoesNotInvalidate", func(t *testing.T) {
		tokens := newAuthenticatedTokens()
		client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}), tokens)

		_, err := client.Get(ctx, "/chapters", nil)

		assert.ErrorIs(t, err, contentDomain.ErrUpstreamUnavailable)
		tokens.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	})
}

func TestPrimaryClient_Chapters(t *testing.T) {
	client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chapters", r.URL.Path)
		_, _ = w.Write([]byte(`{"chapters":[{"id":1,"name_arabic":"الفاتحة","name_simple":"Al-Fatihah",
			"verses_count":7,"revelation_place":"makkah","translated_name":{"name":"The Opener"}}]}`))
	}), newAuthenticatedTokens())

	chapters, err := client.Chapters(context.Background())

	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "The Opener", chapters[0].TranslatedName)
}

func TestPrimaryClient_Verses(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_FollowsPagination", func(t *testing.T) {
		client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/verses/by_chapter/1", r.URL.Path)
			assert.Equal(t, "false", r.URL.Query().Get("words"))
			assert.Equal(t, "2", r.URL.Query().Get("per_page"))
			switch r.URL.Query().Get("page") {
			case "1":
				_, _ = w.Write([]byte(`{"verses":[{"verse_key":"1:1","verse_number":1,"text_uthmani":"a"},
					{"verse_key":"1:2","verse_number":2,"text_uthmani":"b"}],"pagination":{"next_page":2}}`))
			default:
				_, _ = w.Write([]byte(`{"verses":[{"verse_key":"1:3","verse_number":3,"text_uthmani":"c"}],
					"pagination":{"next_page":null}}`))
			}
		}), newAuthenticatedTokens())

		verses, err := client.Verses(ctx, 1)

		require.NoError(t, err)
		require.Len(t, verses, 3)
		assert.Equal(t, "1:3", verses[2].VerseKey)
	})

	t.Run("Success_UthmaniListingAfterFailure", func(t *testing.T) {
		client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/quran/verses/uthmani" {
				assert.Equal(t, "1", r.URL.Query().Get("chapter_number"))
				_, _ = w.Write([]byte(`{"verses":[{"id":1,"verse_key":"1:1","text_uthmani":"a"}]}`))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
		}), newAuthenticatedTokens())

		verses, err := client.Verses(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, verses[0].VerseNumber)
	})

	t.Run("Error_AuthRejectedSkipsUthmaniListing", func(t *testing.T) {
		var calls atomic.Int32
		tokens := newAuthenticatedTokens()
		tokens.On("Invalidate", mock.Anything, "tok").Return(nil)
		client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		}), tokens)

		_, err := client.Verses(ctx, 1)

		assert.ErrorIs(t, err, contentDomain.ErrAuthRejected)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestPrimaryClient_Translations(t *testing.T) {
	client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translations/20/by_chapter/1", r.URL.Path)
		_, _ = w.Write([]byte(`{"translations":[{"resource_id":20,"text":"Praise<sup foot_note=1>1</sup>"}]}`))
	}), newAuthenticatedTokens())

	translations, err := client.Translations(context.Background(), "20", 1)

	require.NoError(t, err)
	assert.Equal(t, "Praise", translations[0].Text)
}

func TestPrimaryClient_ChapterAudio(t *testing.T) {
	client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chapter_recitations/7/2", r.URL.Path)
		_, _ = w.Write([]byte(`{"audio_file":{"audio_url":"/mishari/002.mp3"}}`))
	}), newAuthenticatedTokens())

	audioURL, err := client.ChapterAudio(context.Background(), 7, 2)

	require.NoError(t, err)
	assert.Equal(t, "https://audio.qurancdn.com/mishari/002.mp3", audioURL)
}

func TestPrimaryClient_VerseAudio(t *testing.T) {
	client := newTestPrimaryClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recitations/7/by_chapter/1", r.URL.Path)
		if r.URL.Query().Get("page") == "1" {
			_, _ = w.Write([]byte(`{"audio_files":[{"verse_key":"1:1","url":"Alafasy/mp3/001001.mp3"},
				{"verse_key":"1:2","url":"//mirror.example/001002.mp3"}],"pagination":{"next_page":2}}`))
			return
		}
		_, _ = w.Write([]byte(`{"audio_files":[{"verse_key":"1:3","url":"https://cdn.example/001003.mp3"}],
			"pagination":{"next_page":null}}`))
	}), newAuthenticatedTokens())

	files, err := client.VerseAudio(context.Background(), 7, 1)

	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "https://download.quranicaudio.com/Alafasy/mp3/001001.mp3", files[0].URL)
	assert.Equal(t, "https://mirror.example/001002.mp3", files[1].URL)
	assert.True(t, contentDomain.AllAbsolute(files))
}
