package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/quran-gateway/internal/config"
	credentialRepository "github.com/allisson/quran-gateway/internal/credential/repository"
)

func newTestConfig() *config.Config {
	return &config.Config{
		LogLevel:                   "error",
		ServerHost:                 "localhost",
		ServerPort:                 0,
		ShutdownTimeout:            time.Second,
		QuranTokenEndpoint:         "http://127.0.0.1:1/oauth2/token",
		QuranTokenScope:            "content",
		QuranAPIBaseURL:            "http://127.0.0.1:1/content/api/v4",
		FallbackAPIBaseURL:         "http://127.0.0.1:1/v1",
		FallbackArabicEdition:      "quran-uthmani",
		PublicChapterAudioBaseURL:  "https://server8.mp3quran.net",
		PublicVerseAudioBaseURL:    "https://everyayah.com/data",
		TokenRefreshSkew:           time.Minute,
		UpstreamTimeout:            2 * time.Second,
		UpstreamPageSize:           50,
		UpstreamMaxPages:           1,
		DefaultTranslationID:       "131",
		TranslationFallbackIDs:     []string{"20"},
		TranslationEditions:        map[string]string{"20": "en.sahih"},
		AudioRelayTimeout:          time.Second,
		AudioRelayPrimaryHost:      "verses.quran.com",
		AudioRelayAlternateBaseURL: "https://everyayah.com/data",
		CredentialStore:            config.CredentialStoreMemory,
		RateLimitEnabled:           false,
		CORSEnabled:                true,
		CORSAllowOrigins:           "*",
		MetricsNamespace:           "quran_gateway",
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := newTestConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerLoggerDefaultLevel verifies that logger defaults to info level.
func TestContainerLoggerDefaultLevel(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "invalid"})

	if container.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}
}

// TestContainerInitializationErrors verifies that initialization errors are cached.
func TestContainerInitializationErrors(t *testing.T) {
	cfg := newTestConfig()
	cfg.CredentialStore = "memcached"

	container := NewContainer(cfg)

	_, err := container.CredentialStore()
	require.Error(t, err)

	_, err = container.CredentialStore()
	require.Error(t, err, "expected error on second call to CredentialStore()")

	_, err = container.TokenCache()
	assert.Error(t, err)

	_, err = container.Resolver()
	assert.Error(t, err)

	_, err = container.HTTPServer()
	assert.Error(t, err)
}

// TestContainerLazyInitialization verifies that components are only initialized when accessed.
func TestContainerLazyInitialization(t *testing.T) {
	container := NewContainer(newTestConfig())

	if container.logger != nil || container.tokenCache != nil {
		t.Error("expected components to be nil before first access")
	}

	_, err := container.Resolver()
	require.NoError(t, err)

	assert.NotNil(t, container.logger)
	assert.NotNil(t, container.tokenCache)
	assert.NotNil(t, container.primaryClient)
	assert.Nil(t, container.audioRelay, "resolver does not need the audio relay")
}

func TestContainer_SharesTokenCache(t *testing.T) {
	container := NewContainer(newTestConfig())

	first, err := container.TokenCache()
	require.NoError(t, err)
	second, err := container.TokenCache()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.False(t, first.HasCredentials())
}

func TestContainer_CredentialStore(t *testing.T) {
	t.Run("Success_Memory", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		store, err := container.CredentialStore()

		require.NoError(t, err)
		assert.IsType(t, &credentialRepository.MemoryStore{}, store)
		assert.Nil(t, container.redisClient)
	})

	t.Run("Success_Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := newTestConfig()
		cfg.CredentialStore = config.CredentialStoreRedis
		cfg.RedisAddr = mr.Addr()
		container := NewContainer(cfg)
		t.Cleanup(func() { _ = container.Shutdown(context.Background()) })

		store, err := container.CredentialStore()

		require.NoError(t, err)
		assert.IsType(t, &credentialRepository.RedisStore{}, store)
		assert.NoError(t, container.credentialStore.Ping(context.Background()))
	})
}

func TestContainer_MetricsDisabled(t *testing.T) {
	container := NewContainer(newTestConfig())

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	businessMetrics, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.NotNil(t, businessMetrics)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, metricsServer)
}

func TestContainer_MetricsEnabled(t *testing.T) {
	cfg := newTestConfig()
	cfg.MetricsEnabled = true
	cfg.MetricsNamespace = "di_test"
	container := NewContainer(cfg)
	t.Cleanup(func() { _ = container.Shutdown(context.Background()) })

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	require.NotNil(t, provider)

	metricsServer, err := container.MetricsServer()
	require.NoError(t, err)
	assert.NotNil(t, metricsServer)
}

// TestContainer_ServesChaptersFromFallback wires the full graph against a fake fallback upstream.
// No credentials are configured, so the primary tier is skipped.
func TestContainer_ServesChaptersFromFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/surah" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"status":"OK","data":[{"number":1,"name":"سُورَةُ ٱلْفَاتِحَةِ",
			"englishName":"Al-Faatiha","englishNameTranslation":"The Opening","numberOfAyahs":7,
			"revelationType":"Meccan"}]}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := newTestConfig()
	cfg.FallbackAPIBaseURL = upstream.URL + "/v1"
	container := NewContainer(cfg)
	t.Cleanup(func() { _ = container.Shutdown(context.Background()) })

	server, err := container.HTTPServer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/chapters", nil)
	server.GetHandler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool   `json:"success"`
		Source  string `json:"source"`
		Data    []struct {
			ID         int `json:"id"`
			VerseCount int `json:"verses_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "fallback", body.Source)
	require.Len(t, body.Data, 1)
	assert.Equal(t, 7, body.Data[0].VerseCount)

	w = httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

// Without credentials and with the fallback unreachable the failure is a setup problem.
func TestContainer_ChaptersSetupRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	container := NewContainer(newTestConfig())
	t.Cleanup(func() { _ = container.Shutdown(context.Background()) })

	server, err := container.HTTPServer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/chapters", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, true, body["setup_required"])
}

func TestContainer_RelayAllowedHosts(t *testing.T) {
	t.Run("Success_IncludesConfiguredAudioHosts", func(t *testing.T) {
		cfg := newTestConfig()
		cfg.AudioRelayAllowedHosts = []string{"mp3quran.net"}
		cfg.ChapterAudioBaseURL = "https://audio.qurancdn.com"
		container := NewContainer(cfg)

		hosts := container.relayAllowedHosts()

		assert.Contains(t, hosts, "mp3quran.net")
		assert.Contains(t, hosts, "verses.quran.com")
		assert.Contains(t, hosts, "audio.qurancdn.com")
		assert.Contains(t, hosts, "everyayah.com")
	})

	t.Run("Success_EmptyAllowsAnyHost", func(t *testing.T) {
		container := NewContainer(newTestConfig())

		assert.Empty(t, container.relayAllowedHosts())
	})
}

// TestContainerShutdown verifies that the shutdown method can be called safely.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "info"})

	// Shutdown should not fail even if no components are initialized
	if err := container.Shutdown(context.TODO()); err != nil {
		t.Errorf("unexpected error during shutdown: %v", err)
	}
}
