// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	customValidation "github.com/allisson/quran-gateway/internal/validation"
)

// Credential store drivers.
const (
	CredentialStoreMemory = "memory"
	CredentialStoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// QuranClientID is the OAuth2 client identifier for the primary content API.
	QuranClientID string
	// QuranClientSecret is the OAuth2 client secret for the primary content API.
	QuranClientSecret string
	// QuranTokenEndpoint is the client-credentials token endpoint.
	QuranTokenEndpoint string
	// QuranTokenScope is the scope requested during the token exchange.
	QuranTokenScope string
	// QuranAPIBaseURL is the base URL of the primary content API.
	QuranAPIBaseURL string
	// QuranPrimaryAudioEnabled controls whether audio is requested from the primary API.
	// Pre-production deployments of the primary API do not serve audio endpoints.
	QuranPrimaryAudioEnabled bool

	// FallbackAPIBaseURL is the base URL of the public fallback content API.
	FallbackAPIBaseURL string
	// FallbackArabicEdition is the fallback edition used for Arabic verse text.
	FallbackArabicEdition string

	// ChapterAudioBaseURL qualifies relative chapter audio paths from the primary API.
	ChapterAudioBaseURL string
	// VerseAudioBaseURL qualifies relative verse audio paths from the primary API.
	VerseAudioBaseURL string
	// PublicChapterAudioBaseURL is the public host serving whole-chapter recitations.
	PublicChapterAudioBaseURL string
	// PublicVerseAudioBaseURL is the public host serving per-verse recitations.
	PublicVerseAudioBaseURL string

	// TokenRefreshSkew is subtracted from the token lifetime so it is refreshed early.
	TokenRefreshSkew time.Duration
	// UpstreamTimeout bounds every content call to the primary and fallback sources.
	UpstreamTimeout time.Duration
	// UpstreamPageSize is the per_page value sent to paginated primary endpoints.
	UpstreamPageSize int
	// UpstreamMaxPages caps how many pages are followed for one chapter.
	UpstreamMaxPages int

	// DefaultTranslationID is used when a request does not name a translation.
	DefaultTranslationID string
	// TranslationFallbackIDs is the ordered list of alternates tried after the requested translation.
	TranslationFallbackIDs []string
	// TranslationEditions maps primary translation ids to fallback API editions.
	TranslationEditions map[string]string

	// AudioRelayTimeout bounds the wait for upstream audio response headers.
	AudioRelayTimeout time.Duration
	// AudioRelayPrimaryHost is the audio host whose failures trigger the alternate host retry.
	AudioRelayPrimaryHost string
	// AudioRelayAlternateBaseURL is the base URL used for the single alternate retry.
	AudioRelayAlternateBaseURL string
	// AudioRelayCacheMaxAge is the max-age advertised on relayed audio.
	AudioRelayCacheMaxAge time.Duration
	// AudioRelayAllowedHosts lists the hosts (and their subdomains) the relay may fetch from.
	// Empty allows any host; "*" in the environment selects that.
	AudioRelayAllowedHosts []string

	// CredentialStore selects where the access credential is cached ("memory" or "redis").
	CredentialStore string
	// RedisAddr is the Redis address used by the redis credential store.
	RedisAddr string
	// RedisPassword is the Redis password.
	RedisPassword string
	// RedisDB is the Redis logical database.
	RedisDB int

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for per-IP rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS ("*" allows all).
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	apiBaseURL := env.GetString("QURAN_API_BASE_URL", "https://apis.quran.foundation/content/api/v4")

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Primary content API
		QuranClientID:      strings.TrimSpace(env.GetString("QURAN_CLIENT_ID", "")),
		QuranClientSecret:  strings.TrimSpace(env.GetString("QURAN_CLIENT_SECRET", "")),
		QuranTokenEndpoint: env.GetString("QURAN_TOKEN_ENDPOINT", "https://oauth2.quran.foundation/oauth2/token"),
		QuranTokenScope:    env.GetString("QURAN_TOKEN_SCOPE", "content"),
		QuranAPIBaseURL:    apiBaseURL,
		QuranPrimaryAudioEnabled: env.GetBool(
			"QURAN_PRIMARY_AUDIO_ENABLED",
			!strings.Contains(apiBaseURL, "prelive"),
		),

		// Fallback content API
		FallbackAPIBaseURL:    env.GetString("FALLBACK_API_BASE_URL", "https://api.alquran.cloud/v1"),
		FallbackArabicEdition: env.GetString("FALLBACK_ARABIC_EDITION", "quran-uthmani"),

		// Audio hosts
		ChapterAudioBaseURL:       env.GetString("CHAPTER_AUDIO_BASE_URL", "https://audio.qurancdn.com"),
		VerseAudioBaseURL:         env.GetString("VERSE_AUDIO_BASE_URL", "https://download.quranicaudio.com"),
		PublicChapterAudioBaseURL: env.GetString("PUBLIC_CHAPTER_AUDIO_BASE_URL", "https://download.quranicaudio.com/quran"),
		PublicVerseAudioBaseURL:   env.GetString("PUBLIC_VERSE_AUDIO_BASE_URL", "https://everyayah.com/data"),

		// Upstream behaviour
		TokenRefreshSkew: env.GetDuration("TOKEN_REFRESH_SKEW_SECONDS", 60, time.Second),
		UpstreamTimeout:  env.GetDuration("UPSTREAM_TIMEOUT_SECONDS", 15, time.Second),
		UpstreamPageSize: env.GetInt("UPSTREAM_PAGE_SIZE", 50),
		UpstreamMaxPages: env.GetInt("UPSTREAM_MAX_PAGES", 20),

		// Translations
		DefaultTranslationID:   env.GetString("DEFAULT_TRANSLATION_ID", "131"),
		TranslationFallbackIDs: ParseList(env.GetString("TRANSLATION_FALLBACK_IDS", "20,85,84,19")),
		TranslationEditions: ParsePairs(env.GetString(
			"TRANSLATION_EDITIONS",
			"20=en.sahih,19=en.pickthall,84=en.yusufali,85=en.hilali",
		)),

		// Audio relay
		AudioRelayTimeout:     env.GetDuration("AUDIO_RELAY_TIMEOUT_SECONDS", 10, time.Second),
		AudioRelayPrimaryHost: env.GetString("AUDIO_RELAY_PRIMARY_HOST", "download.quranicaudio.com"),
		AudioRelayAlternateBaseURL: env.GetString(
			"AUDIO_RELAY_ALTERNATE_BASE_URL",
			"https://everyayah.com/data/Alafasy_64kbps",
		),
		AudioRelayCacheMaxAge: env.GetDuration("AUDIO_RELAY_CACHE_MAX_AGE_SECONDS", 3600, time.Second),
		AudioRelayAllowedHosts: parseHostList(env.GetString(
			"AUDIO_RELAY_ALLOWED_HOSTS",
			"quranicaudio.com,qurancdn.com,verses.quran.com,everyayah.com,mp3quran.net,cdn.islamic.network",
		)),

		// Credential store
		CredentialStore: env.GetString("CREDENTIAL_STORE", CredentialStoreMemory),
		RedisAddr:       env.GetString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   env.GetString("REDIS_PASSWORD", ""),
		RedisDB:         env.GetInt("REDIS_DB", 0),

		// Rate Limiting (per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 20.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 40),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", true),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", "*"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "quran_gateway"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate reports configuration that would make the service build invalid upstream URLs.
// It is checked once at startup; a failure here is fatal.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.QuranTokenEndpoint, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.QuranAPIBaseURL, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.FallbackAPIBaseURL, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.FallbackArabicEdition, validation.Required, customValidation.NotBlank),
		validation.Field(&c.ChapterAudioBaseURL, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.VerseAudioBaseURL, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.PublicChapterAudioBaseURL, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.PublicVerseAudioBaseURL, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.AudioRelayAlternateBaseURL, validation.Required, customValidation.AbsoluteURL),
		validation.Field(&c.TokenRefreshSkew, validation.Min(time.Duration(0))),
		validation.Field(&c.UpstreamTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.AudioRelayTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.UpstreamPageSize, validation.Required, validation.Min(1)),
		validation.Field(&c.UpstreamMaxPages, validation.Required, validation.Min(1)),
		validation.Field(&c.DefaultTranslationID, validation.Required, customValidation.NotBlank),
		validation.Field(&c.CredentialStore, validation.In(CredentialStoreMemory, CredentialStoreRedis)),
	)
}

// HasCredentials reports whether both halves of the client identity are configured.
func (c *Config) HasCredentials() bool {
	return c.QuranClientID != "" && c.QuranClientSecret != ""
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// ParseList splits a comma-separated list, trimming blanks.
func ParseList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// parseHostList is ParseList where a "*" entry means no restriction.
func parseHostList(value string) []string {
	hosts := ParseList(value)
	if slices.Contains(hosts, "*") {
		return nil
	}
	return hosts
}

// ParsePairs parses "key=value,key=value" into a map. Malformed pairs are skipped.
func ParsePairs(value string) map[string]string {
	pairs := make(map[string]string)
	for _, item := range ParseList(value) {
		key, val, ok := strings.Cut(item, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" || val == "" {
			continue
		}
		pairs[key] = val
	}
	return pairs
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
