package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCORSMiddleware_NotApplied(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.Nil(t, createCORSMiddleware(false, "*", logger), "disabled")
	assert.Nil(t, createCORSMiddleware(true, "", logger), "no origins")
	assert.Nil(t, createCORSMiddleware(true, " , ,", logger), "only separators")
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "Empty", input: "", expected: nil},
		{name: "Single", input: "https://reader.example", expected: []string{"https://reader.example"}},
		{
			name:     "TrimsAndSkipsBlanks",
			input:    " https://reader.example , ,https://player.example ",
			expected: []string{"https://reader.example", "https://player.example"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origins := parseOrigins(tt.input)
			if tt.expected == nil {
				assert.Empty(t, origins)
				return
			}
			assert.Equal(t, tt.expected, origins)
		})
	}
}

func corsRouter(t *testing.T, origins string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	middleware := createCORSMiddleware(true, origins, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.GET("/v1/audio-proxy", func(c *gin.Context) {
		c.Header("Content-Range", "bytes 0-1/2")
		c.Status(http.StatusPartialContent)
	})
	return router
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	router := corsRouter(t, "https://reader.example,https://player.example")

	t.Run("AllowedOrigin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/audio-proxy", nil)
		req.Header.Set("Origin", "https://player.example")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "https://player.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Range")
	})

	t.Run("ForeignOriginRejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/audio-proxy", nil)
		req.Header.Set("Origin", "https://evil.example")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	// Players send Range on audio requests, which triggers a preflight
	t.Run("RangePreflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/audio-proxy", nil)
		req.Header.Set("Origin", "https://reader.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		req.Header.Set("Access-Control-Request-Headers", "Range")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Range")
	})
}

func TestCORS_WildcardAllowsAnyOrigin(t *testing.T) {
	router := corsRouter(t, "*")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/audio-proxy", nil)
	req.Header.Set("Origin", "https://player.example.org")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
