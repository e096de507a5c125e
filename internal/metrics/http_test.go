package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstrumentedRouter(t *testing.T) (*gin.Engine, *Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("gw")
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, provider.Shutdown(context.Background())) })

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "gw"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/v1/chapters/:chapter/verses", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"chapter": c.Param("chapter")})
	})
	router.GET("/v1/audio-proxy", func(c *gin.Context) {
		c.Data(http.StatusOK, "audio/mpeg", []byte(strings.Repeat("a", 4096)))
	})
	return router, provider
}

func serve(router *gin.Engine, path string) int {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w.Code
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	t.Run("Success_LabelsByRoutePattern", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		assert.Equal(t, http.StatusOK, serve(router, "/v1/chapters/1/verses"))
		assert.Equal(t, http.StatusOK, serve(router, "/v1/chapters/2/verses"))

		output := scrape(t, provider)
		assertMetricLine(t, output, `gw_http_requests_total`,
			`method="GET".*path="/v1/chapters/:chapter/verses".*status_code="200"`, `2`)
		assert.NotContains(t, output, `path="/v1/chapters/1/verses"`)
	})

	t.Run("Success_RecordsResponseSize", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		serve(router, "/v1/audio-proxy")

		output := scrape(t, provider)
		assertMetricLine(t, output, `gw_http_response_size_bytes_sum`, `path="/v1/audio-proxy"`, `4096`)
		assertMetricLine(t, output, `gw_http_requests_in_flight`, `path="/v1/audio-proxy"`, `0`)
	})

	t.Run("Success_SkipsProbes", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		serve(router, "/health")

		assert.NotContains(t, scrape(t, provider), `path="/health"`)
	})

	t.Run("Success_UnmatchedRoute", func(t *testing.T) {
		router, provider := newInstrumentedRouter(t)

		assert.Equal(t, http.StatusNotFound, serve(router, "/nope/123"))

		assertMetricLine(t, scrape(t, provider), `gw_http_requests_total`,
			`path="unmatched".*status_code="404"`, `1`)
	})
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "/v1/audio/:reciter/:chapter", sanitizePath("/v1/audio/:reciter/:chapter"))
	assert.Equal(t, "/", sanitizePath("/"))
	assert.Equal(t, unmatchedRoute, sanitizePath(""))
}
