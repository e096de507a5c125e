// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	audioHTTP "github.com/allisson/quran-gateway/internal/audio/http"
	contentHTTP "github.com/allisson/quran-gateway/internal/content/http"
	"github.com/allisson/quran-gateway/internal/metrics"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterConfig holds the middleware options applied by SetupRouter.
type RouterConfig struct {
	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	// MeterProvider enables HTTP request metrics when non-nil.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	store  HealthChecker
}

// NewServer creates a new HTTP server. store backs the readiness probe; a nil store
// always reports not ready.
func NewServer(
	store HealthChecker,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		store:  store,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			// No WriteTimeout: relayed audio streams for as long as the recitation lasts.
			IdleTimeout: 60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and every route. ctx bounds background work
// started by middleware such as the rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg RouterConfig,
	contentHandler *contentHTTP.ContentHandler,
	audioHandler *audioHTTP.AudioHandler,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(IPRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		v1.GET("/status", contentHandler.StatusHandler)
		v1.GET("/reciters", contentHandler.RecitersHandler)

		v1.GET("/chapters", contentHandler.ListChaptersHandler)
		v1.GET("/chapters/:chapter/verses", contentHandler.VersesHandler)

		v1.GET("/audio/:reciter/:chapter", contentHandler.ChapterAudioHandler)
		v1.GET("/audio/:reciter/:chapter/verses", contentHandler.VerseAudioHandler)

		v1.GET("/audio-proxy", audioHandler.ProxyHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must have been called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the credential store is reachable. Upstream content
// sources are not probed; their failures are absorbed by fallback tiers.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"credential_store": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"credential_store": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"credential_store": "ok"},
	})
}
