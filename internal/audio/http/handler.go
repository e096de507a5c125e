// Package http provides the HTTP handler that relays remote audio to browser players.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	audioService "github.com/allisson/quran-gateway/internal/audio/service"
	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	apperrors "github.com/allisson/quran-gateway/internal/errors"
	"github.com/allisson/quran-gateway/internal/httputil"
)

// AudioRelay fetches remote audio for streaming to the caller.
type AudioRelay interface {
	Relay(ctx context.Context, remoteURL, rangeHeader string) (*audioService.Stream, error)
}

// AudioHandler handles audio relay requests.
type AudioHandler struct {
	relay  AudioRelay
	logger *slog.Logger
}

// NewAudioHandler creates a new audio handler.
func NewAudioHandler(relay AudioRelay, logger *slog.Logger) *AudioHandler {
	return &AudioHandler{relay: relay, logger: logger}
}

// ProxyHandler streams the audio at the url query parameter.
// GET /v1/audio-proxy?url=... - Returns the upstream status with audio bytes,
// 400 when url is missing, 422 when it is not an absolute http(s) URL, 403 when its host
// (or a redirect's) is outside the allowlist,
// 404 when the upstream has no such file and 502 for any other upstream failure.
func (h *AudioHandler) ProxyHandler(c *gin.Context) {
	remoteURL := c.Query("url")
	if remoteURL == "" {
		httputil.HandleBadRequestGin(c, errors.New("url query parameter is required"), h.logger)
		return
	}

	stream, err := h.relay.Relay(c.Request.Context(), remoteURL, c.GetHeader("Range"))
	if err != nil {
		h.handleRelayError(c, err)
		return
	}
	defer func() {
		_ = stream.Body.Close()
	}()

	// Replace rather than add so CORS headers set by router middleware are not duplicated.
	for name, values := range stream.Header {
		c.Writer.Header()[name] = append([]string(nil), values...)
	}
	c.Status(stream.StatusCode)

	if _, err := io.Copy(c.Writer, stream.Body); err != nil {
		// The caller usually went away mid-stream; headers are already sent.
		h.logger.Debug("audio relay stream interrupted",
			slog.String("source_url", stream.SourceURL),
			slog.Any("error", err))
	}
}

func (h *AudioHandler) handleRelayError(c *gin.Context, err error) {
	if apperrors.Is(err, contentDomain.ErrAudioHostNotAllowed) {
		h.logger.Warn("audio relay target rejected", slog.Any("error", err))
		c.JSON(http.StatusForbidden, httputil.ErrorResponse{
			Error:   "audio_host_not_allowed",
			Message: err.Error(),
		})
		return
	}
	if apperrors.Is(err, apperrors.ErrInvalidInput) {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	statusCode := http.StatusBadGateway
	var upstreamErr *contentDomain.UpstreamError
	if apperrors.As(err, &upstreamErr) && upstreamErr.Status == http.StatusNotFound {
		statusCode = http.StatusNotFound
	}

	h.logger.Warn("audio relay failed",
		slog.Int("status_code", statusCode),
		slog.Any("error", err))

	c.JSON(statusCode, httputil.ErrorResponse{
		Error:   "audio_unavailable",
		Message: fmt.Sprintf("failed to fetch audio: %v", err),
	})
}
