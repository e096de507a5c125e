// Package http provides HTTP handlers for content resolution operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	contentDomain "github.com/allisson/quran-gateway/internal/content/domain"
	"github.com/allisson/quran-gateway/internal/content/http/dto"
	contentUseCase "github.com/allisson/quran-gateway/internal/content/usecase"
	"github.com/allisson/quran-gateway/internal/httputil"
	customValidation "github.com/allisson/quran-gateway/internal/validation"
)

// ContentHandler handles HTTP requests for chapters, verses and recitation audio.
// Every route answers with the tagged resolution body produced by the Resolver.
type ContentHandler struct {
	resolver contentUseCase.Resolver
	logger   *slog.Logger
}

// NewContentHandler creates a new content handler with required dependencies.
func NewContentHandler(resolver contentUseCase.Resolver, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// StatusHandler reports which source content is currently served from.
// GET /v1/status - Returns 200 OK with the status record.
func (h *ContentHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.resolver.Status(c.Request.Context()))
}

// ListChaptersHandler lists all chapters.
// GET /v1/chapters - Returns 200 OK with the tagged chapter list, 502 or 503 when every tier failed.
func (h *ContentHandler) ListChaptersHandler(c *gin.Context) {
	writeResolved(c, h.resolver.ListChapters(c.Request.Context()), h.logger)
}

// VersesHandler returns a chapter's verses with one aligned translation.
// GET /v1/chapters/:chapter/verses?translations=ID - Returns 200 OK, 502 or 503.
func (h *ContentHandler) VersesHandler(c *gin.Context) {
	req := dto.ParseVersesRequest(c.Param("chapter"), c.Query("translations"))
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	writeResolved(c, h.resolver.GetVersesWithTranslation(c.Request.Context(), req.Chapter, req.TranslationID), h.logger)
}

// ChapterAudioHandler resolves a whole-chapter recitation URL.
// GET /v1/audio/:reciter/:chapter - Returns 200 OK with the tagged URL.
func (h *ContentHandler) ChapterAudioHandler(c *gin.Context) {
	req := dto.ParseAudioRequest(c.Param("reciter"), c.Param("chapter"))
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	writeResolved(c, h.resolver.GetChapterAudio(c.Request.Context(), req.ReciterID, req.Chapter), h.logger)
}

// VerseAudioHandler resolves per-verse recitation URLs for a chapter.
// GET /v1/audio/:reciter/:chapter/verses - Returns 200 OK with the tagged URL list.
func (h *ContentHandler) VerseAudioHandler(c *gin.Context) {
	req := dto.ParseAudioRequest(c.Param("reciter"), c.Param("chapter"))
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	writeResolved(c, h.resolver.GetVerseAudio(c.Request.Context(), req.ReciterID, req.Chapter), h.logger)
}

// RecitersHandler lists the static reciter catalogue.
// GET /v1/reciters - Returns 200 OK.
func (h *ContentHandler) RecitersHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapRecitersToListResponse(contentDomain.Reciters()))
}

// writeResolved writes a successful resolution as 200. A failed one keeps the tagged body
// and takes its status from the error category: 503 when credentials need setup,
// 502 when upstreams are down, 422 for rejected input.
func writeResolved[T any](c *gin.Context, resolved contentDomain.Resolved[T], logger *slog.Logger) {
	if resolved.Success {
		c.JSON(http.StatusOK, resolved)
		return
	}

	statusCode, errorResponse := httputil.ErrorStatus(resolved.Err)
	logger.Warn("content resolution failed",
		slog.String("path", c.FullPath()),
		slog.Int("status_code", statusCode),
		slog.String("error_code", errorResponse.Error),
		slog.String("error", resolved.Error),
		slog.Bool("setup_required", resolved.SetupRequired),
		slog.Bool("fallback_needed", resolved.FallbackNeeded),
	)
	c.JSON(statusCode, resolved)
}
