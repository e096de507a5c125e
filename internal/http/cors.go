package http

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Browser audio players issue Range requests and read Content-Range back.
var (
	corsMethods       = []string{"GET", "HEAD", "OPTIONS"}
	corsAllowHeaders  = []string{"Content-Type", "Range"}
	corsExposeHeaders = []string{"X-Request-Id", "Content-Length", "Content-Range", "Accept-Ranges"}
)

// createCORSMiddleware returns nil when CORS is disabled or the origin list is empty.
// "*" anywhere in the list allows every origin without credentials.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("cors enabled without origins, skipping")
		return nil
	}

	policy := cors.Config{
		AllowMethods:  corsMethods,
		AllowHeaders:  corsAllowHeaders,
		ExposeHeaders: corsExposeHeaders,
		MaxAge:        12 * time.Hour,
	}

	if slices.Contains(origins, "*") {
		policy.AllowAllOrigins = true
	} else {
		policy.AllowOrigins = origins
		policy.AllowCredentials = true
	}

	logger.Info("cors enabled",
		slog.Bool("all_origins", policy.AllowAllOrigins),
		slog.Any("origins", origins))

	return cors.New(policy)
}

func parseOrigins(raw string) []string {
	var origins []string
	for part := range strings.SplitSeq(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
