package http

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsWildcard in CORS_ALLOW_ORIGINS opens the API to every origin without
// credentials.
const corsWildcard = "*"

// createCORSMiddleware builds the CORS middleware from CORS_ENABLED and
// CORS_ALLOW_ORIGINS. It returns nil when CORS is disabled or no origin
// survives validation.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins, rejected := parseOrigins(allowOriginsStr)
	for _, origin := range rejected {
		logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured")
		return nil
	}

	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 1 && origins[0] == corsWildcard {
		config.AllowAllOrigins = true
		logger.Info("CORS enabled for all origins")
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
		logger.Info("CORS enabled", slog.Int("origin_count", len(origins)), slog.Any("origins", origins))
	}

	return cors.New(config)
}

// parseOrigins splits a comma-separated origin list. An origin is accepted
// when it is the wildcard alone or a bare http(s) scheme and host. Anything
// else is returned in rejected.
func parseOrigins(originsStr string) (origins, rejected []string) {
	for _, part := range strings.Split(originsStr, ",") {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if origin == corsWildcard || validOrigin(origin) {
			origins = append(origins, origin)
			continue
		}
		rejected = append(rejected, origin)
	}

	if len(origins) > 1 {
		for _, origin := range origins {
			if origin == corsWildcard {
				return nil, append(rejected, origins...)
			}
		}
	}
	return origins, rejected
}

func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && (u.Path == "" || u.Path == "/") && u.RawQuery == "" && u.Fragment == ""
}
