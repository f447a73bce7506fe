package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/docvault-labs/docvault-cli/internal/core/domain"
	"github.com/docvault-labs/docvault-cli/internal/core/ports/driving"
)

// actorIDKey is the gin context key the resolved actor ID is stored under.
const actorIDKey = "docvault_actor_id"

// sessionMiddleware resolves the bearer token to an actor ID and
// stores it in the request context. Requests without a token pass
// through as anonymous; requests with a dead token are rejected so
// clients learn to re-authenticate.
func sessionMiddleware(auth driving.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.Set(actorIDKey, "")
			c.Next()
			return
		}

		session, err := auth.CurrentSession(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "session invalid or expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "authentication failed",
			})
			return
		}

		c.Set(actorIDKey, session.UserID)
		c.Next()
	}
}

// actorID returns the resolved actor ID, "" for anonymous requests.
func actorID(c *gin.Context) string {
	if v, ok := c.Get(actorIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// requireActor aborts anonymous requests with 401.
func requireActor(c *gin.Context) (string, bool) {
	id := actorID(c)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "authentication required",
		})
		return "", false
	}
	return id, true
}

// rateLimitMiddleware throttles a route with a shared token bucket.
func rateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// extractBearerToken extracts the token from the Authorization header.
// The "Bearer" prefix is case-insensitive per RFC 7235.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
