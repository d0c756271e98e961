package httpapi

import (
	"net/http"
	"strings"
	"time"

	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const identityKey = "caller_identity"

// RequireAuth verifies the bearer credential and stores the caller identity
// on the request context; requests without a valid token get 401.
func RequireAuth(verifier outbound.TokenVerifier, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "Invalid or expired token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid token is presented
// but lets anonymous requests through
func OptionalAuth(verifier outbound.TokenVerifier, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if identity, err := verifier.Verify(c.Request.Context(), token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// callerIdentity fetches the verified identity stored by the auth middleware
func callerIdentity(c *gin.Context) (shared.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return shared.Identity{}, false
	}
	identity, ok := v.(shared.Identity)
	return identity, ok
}

// bearerToken extracts the credential from an Authorization header
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// RequestLogger logs one structured line per request
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}
