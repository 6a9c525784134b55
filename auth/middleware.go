package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MiddlewareConfig controls how a route group is guarded.
type MiddlewareConfig struct {
	Log           zerolog.Logger
	RequireScopes []string
	// Disabled lets every request through as a local user (AUTH_DISABLED=true).
	Disabled bool
}

// localClaims identifies callers when auth is switched off.
var localClaims = &Claims{
	Subject: "local-dev",
	Issuer:  "local",
	Raw:     map[string]any{"sub": "local-dev"},
}

// Middleware requires a valid bearer token carrying cfg.RequireScopes and puts
// its claims on the request context.
func Middleware(verifier *Verifier, cfg MiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.Disabled {
			c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), localClaims))
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if verifier == nil {
			unauthorized(c, "auth verifier not configured")
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			cfg.Log.Info().Str("path", path).Msg("auth failure: missing or malformed authorization header")
			unauthorized(c, "invalid authorization header")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			cfg.Log.Info().Err(err).Str("path", path).Msg("auth failure: token invalid")
			unauthorized(c, "invalid token")
			return
		}

		if !claims.HasScopes(cfg.RequireScopes...) {
			cfg.Log.Info().Str("path", path).Str("sub", claims.Subject).Msg("auth failure: missing scopes")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient scope"})
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
