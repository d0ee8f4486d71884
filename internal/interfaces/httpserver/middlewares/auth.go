package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	authvalidator "streamvault/catalog-api/internal/infrastructure/auth"
)

const principalContextKey = "principal"

// AuthMiddleware validates JWT bearer tokens against the configured JWKS.
// With a nil validator authentication is disabled and every request passes
// through anonymously.
func AuthMiddleware(validator *authvalidator.Validator, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validator == nil {
			c.Next()
			return
		}

		rawToken := bearerToken(c)
		if rawToken == "" {
			logger.Warn().
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Msg("unauthenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		principal, err := validator.Validate(c.Request.Context(), rawToken)
		if err != nil {
			logger.Warn().Err(err).Msg("jwt validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid token",
			})
			return
		}

		c.Set(principalContextKey, principal)
		c.Set("user_id", principal.Subject)
		c.Next()
	}
}

// RequireRole ensures the authenticated principal carries the given realm
// role. A nil principal with auth disabled passes, keeping single-tenant
// deployments simple.
func RequireRole(role string, authEnabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authEnabled {
			c.Next()
			return
		}

		principal, ok := PrincipalFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Authentication required",
			})
			return
		}

		if !principal.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Insufficient role",
			})
			return
		}

		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (*authvalidator.PrincipalClaims, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return nil, false
	}
	principal, ok := val.(*authvalidator.PrincipalClaims)
	return principal, ok && principal != nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
