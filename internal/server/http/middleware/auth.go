package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourt/internal/domain/model"
	pkgAuth "github.com/polkiloo/foodcourt/internal/pkg/auth"
)

const (
	// CallerContextKey is a gin context key for the authenticated caller.
	CallerContextKey = "caller"
	authCookieName   = "foodcourt_token"
	tokenQueryParam  = "token"
)

// TokenParser resolves a bearer token into the caller identity.
type TokenParser interface {
	ParseToken(token string) (model.Caller, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		caller, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(CallerContextKey, caller)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. Must run after AuthRequired.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		for _, role := range roles {
			if caller.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden", "error": "forbidden"})
	}
}

// CallerFrom returns the caller stored by AuthRequired.
func CallerFrom(c *gin.Context) (model.Caller, bool) {
	value, ok := c.Get(CallerContextKey)
	if !ok {
		return model.Caller{}, false
	}
	caller, ok := value.(model.Caller)
	return caller, ok
}

// extractToken looks at the Authorization header, then the auth cookie, then
// the token query parameter used by websocket clients.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return c.Query(tokenQueryParam)
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
