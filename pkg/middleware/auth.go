package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quillworks/blog-service/pkg/jwt"
)

const (
	UserIDKey     = "user_id"
	UsernameKey   = "username"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// AuthMiddleware validates bearer tokens issued by the identity provider.
type AuthMiddleware struct {
	tokens    *jwt.Manager
	signInURL string
}

// NewAuthMiddleware creates a new auth middleware. Anonymous writes are
// redirected to signInURL rather than answered with an error page.
func NewAuthMiddleware(tokens *jwt.Manager, signInURL string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, signInURL: signInURL}
}

// RequireAuth aborts anonymous requests with a redirect to the sign-in flow.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.extract(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, m.signInURL)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}

// OptionalAuth extracts the actor when a valid token is present and lets
// the request proceed anonymously otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := m.extract(c); ok {
			c.Set(UserIDKey, claims.UserID)
			c.Set(UsernameKey, claims.Username)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) extract(c *gin.Context) (*jwt.Claims, bool) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, false
	}

	claims, err := m.tokens.Validate(strings.TrimPrefix(authHeader, BearerPrefix))
	if err != nil {
		return nil, false
	}
	return claims, true
}

// GetUserID extracts user ID from Gin context.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(string)
	}
	return ""
}

// GetUsername extracts username from Gin context.
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(UsernameKey); exists {
		return username.(string)
	}
	return ""
}
