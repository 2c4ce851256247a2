package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"normadeck/internal/auth"
	"normadeck/internal/domain/models"
)

const ctxUserKey = "auth_user"

// RequireAdmin guards the management routes behind a valid session token.
func RequireAdmin(provider func() auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sessão em falta"})
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		user, _, err := provider().SessionFromToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sessão inválida"})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// CurrentUser extracts the authenticated user from the gin context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
