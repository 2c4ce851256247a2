package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"normadeck/internal/auth"
	intconfig "normadeck/internal/config"
	"normadeck/internal/http/middleware"
	"normadeck/internal/repositories"
	"normadeck/internal/utils"
)

var jwtSecret = []byte("super-secret-key-change-me")

// SetJWTSecret overrides the signing secret from the environment.
func SetJWTSecret(secret string) {
	if strings.TrimSpace(secret) != "" {
		jwtSecret = []byte(secret)
	}
}

// AuthProvider builds the auth collaborator over the shared DB handle.
func AuthProvider() auth.Provider {
	return auth.Provider{
		Admins: repositories.AdminRepository{DB: intconfig.DB},
		Secret: jwtSecret,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, sess, err := AuthProvider().SignInWithPassword(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
			return
		}
		utils.LogEvent(middleware.GetRequestID(c), "auth", "login_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "não foi possível iniciar sessão"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      sess.AccessToken,
		"expires_at": sess.ExpiresAt.UTC().Format(time.RFC3339),
		"user":       user,
	})
}

// GET /api/auth/session
// Resolves a bearer token back to the user projection. Absence of a session
// is a valid, common state and comes back as 401, not a server fault.
func Session(c *gin.Context) {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sem sessão"})
		return
	}

	raw := strings.TrimSpace(h[len("Bearer "):])
	user, sess, err := AuthProvider().SessionFromToken(c.Request.Context(), raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sessão inválida"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"expires_at": sess.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// POST /api/auth/logout
// Sign-out is best effort; the client drops its cached session regardless.
func Logout(c *gin.Context) {
	utils.LogEvent(middleware.GetRequestID(c), "auth", "logout", "")
	c.JSON(http.StatusOK, gin.H{"message": "sessão terminada"})
}
