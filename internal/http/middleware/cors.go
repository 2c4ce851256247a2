package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS builds the permissive policy the catalog front-end and the get-pdf
// endpoint rely on: any origin unless CORS_ALLOWED_ORIGINS narrows it, and
// the Location header exposed so download resolution can read it.
func CORS() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Authorization", "Accept", "Origin"},
		ExposeHeaders: []string{"Location"},
		MaxAge:        24 * time.Hour,
	}

	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
		cfg.AllowCredentials = true
	} else {
		cfg.AllowAllOrigins = true
	}

	return cors.New(cfg)
}
