package api

import (
	"log"
	stdhttp "net/http"

	intconfig "normadeck/internal/config"
	h "normadeck/internal/http/handlers"
	"normadeck/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "rota não encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	// Download resolution lives outside /api, mirroring the hosted
	// functions path the catalog cards call.
	functions := r.Group("/functions")
	functions.GET("/get-pdf", h.GetPDF)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.GET("/session", h.Session)
		auth.POST("/logout", h.Logout)

		// Catalog
		normas := api.Group("/normas")
		normas.GET("", h.GetNormas)
		normas.GET("/recent", h.GetRecentNormas)
		normas.GET("/:id", h.GetNormaByID)
		normas.GET("/:id/ficha", h.GetNormaFicha)

		admin := normas.Group("")
		admin.Use(middleware.RequireAdmin(h.AuthProvider))
		admin.POST("", h.CreateNorma)
		admin.PUT("/:id", h.UpdateNorma)
		admin.DELETE("/:id", h.DeleteNorma)
	}

	h.SetRouter(r)
	return r
}
