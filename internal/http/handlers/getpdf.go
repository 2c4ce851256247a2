package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "normadeck/internal/config"
	"normadeck/internal/domain"
	"normadeck/internal/http/middleware"
	"normadeck/internal/repositories"
	"normadeck/internal/utils"
)

// GET /functions/get-pdf?id=<record-id>
// Resolves a record id to its PDF location. The result is deliberately
// encoded twice, as a Location header and as the JSON url field, with the
// status kept at 200; clients depend on both paths existing.
func GetPDF(c *gin.Context) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ID parameter"})
		return
	}

	if c.GetHeader("Authorization") == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
		return
	}

	if intconfig.DB == nil {
		utils.LogEvent(middleware.GetRequestID(c), "getpdf", "misconfigured", "db handle is nil")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
		return
	}

	pdfURL, err := repositories.NormaRepository{DB: intconfig.DB}.PDFURL(c.Request.Context(), id)
	if err != nil {
		if domain.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PDF not found"})
			return
		}
		utils.LogEvent(middleware.GetRequestID(c), "getpdf", "query_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if pdfURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "PDF not found"})
		return
	}

	c.Header("Location", pdfURL)
	c.JSON(http.StatusOK, gin.H{"url": pdfURL})
}
