package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	intconfig "normadeck/internal/config"
	"normadeck/internal/domain"
	"normadeck/internal/domain/models"
	"normadeck/internal/http/middleware"
	"normadeck/internal/repositories"
	"normadeck/internal/services"
	"normadeck/internal/utils"
)

func normaRepo() repositories.NormaRepository {
	return repositories.NormaRepository{DB: intconfig.DB}
}

type normaPayload struct {
	Nome      string `json:"nome"`
	Pais      string `json:"pais"`
	Categoria string `json:"categoria"`
	Ano       string `json:"ano"`
	ImagemURL string `json:"imagem_url"`
	PDFURL    string `json:"pdf_url"`
	Autor     string `json:"autor"`
}

func (p normaPayload) toModel() models.Norma {
	return models.Norma{
		Nome:      utils.NormalizeSpace(p.Nome),
		Pais:      utils.NormalizeSpace(p.Pais),
		Categoria: utils.NormalizeSpace(p.Categoria),
		Ano:       utils.TrimOrEmpty(p.Ano),
		ImagemURL: utils.TrimOrEmpty(p.ImagemURL),
		PDFURL:    utils.TrimOrEmpty(p.PDFURL),
		Autor:     utils.NormalizeSpace(p.Autor),
	}
}

// actorSuffix tags management log lines with the admin who acted.
func actorSuffix(c *gin.Context) string {
	if u, ok := middleware.CurrentUser(c); ok {
		return " admin=" + u.Email
	}
	return ""
}

// GET /api/normas?search=&pais=&categoria=&ano=&sort=&direction=
// Loads the full record set and runs the derive pipeline over it.
func GetNormas(c *gin.Context) {
	filters, err := domain.NewFilters(map[string]string{
		"pais":      strings.TrimSpace(c.Query("pais")),
		"categoria": strings.TrimSpace(c.Query("categoria")),
		"ano":       strings.TrimSpace(c.Query("ano")),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	sortSpec, err := domain.ParseSort(strings.TrimSpace(c.Query("sort")), strings.TrimSpace(c.Query("direction")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	records, err := normaRepo().List(c.Request.Context())
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "normas", "list_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "não foi possível carregar as normas"})
		return
	}

	list := services.Derive(records, services.Query{
		Search:  c.Query("search"),
		Filters: filters,
		Sort:    sortSpec,
	})

	c.JSON(http.StatusOK, gin.H{"normas": list, "total": len(list)})
}

// GET /api/normas/recent?limit=4
func GetRecentNormas(c *gin.Context) {
	limit := 4
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := normaRepo().ListRecent(c.Request.Context(), limit)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "normas", "recent_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "não foi possível carregar as normas recentes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"normas": list})
}

// GET /api/normas/:id
func GetNormaByID(c *gin.Context) {
	n, err := normaRepo().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		utils.LogEvent(middleware.GetRequestID(c), "normas", "get_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "não foi possível carregar a norma"})
		return
	}
	c.JSON(http.StatusOK, n)
}

// POST /api/normas
func CreateNorma(c *gin.Context) {
	var req normaPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	n := req.toModel()
	if err := n.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := normaRepo().Insert(c.Request.Context(), n)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "normas", "insert_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao guardar a norma"})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "normas", "created", "id="+created.ID+actorSuffix(c))
	c.JSON(http.StatusCreated, created)
}

// PUT /api/normas/:id
func UpdateNorma(c *gin.Context) {
	var req normaPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	n := req.toModel()
	if err := n.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	updated, err := normaRepo().Update(c.Request.Context(), c.Param("id"), n)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		utils.LogEvent(middleware.GetRequestID(c), "normas", "update_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao guardar a norma"})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "normas", "updated", "id="+updated.ID+actorSuffix(c))
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/normas/:id
func DeleteNorma(c *gin.Context) {
	id := c.Param("id")
	if err := normaRepo().Delete(c.Request.Context(), id); err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		utils.LogEvent(middleware.GetRequestID(c), "normas", "delete_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro ao excluir a norma"})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "normas", "deleted", "id="+id+actorSuffix(c))
	c.JSON(http.StatusOK, gin.H{"message": "norma excluída"})
}

// GET /api/normas/:id/ficha
func GetNormaFicha(c *gin.Context) {
	svc := services.FichaService{
		Normas:    normaRepo(),
		RequestID: middleware.GetRequestID(c),
	}

	pdfBytes, filename, err := svc.GenerateFicha(c.Request.Context(), c.Param("id"))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, err)
			return
		}
		utils.LogEvent(middleware.GetRequestID(c), "normas", "ficha_failed", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "não foi possível gerar a ficha"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
