package models

import (
	"net/url"
	"strings"
	"time"

	"normadeck/internal/domain"
)

// NovoWindow is how long a norma keeps the "Novo" badge after being added.
const NovoWindow = 30 * 24 * time.Hour

// Norma is one catalog record: a graphic-identity guideline document with a
// cover image and a source PDF. ID and CreatedAt are assigned by the server
// on insert and are never written by clients.
type Norma struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Pais      string    `json:"pais"`
	Categoria string    `json:"categoria,omitempty"`
	Ano       string    `json:"ano,omitempty"`
	ImagemURL string    `json:"imagem_url"`
	PDFURL    string    `json:"pdf_url"`
	Autor     string    `json:"autor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Novo      bool      `json:"novo"`
}

// Validate checks the four required fields before any write may reach the
// store. Optional fields (categoria, ano, autor) are never validated; ano in
// particular is stored as free text.
func (n Norma) Validate() error {
	if strings.TrimSpace(n.Nome) == "" {
		return domain.ValidationError{Field: "nome", Msg: "preencha o nome da entidade"}
	}
	if strings.TrimSpace(n.Pais) == "" {
		return domain.ValidationError{Field: "pais", Msg: "preencha o país"}
	}
	if err := requireAbsoluteURL("imagem_url", n.ImagemURL); err != nil {
		return err
	}
	return requireAbsoluteURL("pdf_url", n.PDFURL)
}

func requireAbsoluteURL(field, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.ValidationError{Field: field, Msg: "preencha o URL"}
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return domain.ValidationError{Field: field, Msg: "URL inválido", Err: err}
	}
	return nil
}

// IsNovo reports whether the record still falls inside the badge window.
func (n Norma) IsNovo(now time.Time) bool {
	if n.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(n.CreatedAt) < NovoWindow
}

// Field returns the string value of a sortable attribute. CreatedAt is
// handled separately by callers that need real time ordering; here it is
// formatted so an empty timestamp still reads as absent.
func (n Norma) Field(f domain.SortField) string {
	switch f {
	case domain.SortNome:
		return n.Nome
	case domain.SortPais:
		return n.Pais
	case domain.SortCategoria:
		return n.Categoria
	case domain.SortAno:
		return n.Ano
	case domain.SortAutor:
		return n.Autor
	case domain.SortCreatedAt:
		if n.CreatedAt.IsZero() {
			return ""
		}
		return n.CreatedAt.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// FilterValue returns the attribute a filter compares against.
func (n Norma) FilterValue(f domain.FilterField) string {
	switch f {
	case domain.FilterPais:
		return n.Pais
	case domain.FilterCategoria:
		return n.Categoria
	case domain.FilterAno:
		return n.Ano
	default:
		return ""
	}
}
