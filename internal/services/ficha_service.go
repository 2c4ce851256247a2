package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"normadeck/internal/domain/models"
	"normadeck/internal/repositories"
	"normadeck/internal/utils"
)

// FichaService renders a printable record sheet for a norma.
type FichaService struct {
	Normas    repositories.NormaRepository
	RequestID string
	Loader    func(context.Context, string) (models.Norma, error)
}

func (s FichaService) GenerateFicha(ctx context.Context, id string) ([]byte, string, error) {
	n, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ficha", "generate", "norma_id="+id)
	return buildFichaPDF(n)
}

func (s FichaService) load(ctx context.Context, id string) (models.Norma, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	return s.Normas.GetByID(ctx, id)
}

func buildFichaPDF(n models.Norma) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ficha da Norma", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FICHA DA NORMA")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Nome          : %s", safe(n.Nome, "-")),
		fmt.Sprintf("Pais          : %s", safe(n.Pais, "-")),
		fmt.Sprintf("Categoria     : %s", safe(n.Categoria, "-")),
		fmt.Sprintf("Ano           : %s", safe(n.Ano, "-")),
		fmt.Sprintf("Autor         : %s", safe(n.Autor, "-")),
		fmt.Sprintf("Adicionada em : %s", safe(utils.FormatDate(n.CreatedAt), "-")),
		fmt.Sprintf("Imagem        : %s", safe(n.ImagemURL, "-")),
		fmt.Sprintf("PDF           : %s", safe(n.PDFURL, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Ficha gerada automaticamente a partir do catalogo de normas graficas em %s.",
		utils.FormatDateTime(time.Now())), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("FICHA_%s.pdf", safeFilenamePart(n.Nome))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "norma"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "norma"
	}
	return b.String()
}
