package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"normadeck/internal/domain"
	"normadeck/internal/domain/models"
)

// NormaRepository wraps DB access for the normas table. All methods return
// errors as values; callers are expected to check them after every call.
type NormaRepository struct {
	DB *sql.DB
}

const normaColumns = `id, nome, pais, COALESCE(categoria,''), COALESCE(ano,''), imagem_url, pdf_url, COALESCE(autor,''), created_at`

func scanNorma(row interface{ Scan(...any) error }, now time.Time) (models.Norma, error) {
	var n models.Norma
	err := row.Scan(&n.ID, &n.Nome, &n.Pais, &n.Categoria, &n.Ano, &n.ImagemURL, &n.PDFURL, &n.Autor, &n.CreatedAt)
	if err != nil {
		return models.Norma{}, err
	}
	n.Novo = n.IsNovo(now)
	return n, nil
}

// List loads the full unfiltered record set. Search/filter/sort are applied
// in memory by the catalog pipeline, not pushed into SQL.
func (r NormaRepository) List(ctx context.Context) ([]models.Norma, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+normaColumns+` FROM normas`)
	if err != nil {
		return nil, fmt.Errorf("listar normas: %w", err)
	}
	defer rows.Close()
	return collectNormas(rows)
}

// ListRecent returns the newest records first, capped at limit.
func (r NormaRepository) ListRecent(ctx context.Context, limit int) ([]models.Norma, error) {
	if limit < 1 {
		limit = 4
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+normaColumns+` FROM normas ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listar normas recentes: %w", err)
	}
	defer rows.Close()
	return collectNormas(rows)
}

func collectNormas(rows *sql.Rows) ([]models.Norma, error) {
	now := time.Now().UTC()
	out := []models.Norma{}
	for rows.Next() {
		n, err := scanNorma(rows, now)
		if err != nil {
			return nil, fmt.Errorf("ler norma: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("percorrer normas: %w", err)
	}
	return out, nil
}

func (r NormaRepository) GetByID(ctx context.Context, id string) (models.Norma, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+normaColumns+` FROM normas WHERE id = ?`, id)
	n, err := scanNorma(row, time.Now().UTC())
	if err == sql.ErrNoRows {
		return models.Norma{}, domain.NotFoundError{Resource: "norma", Err: err}
	}
	if err != nil {
		return models.Norma{}, fmt.Errorf("obter norma: %w", err)
	}
	return n, nil
}

// PDFURL resolves just the stored PDF location for a record.
func (r NormaRepository) PDFURL(ctx context.Context, id string) (string, error) {
	var u string
	err := r.DB.QueryRowContext(ctx, `SELECT COALESCE(pdf_url,'') FROM normas WHERE id = ?`, id).Scan(&u)
	if err == sql.ErrNoRows {
		return "", domain.NotFoundError{Resource: "norma", Err: err}
	}
	if err != nil {
		return "", fmt.Errorf("obter pdf_url: %w", err)
	}
	return u, nil
}

// Insert persists a new record. ID and created_at are assigned here and are
// never taken from the input.
func (r NormaRepository) Insert(ctx context.Context, n models.Norma) (models.Norma, error) {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()

	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO normas (id, nome, pais, categoria, ano, imagem_url, pdf_url, autor, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, n.ID, n.Nome, n.Pais, nullIfEmpty(n.Categoria), nullIfEmpty(n.Ano),
		n.ImagemURL, n.PDFURL, nullIfEmpty(n.Autor), n.CreatedAt)
	if err != nil {
		return models.Norma{}, fmt.Errorf("inserir norma: %w", err)
	}

	n.Novo = true
	return n, nil
}

// Update rewrites the mutable columns of an existing record. ID and
// created_at are left untouched.
func (r NormaRepository) Update(ctx context.Context, id string, n models.Norma) (models.Norma, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE normas
        SET nome = ?, pais = ?, categoria = ?, ano = ?, imagem_url = ?, pdf_url = ?, autor = ?
        WHERE id = ?
    `, n.Nome, n.Pais, nullIfEmpty(n.Categoria), nullIfEmpty(n.Ano),
		n.ImagemURL, n.PDFURL, nullIfEmpty(n.Autor), id)
	if err != nil {
		return models.Norma{}, fmt.Errorf("atualizar norma: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		// MySQL also reports 0 for no-op updates, so confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return models.Norma{}, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r NormaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM normas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("apagar norma: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFoundError{Resource: "norma"}
	}
	return nil
}

// nullIfEmpty stores optional strings as NULL instead of empty text.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
