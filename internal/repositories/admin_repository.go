package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"normadeck/internal/domain"
)

// Admin is a row of the admins table. Administrators are created out of
// band; there is no self-serve registration.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) GetByEmail(ctx context.Context, email string) (Admin, error) {
	var a Admin
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, email, password_hash, created_at
        FROM admins
        WHERE email = ?
    `, email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
	}
	if err != nil {
		return Admin{}, fmt.Errorf("obter admin: %w", err)
	}
	return a, nil
}

func (r AdminRepository) GetByID(ctx context.Context, id string) (Admin, error) {
	var a Admin
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, email, password_hash, created_at
        FROM admins
        WHERE id = ?
    `, id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
	}
	if err != nil {
		return Admin{}, fmt.Errorf("obter admin: %w", err)
	}
	return a, nil
}
