package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"normadeck/internal/domain"
	"normadeck/internal/domain/models"
	"normadeck/internal/repositories"
)

// ErrInvalidCredentials is the expected, recoverable sign-in failure. It is
// returned as a value and surfaced inline, never treated as a server fault.
var ErrInvalidCredentials = errors.New("email ou password incorretos")

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Provider verifies administrator credentials and mints/validates session
// tokens.
type Provider struct {
	Admins   repositories.AdminRepository
	Secret   []byte
	Issuer   string
	TokenTTL time.Duration
}

func (p Provider) ttl() time.Duration {
	if p.TokenTTL > 0 {
		return p.TokenTTL
	}
	return 24 * time.Hour
}

func (p Provider) issuer() string {
	if p.Issuer != "" {
		return p.Issuer
	}
	return "normadeck"
}

// SignInWithPassword checks the credentials against the admins table and
// returns a fresh session. Wrong email and wrong password are deliberately
// indistinguishable.
func (p Provider) SignInWithPassword(ctx context.Context, email, password string) (models.User, models.Session, error) {
	admin, err := p.Admins.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, models.Session{}, ErrInvalidCredentials
		}
		return models.User{}, models.Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return models.User{}, models.Session{}, ErrInvalidCredentials
	}

	now := time.Now()
	exp := now.Add(p.ttl())
	claims := Claims{
		UserID: admin.ID,
		Email:  admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer(),
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
	if err != nil {
		return models.User{}, models.Session{}, fmt.Errorf("assinar token: %w", err)
	}

	user := models.User{ID: admin.ID, Email: admin.Email}
	return user, models.Session{AccessToken: token, ExpiresAt: exp}, nil
}

// SessionFromToken re-derives the user projection from a restored token.
// The cached token is advisory only: the admin row must still exist, so a
// session invalidated since it was cached resolves to an error and the
// caller falls back to anonymous.
func (p Provider) SessionFromToken(ctx context.Context, token string) (models.User, models.Session, error) {
	claims, err := p.parse(token)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	admin, err := p.Admins.GetByID(ctx, claims.UserID)
	if err != nil {
		return models.User{}, models.Session{}, err
	}

	user := models.User{ID: admin.ID, Email: admin.Email}
	sess := models.Session{AccessToken: token}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return user, sess, nil
}

func (p Provider) parse(token string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("validar token: %w", err)
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
