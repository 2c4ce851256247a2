package models

import "time"

// User is the minimal projection kept next to a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the credential bundle handed out on sign-in. Only AccessToken
// is persisted across restarts; the user projection is re-derived from it.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
