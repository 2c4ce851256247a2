package auth

import (
	"encoding/json"
	"os"
)

// TokenCache persists the session token across restarts. Only the token is
// cached; the user projection is always re-derived by CheckSession.
type TokenCache interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type cachedSession struct {
	AccessToken string `json:"access_token"`
}

// FileCache stores the token as a small JSON file, the durable-storage
// equivalent of the browser app persisting its session.
type FileCache struct {
	Path string
}

func (c FileCache) Load() (string, error) {
	raw, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var s cachedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s.AccessToken, nil
}

func (c FileCache) Save(token string) error {
	raw, err := json.Marshal(cachedSession{AccessToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, raw, 0o600)
}

func (c FileCache) Clear() error {
	err := os.Remove(c.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
