package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr          string
	GinMode          string
	JWTSecret        string
	SessionCachePath string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	cachePath := strings.TrimSpace(os.Getenv("SESSION_CACHE_PATH"))
	if cachePath == "" {
		cachePath = ".normadeck-auth.json"
	}

	return Env{
		AppAddr:          appAddr,
		GinMode:          ginMode,
		JWTSecret:        secret,
		SessionCachePath: cachePath,
	}
}
