package config

import (
	"os"
	"sync"
	"time"
)

type SessionConfig struct {
	CookieName     string
	KeyringService string
	KeyringAccount string
	// IdleTimeout is how long an unused BFF workspace is kept.
	IdleTimeout time.Duration
}

var (
	sessionConfig *SessionConfig
	sessionOnce   sync.Once
)

func LoadSessionConfig() *SessionConfig {
	sessionOnce.Do(func() {
		sessionConfig = &SessionConfig{
			CookieName:     getEnv("SESSION_COOKIE", "dp_session"),
			KeyringService: getEnv("KEYRING_SERVICE", "datapulse"),
			KeyringAccount: getEnv("KEYRING_ACCOUNT", "default"),
			IdleTimeout:    getEnvAsDuration("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		}
	})
	return sessionConfig
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
