package config

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAPIConfig_Defaults(t *testing.T) {
	t.Setenv("DATAPULSE_API_URL", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("UPLOAD_RATE_PER_SEC", "")
	apiConfig, apiOnce = nil, sync.Once{}

	cfg := LoadAPIConfig()
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Zero(t, cfg.Timeout)
	assert.Zero(t, cfg.UploadRatePerSec)
}

func TestLoadAPIConfig_FromEnv(t *testing.T) {
	t.Setenv("DATAPULSE_API_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "15s")
	t.Setenv("UPLOAD_RATE_PER_SEC", "2.5")
	apiConfig, apiOnce = nil, sync.Once{}

	cfg := LoadAPIConfig()
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 2.5, cfg.UploadRatePerSec)
}

func TestLoadAPIConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("UPLOAD_RATE_PER_SEC", "-1")
	apiConfig, apiOnce = nil, sync.Once{}

	cfg := LoadAPIConfig()
	assert.Zero(t, cfg.Timeout)
	assert.Zero(t, cfg.UploadRatePerSec)
}

func TestLoadSessionConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_COOKIE", "")
	t.Setenv("KEYRING_SERVICE", "")
	t.Setenv("KEYRING_ACCOUNT", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "")
	sessionConfig, sessionOnce = nil, sync.Once{}

	cfg := LoadSessionConfig()
	assert.Equal(t, "dp_session", cfg.CookieName)
	assert.Equal(t, "datapulse", cfg.KeyringService)
	assert.Equal(t, "default", cfg.KeyringAccount)
	assert.Equal(t, 2*time.Hour, cfg.IdleTimeout)
}

func TestLoadSessionConfig_IdleTimeout(t *testing.T) {
	t.Setenv("SESSION_IDLE_TIMEOUT", "15m")
	sessionConfig, sessionOnce = nil, sync.Once{}

	assert.Equal(t, 15*time.Minute, LoadSessionConfig().IdleTimeout)
}

func TestDBConfig_Enabled(t *testing.T) {
	assert.False(t, (&DBConfig{}).Enabled())
	assert.True(t, (&DBConfig{Host: "localhost"}).Enabled())
}
