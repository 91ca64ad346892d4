package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

type APIConfig struct {
	BaseURL string
	// Timeout of zero means requests wait until the caller gives up.
	Timeout time.Duration
	// UploadRatePerSec paces bulk CV uploads. Zero disables pacing.
	UploadRatePerSec float64
}

var (
	apiConfig *APIConfig
	apiOnce   sync.Once
)

func LoadAPIConfig() *APIConfig {
	apiOnce.Do(func() {
		baseURL := os.Getenv("DATAPULSE_API_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8000"
			log.Printf("Warning: DATAPULSE_API_URL not set, defaulting to %s", baseURL)
		}
		apiConfig = &APIConfig{
			BaseURL:          baseURL,
			Timeout:          getEnvAsDuration("API_TIMEOUT", 0),
			UploadRatePerSec: getEnvAsFloat("UPLOAD_RATE_PER_SEC", 0),
		}
	})
	return apiConfig
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvAsFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		log.Printf("Warning: invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
