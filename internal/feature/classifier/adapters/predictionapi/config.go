// Package predictionapi provides a client for the remote mushroom prediction service.
package predictionapi

import (
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL はPREDICTION_API_URLが未設定の場合に使用するローカルアドレスです。
	DefaultBaseURL = "http://localhost:5000"
	// DefaultTimeout はリクエスト全体のデフォルトタイムアウトです。
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the prediction service client.
type Config struct {
	BaseURL    string        // Base URL of the service (e.g., "http://localhost:5000")
	PathPrefix string        // "" for /predict, "/api" for the /api/predict variant
	Timeout    time.Duration // HTTP request timeout
}

// LoadConfig loads prediction service configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:    os.Getenv("PREDICTION_API_URL"),
		PathPrefix: os.Getenv("PREDICTION_API_PREFIX"),
		Timeout:    DefaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if v := os.Getenv("PREDICTION_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg.normalize()
}

// normalize trims trailing slashes and forces a leading slash on the prefix.
func (c Config) normalize() Config {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.PathPrefix = strings.TrimRight(c.PathPrefix, "/")
	if c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/") {
		c.PathPrefix = "/" + c.PathPrefix
	}
	return c
}

// endpoint returns the absolute URL for path under the configured prefix.
func (c Config) endpoint(path string) string {
	return c.BaseURL + c.PathPrefix + path
}
