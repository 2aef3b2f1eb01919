// Package config loads process-level settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Image analyzer backends.
const (
	AnalyzerRemote = "remote"
	AnalyzerGemini = "gemini"
	AnalyzerVision = "vision"
)

// Config holds server and wiring settings. Prediction service settings live in
// predictionapi.Config.
type Config struct {
	Port          string   // Listen port (PORT, default "8080")
	GinMode       string   // GIN_MODE, default "release"
	CORSOrigins   []string // CORS_ALLOW_ORIGINS, comma separated; "*" allows every origin
	ImageAnalyzer string   // IMAGE_ANALYZER: remote | gemini | vision
	GeminiModel   string   // GEMINI_MODEL, empty uses the adapter default
	// AnalyzerRateLimit caps cloud analyzer calls per minute (ANALYZER_RATE_LIMIT).
	// Zero disables the limit. The remote analyzer is never limited.
	AnalyzerRateLimit int
}

// LoadEnv は .env を読み込みます。存在しない場合はシステム環境変数のみを使用します。
func LoadEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Info(".env not found; using system environment variables", "path", path)
	}
}

// Load builds a Config from environment variables.
func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		GinMode:       getenv("GIN_MODE", "release"),
		ImageAnalyzer: strings.ToLower(getenv("IMAGE_ANALYZER", AnalyzerRemote)),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
	}
	if v := os.Getenv("ANALYZER_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			slog.Warn("invalid ANALYZER_RATE_LIMIT; rate limit disabled", "value", v)
		} else {
			cfg.AnalyzerRateLimit = n
		}
	}
	for _, o := range strings.Split(getenv("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	switch cfg.ImageAnalyzer {
	case AnalyzerRemote, AnalyzerGemini, AnalyzerVision:
	default:
		slog.Warn("unknown IMAGE_ANALYZER; falling back to remote", "value", cfg.ImageAnalyzer)
		cfg.ImageAnalyzer = AnalyzerRemote
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
