// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mushroom_form/internal/feature/classifier/adapters/gemini"
	"mushroom_form/internal/feature/classifier/adapters/predictionapi"
	"mushroom_form/internal/feature/classifier/adapters/throttle"
	"mushroom_form/internal/feature/classifier/adapters/vision"
	"mushroom_form/internal/feature/classifier/usecase"
	"mushroom_form/internal/platform/config"
	infrahttp "mushroom_form/internal/platform/http"
	"mushroom_form/internal/shared/ratelimiter"
)

// NewPredictionClient creates a fully configured prediction service client.
func NewPredictionClient() *predictionapi.Client {
	cfg := predictionapi.LoadConfig()
	slog.Info("prediction service configured",
		"base_url", cfg.BaseURL, "path_prefix", cfg.PathPrefix, "timeout", cfg.Timeout)
	return predictionapi.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
}

// NewImageAnalyzer selects the image analyzer backend named by cfg.ImageAnalyzer.
// Cloud backends are wrapped in a per-minute limiter when cfg.AnalyzerRateLimit is set.
// The returned close function releases backend resources and is never nil.
func NewImageAnalyzer(ctx context.Context, cfg config.Config, remote *predictionapi.Client) (usecase.ImageAnalyzer, func() error, error) {
	noop := func() error { return nil }

	switch cfg.ImageAnalyzer {
	case config.AnalyzerGemini:
		a, err := gemini.NewGeminiImageAnalyzer(ctx, cfg.GeminiModel)
		if err != nil {
			return nil, noop, fmt.Errorf("gemini analyzer: %w", err)
		}
		return limit(a, cfg.AnalyzerRateLimit), noop, nil
	case config.AnalyzerVision:
		a, err := vision.NewVisionImageAnalyzer(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("vision analyzer: %w", err)
		}
		return limit(a, cfg.AnalyzerRateLimit), a.Close, nil
	default:
		return remote, noop, nil
	}
}

func limit(a usecase.ImageAnalyzer, perMinute int) usecase.ImageAnalyzer {
	if perMinute <= 0 {
		return a
	}
	slog.Info("image analyzer rate limited", "per_minute", perMinute)
	return throttle.NewAnalyzer(a, ratelimiter.NewRateLimiter(perMinute, time.Minute))
}
