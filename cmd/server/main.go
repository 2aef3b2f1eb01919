package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"

	"mushroom_form/internal/app/di"
	"mushroom_form/internal/app/router"
	classifierhandler "mushroom_form/internal/feature/classifier/transport/handler"
	"mushroom_form/internal/feature/classifier/usecase"
	"mushroom_form/internal/platform/config"
	"mushroom_form/internal/platform/metrics"
)

func main() {
	// .envを読み込む
	config.LoadEnv(".env")
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 予測サービスクライアント
	client := di.NewPredictionClient()

	// 画像解析バックエンド
	analyzer, closeAnalyzer, err := di.NewImageAnalyzer(context.Background(), cfg, client)
	if err != nil {
		log.Fatalf("failed to create image analyzer: %v", err)
	}
	defer func() {
		if err := closeAnalyzer(); err != nil {
			slog.Error("failed to close image analyzer", "error", err)
		}
	}()
	slog.Info("image analyzer selected", "backend", cfg.ImageAnalyzer)

	// Usecase
	m := metrics.New()
	form := usecase.NewFormController(client, analyzer, m)

	// Handler
	pageH := classifierhandler.NewFormPageHandler(form)
	apiH := classifierhandler.NewFormAPIHandler(form)

	// ルータ生成
	r := router.NewRouter(cfg.CORSOrigins, pageH, apiH, m.Handler())

	if !form.CheckHealth(context.Background()) {
		slog.Warn("prediction service is not reachable at startup")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
