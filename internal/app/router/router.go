// Package router builds the gin engine for the form server.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	classifierhandler "mushroom_form/internal/feature/classifier/transport/handler"
	"mushroom_form/internal/platform/http/handler"
)

// NewRouter wires the form page, the JSON API, liveness and metrics.
// corsOrigins containing "*" (or empty) allows every origin.
func NewRouter(corsOrigins []string, page *classifierhandler.FormPageHandler,
	api *classifierhandler.FormAPIHandler, metrics http.Handler) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(classifierhandler.FormTemplate())

	// プリフライト（未登録のOPTIONS）にも適用するためグローバルに設定
	corsCfg := cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if allowAllOrigins(corsOrigins) {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowOrigins = nil
	}
	r.Use(cors.New(corsCfg))

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(metrics))

	// フォーム画面（サーバーサイドレンダリング）
	r.GET("/", page.Show)
	r.POST("/", page.Submit)
	r.POST("/image", page.UploadImage)
	r.POST("/reset", page.Reset)

	// JSON API
	g := r.Group("/api")
	{
		g.GET("/schema", api.Schema)
		g.GET("/form", api.Form)
		g.PUT("/form/features/:name", api.Select)
		g.POST("/form/image", api.UploadImage)
		g.POST("/form/submit", api.Submit)
		g.POST("/form/reset", api.Reset)
		g.GET("/service-health", api.ServiceHealth)
	}

	return r
}

func allowAllOrigins(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
