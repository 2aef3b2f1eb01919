// Package handler はclassifierフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mushroom_form/internal/feature/classifier/domain"
	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/transport/http/dto"
	"mushroom_form/internal/feature/classifier/usecase"
)

// FormUsecase はフォーム操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type FormUsecase interface {
	Select(name, value string) error
	SetFeatures(values map[string]string) error
	Submit(ctx context.Context) (*entity.PredictionResult, error)
	UploadImage(ctx context.Context, img entity.ImageUpload) ([]string, error)
	CheckHealth(ctx context.Context) bool
	Reset()
	Snapshot() usecase.FormState
}

// FormAPIHandler はフォームのJSON APIリクエストを処理します。
type FormAPIHandler struct {
	uc FormUsecase
}

// NewFormAPIHandler はFormAPIHandlerの新しいインスタンスを生成します。
func NewFormAPIHandler(uc FormUsecase) *FormAPIHandler {
	return &FormAPIHandler{uc: uc}
}

// Schema は特徴量スキーマを表示順で返します。
//
// エンドポイント: GET /api/schema
func (h *FormAPIHandler) Schema(c *gin.Context) {
	schema := entity.Schema()
	out := make([]dto.FeatureItem, 0, len(schema))
	for _, f := range schema {
		out = append(out, dto.FeatureItem{
			Name:     f.Name,
			Label:    f.Label(),
			Required: f.Required,
			Options:  f.Options,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Form は現在のフォーム状態を返します。
//
// エンドポイント: GET /api/form
func (h *FormAPIHandler) Form(c *gin.Context) {
	c.JSON(http.StatusOK, toFormStateResponse(h.uc.Snapshot()))
}

// Select は1つの特徴量を設定します。
//
// エンドポイント: PUT /api/form/features/:name
func (h *FormAPIHandler) Select(c *gin.Context) {
	var req dto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("select request validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	name := c.Param("name")
	if err := h.uc.Select(name, req.Value); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrUnknownFeature) {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFormStateResponse(h.uc.Snapshot()))
}

// Submit は入力を検証し、予測サービスに送信します。
//
// エンドポイント: POST /api/form/submit
func (h *FormAPIHandler) Submit(c *gin.Context) {
	_, err := h.uc.Submit(c.Request.Context())
	if err != nil {
		status := submitStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("prediction failed", "error", err)
		}
		c.JSON(status, dto.ErrorResponse{Error: usecase.UserMessage(err, usecase.FallbackPredictMessage)})
		return
	}
	c.JSON(http.StatusOK, toFormStateResponse(h.uc.Snapshot()))
}

// UploadImage は画像をアップロードして特徴量を事前入力します。
//
// エンドポイント: POST /api/form/image
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル）
func (h *FormAPIHandler) UploadImage(c *gin.Context) {
	img, err := readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "an image file is required"})
		return
	}

	applied, err := h.uc.UploadImage(c.Request.Context(), img)
	if err != nil {
		status := uploadStatus(err)
		if status >= http.StatusInternalServerError {
			slog.Error("image analysis failed", "error", err, "filename", img.Filename)
		}
		c.JSON(status, dto.ErrorResponse{Error: usecase.UserMessage(err, usecase.FallbackAnalyzeMessage)})
		return
	}
	if applied == nil {
		applied = []string{}
	}
	c.JSON(http.StatusOK, dto.ImageUploadResponse{
		Applied: applied,
		Form:    toFormStateResponse(h.uc.Snapshot()),
	})
}

// Reset はフォームを初期状態に戻します。
//
// エンドポイント: POST /api/form/reset
func (h *FormAPIHandler) Reset(c *gin.Context) {
	h.uc.Reset()
	c.JSON(http.StatusOK, toFormStateResponse(h.uc.Snapshot()))
}

// ServiceHealth は予測サービスへの疎通を真偽値で返します。
//
// エンドポイント: GET /api/service-health
func (h *FormAPIHandler) ServiceHealth(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.ServiceHealthResponse{Reachable: h.uc.CheckHealth(c.Request.Context())})
}

func submitStatus(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSubmitInProgress), errors.Is(err, domain.ErrStalePrediction):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyImage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrStaleAnalysis):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// readImage はmultipartのimageフィールドを読み込みます。
func readImage(c *gin.Context) (entity.ImageUpload, error) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("failed to get image file", "error", err, "remote_addr", c.ClientIP())
		return entity.ImageUpload{}, err
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open image file", "error", err)
		return entity.ImageUpload{}, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close image file", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read image data", "error", err)
		return entity.ImageUpload{}, err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return entity.ImageUpload{Filename: file.Filename, ContentType: contentType, Data: data}, nil
}

func toFormStateResponse(st usecase.FormState) dto.FormStateResponse {
	out := dto.FormStateResponse{
		Features:   st.Features,
		Phase:      string(st.Phase),
		Analyzing:  st.Analyzing,
		Predicting: st.Predicting,
		Error:      st.Error,
	}
	if st.Result != nil {
		out.Result = &dto.PredictionResponse{
			Prediction:     string(st.Result.Prediction),
			Confidence:     st.Result.Confidence,
			Headline:       st.Result.Headline(),
			ConfidenceText: st.Result.ConfidenceText(),
		}
	}
	return out
}
