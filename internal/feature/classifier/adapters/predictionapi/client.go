package predictionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"mushroom_form/internal/feature/classifier/adapters/predictionapi/dto"
	"mushroom_form/internal/feature/classifier/domain"
	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/usecase"
)

// Client は予測サービスへの3種類のリモート呼び出しをラップします。
// 失敗時はログを出力し、元のエラーをラップせずに返します。リトライは行いません。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがPredictionServiceとImageAnalyzerを実装していることをコンパイル時に検証します。
var (
	_ usecase.PredictionService = (*Client)(nil)
	_ usecase.ImageAnalyzer     = (*Client)(nil)
)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg.normalize(), client: client}
}

// Predict は特徴量をJSONでPOSTし、予測結果を返します。
func (c *Client) Predict(ctx context.Context, features entity.FeatureSet) (*entity.PredictionResult, error) {
	body, err := json.Marshal(features)
	if err != nil {
		slog.Error("failed to encode features", "error", err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.endpoint("/predict"), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out dto.PredictResponse
	if err := c.do(req, &out, false); err != nil {
		slog.Error("prediction request failed", "error", err)
		return nil, err
	}
	if !entity.Verdict(out.Prediction).Valid() {
		slog.Error("prediction response rejected", "error", domain.ErrMalformedPrediction, "prediction", out.Prediction)
		return nil, domain.ErrMalformedPrediction
	}
	return &entity.PredictionResult{
		Prediction: entity.Verdict(out.Prediction),
		Confidence: out.Confidence,
	}, nil
}

// AnalyzeImage は画像をmultipart/form-data（フィールド名 image）でPOSTし、検出された特徴量を返します。
func (c *Client) AnalyzeImage(ctx context.Context, img entity.ImageUpload) (*entity.ImageAnalysis, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, img.Filename))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.endpoint("/analyze-image"), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out dto.AnalyzeImageResponse
	if err := c.do(req, &out, false); err != nil {
		slog.Error("image analysis request failed", "error", err, "filename", img.Filename)
		return nil, err
	}

	features := make(map[string]string, len(out.Features))
	for k, v := range out.Features {
		if s, ok := v.(string); ok {
			features[k] = s
		}
	}
	return &entity.ImageAnalysis{Features: features}, nil
}

// CheckHealth はヘルスエンドポイントにGETし、ステータスペイロードを返します。
// 成功は「到達可能」であることのみを意味します。
func (c *Client) CheckHealth(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.endpoint("/health"), nil)
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	if err := c.do(req, &out, true); err != nil {
		slog.Error("health check failed", "error", err)
		return nil, err
	}
	return out, nil
}

// do はリクエストを1回だけ実行し、2xxならボディをoutにデコードします。
// 2xx以外は *domain.APIError を返します。allowEmptyがfalseの場合、空のボディはエラーです。
func (c *Client) do(req *http.Request, out any, allowEmpty bool) error {
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return decodeAPIError(res)
	}

	err = json.NewDecoder(res.Body).Decode(out)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

// decodeAPIError extracts the server's message field, if any.
func decodeAPIError(res *http.Response) error {
	apiErr := &domain.APIError{StatusCode: res.StatusCode}
	b, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil || len(b) == 0 {
		return apiErr
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(b, &body); err != nil {
		return apiErr
	}
	if body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = body.Error
	}
	return apiErr
}
