// Package dto は予測サービスのレスポンスDTOを定義します。
package dto

// PredictResponse は POST /predict のレスポンスボディです。
type PredictResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// AnalyzeImageResponse は POST /analyze-image のレスポンスボディです。
// features の値は型が保証されないため any で受けます。
type AnalyzeImageResponse struct {
	Features map[string]any `json:"features,omitempty"`
}

// ErrorResponse はエラーレスポンスのボディです。
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
