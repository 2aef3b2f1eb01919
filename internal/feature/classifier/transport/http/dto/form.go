// Package dto defines data transfer objects for the classifier HTTP API.
package dto

// FeatureItem はスキーマの1項目を表します。
type FeatureItem struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

// SelectRequest は PUT /api/form/features/:name のリクエストボディです。
// 空文字は選択解除を意味します。
type SelectRequest struct {
	Value string `json:"value"`
}

// PredictionResponse は予測結果と表示用の文言です。
type PredictionResponse struct {
	Prediction     string  `json:"prediction"`
	Confidence     float64 `json:"confidence"`
	Headline       string  `json:"headline"`
	ConfidenceText string  `json:"confidence_text"`
}

// FormStateResponse はフォーム状態のレスポンスです。
type FormStateResponse struct {
	Features   map[string]string   `json:"features"`
	Phase      string              `json:"phase"`
	Analyzing  bool                `json:"analyzing"`
	Predicting bool                `json:"predicting"`
	Result     *PredictionResponse `json:"result,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// ImageUploadResponse は画像解析で反映された特徴量名とフォーム状態です。
type ImageUploadResponse struct {
	Applied []string          `json:"applied"`
	Form    FormStateResponse `json:"form"`
}

// ServiceHealthResponse は予測サービスへの疎通結果です。
type ServiceHealthResponse struct {
	Reachable bool `json:"reachable"`
}

// ErrorResponse はエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}
