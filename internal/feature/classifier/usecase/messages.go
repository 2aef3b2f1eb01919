package usecase

import (
	"errors"

	"mushroom_form/internal/feature/classifier/domain"
)

const (
	// FallbackPredictMessage は構造化されていない通信エラー時の予測メッセージです。
	FallbackPredictMessage = "Failed to connect to the prediction service. Please try again."
	// FallbackAnalyzeMessage は構造化されていない通信エラー時の画像解析メッセージです。
	FallbackAnalyzeMessage = "Failed to analyze image. Please try again."
)

// UserMessage はエラーをユーザー向けの文字列に変換します。
//   - 入力検証エラー: 未入力の必須項目を列挙したメッセージ
//   - サーバーの構造化エラー: messageフィールドをそのまま表示
//   - それ以外（通信エラーなど）: fallback
func UserMessage(err error, fallback string) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, domain.ErrEmptyImage):
		return "Please choose an image to upload."
	case errors.Is(err, domain.ErrNotImage):
		return "Please upload an image file."
	case errors.Is(err, domain.ErrSubmitInProgress):
		return "A prediction is already in progress."
	case errors.Is(err, domain.ErrStaleAnalysis):
		return "A newer image upload replaced this one."
	case errors.Is(err, domain.ErrStalePrediction):
		return "The form was reset before the prediction finished."
	}
	return fallback
}
