// Package throttle は画像解析バックエンドへの呼び出し頻度を制限します。
package throttle

import (
	"context"
	"fmt"

	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/usecase"
	"mushroom_form/internal/shared/ratelimiter"
)

// Analyzer はImageAnalyzerの呼び出しをレートリミッターで制限します。
type Analyzer struct {
	next    usecase.ImageAnalyzer
	limiter ratelimiter.Limiter
}

var _ usecase.ImageAnalyzer = (*Analyzer)(nil)

// NewAnalyzer はnextをlimiterで包んだAnalyzerを生成します。
func NewAnalyzer(next usecase.ImageAnalyzer, limiter ratelimiter.Limiter) *Analyzer {
	return &Analyzer{next: next, limiter: limiter}
}

func (a *Analyzer) AnalyzeImage(ctx context.Context, img entity.ImageUpload) (*entity.ImageAnalysis, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for image analysis quota: %w", err)
	}
	return a.next.AnalyzeImage(ctx, img)
}
