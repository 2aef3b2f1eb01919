// Package vision はGoogle Cloud Vision APIを使用して画像から傘の色を推定するクライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"math"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/usecase"
)

// capColorFeature はVision APIの主要色から推定する特徴量名です。
const capColorFeature = "cap-color"

// palette はcap-colorの選択肢に対応する代表RGB値です。
var palette = map[string][3]float64{
	"brown":    {139, 69, 19},
	"buff":     {240, 220, 130},
	"cinnamon": {210, 105, 30},
	"gray":     {128, 128, 128},
	"green":    {34, 139, 34},
	"pink":     {255, 192, 203},
	"purple":   {128, 0, 128},
	"red":      {200, 20, 20},
	"white":    {250, 250, 250},
	"yellow":   {250, 220, 20},
}

// VisionImageAnalyzer はGoogle Cloud Vision APIの画像プロパティ検出を使用します。
type VisionImageAnalyzer struct {
	client *gvision.ImageAnnotatorClient
}

// VisionImageAnalyzerがImageAnalyzerを実装していることをコンパイル時に検証します。
var _ usecase.ImageAnalyzer = (*VisionImageAnalyzer)(nil)

// NewVisionImageAnalyzer はADCを使用してVisionImageAnalyzerの新しいインスタンスを生成します。
func NewVisionImageAnalyzer(ctx context.Context) (*VisionImageAnalyzer, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &VisionImageAnalyzer{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (v *VisionImageAnalyzer) Close() error {
	return v.client.Close()
}

// AnalyzeImage は最もスコアの高い主要色をcap-colorの選択肢に丸めて返します。
func (v *VisionImageAnalyzer) AnalyzeImage(ctx context.Context, img entity.ImageUpload) (*entity.ImageAnalysis, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: img.Data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_IMAGE_PROPERTIES},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	features := map[string]string{}
	if len(resp.Responses) == 0 {
		return &entity.ImageAnalysis{Features: features}, nil
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	var best *visionpb.ColorInfo
	for _, c := range resp.Responses[0].GetImagePropertiesAnnotation().GetDominantColors().GetColors() {
		if best == nil || c.GetScore() > best.GetScore() {
			best = c
		}
	}
	if best != nil {
		col := best.GetColor()
		features[capColorFeature] = NearestColor(float64(col.GetRed()), float64(col.GetGreen()), float64(col.GetBlue()))
	}
	return &entity.ImageAnalysis{Features: features}, nil
}

// NearestColor はRGB空間のユークリッド距離で最も近いcap-colorの選択肢を返します。
func NearestColor(r, g, b float64) string {
	f, _ := entity.LookupFeature(capColorFeature)
	best, bestDist := "", math.MaxFloat64
	// 選択肢の順序で走査し、同距離の場合は先の選択肢を優先する
	for _, name := range f.Options {
		p, ok := palette[name]
		if !ok {
			continue
		}
		d := math.Pow(r-p[0], 2) + math.Pow(g-p[1], 2) + math.Pow(b-p[2], 2)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
