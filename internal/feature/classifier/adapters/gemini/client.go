// Package gemini はGoogle Gemini APIを使用して画像から特徴量を抽出するクライアントを提供します。
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiImageAnalyzer はGemini APIで画像からキノコの特徴量を抽出します。
type GeminiImageAnalyzer struct {
	client *genai.Client
	model  string
}

// GeminiImageAnalyzerがImageAnalyzerを実装していることをコンパイル時に検証します。
var _ usecase.ImageAnalyzer = (*GeminiImageAnalyzer)(nil)

// NewGeminiImageAnalyzer はADCを使用してGeminiImageAnalyzerの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION
// または GOOGLE_API_KEY が必要です。modelが空の場合はDefaultModelを使用します。
func NewGeminiImageAnalyzer(ctx context.Context, model string) (*GeminiImageAnalyzer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiImageAnalyzer{client: client, model: model}, nil
}

// AnalyzeImage は画像とスキーマをプロンプトとして送り、JSONで返された特徴量を解析します。
func (g *GeminiImageAnalyzer) AnalyzeImage(ctx context.Context, img entity.ImageUpload) (*entity.ImageAnalysis, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(BuildPrompt(entity.Schema())),
			genai.NewPartFromBytes(img.Data, img.ContentType),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini API request failed: %w", err)
	}

	features, err := ParseFeatures(resp.Text())
	if err != nil {
		return nil, err
	}
	return &entity.ImageAnalysis{Features: features}, nil
}

// BuildPrompt は特徴量ごとの選択肢を列挙したプロンプトを生成します。
func BuildPrompt(schema []entity.Feature) string {
	var b strings.Builder
	b.WriteString("You are looking at a photo of a mushroom. ")
	b.WriteString("Return a single JSON object whose keys are feature names and whose values are one of the allowed options. ")
	b.WriteString("Omit any feature you cannot determine from the photo.\n")
	for _, f := range schema {
		fmt.Fprintf(&b, "- %s: %s\n", f.Name, strings.Join(f.Options, ", "))
	}
	return b.String()
}

// ParseFeatures はモデル出力のJSONを解析し、選択肢に含まれる値だけを返します。
// モデルはスキーマ外のキーや値を返すことがあるためここで除外します。
func ParseFeatures(text string) (map[string]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var raw map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if f, ok := entity.LookupFeature(k); ok && f.Allows(s) {
			out[k] = s
		}
	}
	return out, nil
}
