// Package usecase はclassifierフィーチャーのフォーム制御ロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"mushroom_form/internal/feature/classifier/domain"
	"mushroom_form/internal/feature/classifier/domain/entity"
)

// PredictionService は予測サービスを抽象化するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PredictionService interface {
	// Predict は特徴量一式を送信し、判定結果を返します。
	Predict(ctx context.Context, features entity.FeatureSet) (*entity.PredictionResult, error)
	// CheckHealth はサービスの疎通を確認します。
	CheckHealth(ctx context.Context) (map[string]any, error)
}

// ImageAnalyzer は画像から特徴量を抽出するインターフェースです。
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, img entity.ImageUpload) (*entity.ImageAnalysis, error)
}

// Phase はフォームの表示状態です。
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSettled Phase = "settled"
)

// FormState はレンダリング用のフォーム状態のスナップショットです。
type FormState struct {
	Features   entity.FeatureSet
	Phase      Phase
	Analyzing  bool
	Predicting bool
	Result     *entity.PredictionResult
	Error      string
}

// FormController は1つのフォームセッションを保持します。
// ロックはネットワーク呼び出しの間は保持しません。
type FormController struct {
	predictor PredictionService
	analyzer  ImageAnalyzer
	recorder  Recorder

	mu         sync.Mutex
	features   entity.FeatureSet
	result     *entity.PredictionResult
	errMsg     string
	predicting bool
	analyzing  int    // in-flight image analyses
	uploadGen  uint64 // only the latest upload may mutate features
	submitGen  uint64 // bumped by Reset; a prediction started before it is dropped
}

// NewFormController はFormControllerの新しいインスタンスを生成します。
// recorderがnilの場合はメトリクスを記録しません。
func NewFormController(p PredictionService, a ImageAnalyzer, r Recorder) *FormController {
	if r == nil {
		r = nopRecorder{}
	}
	return &FormController{
		predictor: p,
		analyzer:  a,
		recorder:  r,
		features:  entity.NewFeatureSet(),
	}
}

// Select は1つの特徴量の値を設定します。空文字は選択解除です。
// 読み込み中でもブロックしません。
func (fc *FormController) Select(name, value string) error {
	if err := validateSelection(name, value); err != nil {
		return err
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.features[name] = value
	return nil
}

// SetFeatures は複数の特徴量をまとめて設定します。
// 1つでも不正な値があれば何も変更しません。
func (fc *FormController) SetFeatures(values map[string]string) error {
	for name, value := range values {
		if err := validateSelection(name, value); err != nil {
			return err
		}
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for name, value := range values {
		fc.features[name] = value
	}
	return nil
}

func validateSelection(name, value string) error {
	f, ok := entity.LookupFeature(name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFeature, name)
	}
	if value != "" && !f.Allows(value) {
		return fmt.Errorf("%w %s: %q", domain.ErrInvalidOption, name, value)
	}
	return nil
}

// Submit は必須項目を検証し、予測サービスを1回だけ呼び出します。
// 前回の結果とエラーは送信開始時に破棄されます。
// 実行中にResetされた場合、結果は反映せずErrStalePredictionを返します。
func (fc *FormController) Submit(ctx context.Context) (*entity.PredictionResult, error) {
	fc.mu.Lock()
	if fc.predicting {
		fc.mu.Unlock()
		return nil, domain.ErrSubmitInProgress
	}
	fc.result = nil
	fc.errMsg = ""

	if missing := fc.features.MissingRequired(); len(missing) > 0 {
		verr := &domain.ValidationError{Missing: missing}
		fc.errMsg = verr.Error()
		fc.mu.Unlock()
		fc.recorder.SubmissionOutcome(OutcomeValidationError)
		return nil, verr
	}

	snapshot := fc.features.Clone()
	fc.predicting = true
	gen := fc.submitGen
	fc.mu.Unlock()

	res, err := fc.predictor.Predict(ctx, snapshot)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.predicting = false
	if gen != fc.submitGen {
		fc.recorder.SubmissionOutcome(OutcomeSuperseded)
		return nil, domain.ErrStalePrediction
	}
	if err != nil {
		fc.errMsg = UserMessage(err, FallbackPredictMessage)
		fc.recorder.SubmissionOutcome(classify(err))
		return nil, err
	}
	fc.result = res
	fc.recorder.SubmissionOutcome(OutcomeSuccess)
	fc.recorder.Prediction(string(res.Prediction))
	slog.Info("prediction received", "prediction", res.Prediction, "confidence", res.Confidence)
	return res, nil
}

// UploadImage は画像解析を実行し、検出された特徴量でフォームを上書きします。
// スキーマ外のキーは無視します。大文字小文字や前後の空白だけが異なる値は
// 選択肢に正規化し、それ以外の値はそのまま反映します。
// 反映された特徴量名をスキーマ順で返します。
func (fc *FormController) UploadImage(ctx context.Context, img entity.ImageUpload) ([]string, error) {
	if err := ValidateImage(img); err != nil {
		fc.mu.Lock()
		fc.errMsg = UserMessage(err, FallbackAnalyzeMessage)
		fc.mu.Unlock()
		return nil, err
	}

	fc.mu.Lock()
	fc.uploadGen++
	gen := fc.uploadGen
	fc.analyzing++
	fc.errMsg = ""
	fc.mu.Unlock()

	analysis, err := fc.analyzer.AnalyzeImage(ctx, img)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.analyzing--
	if gen != fc.uploadGen {
		fc.recorder.ImageAnalysisOutcome(OutcomeSuperseded)
		return nil, domain.ErrStaleAnalysis
	}
	if err != nil {
		fc.errMsg = UserMessage(err, FallbackAnalyzeMessage)
		fc.recorder.ImageAnalysisOutcome(classify(err))
		return nil, err
	}

	var applied []string
	for _, f := range entity.Schema() {
		v, ok := analysis.Features[f.Name]
		if !ok {
			continue
		}
		if opt, ok := f.Normalize(v); ok {
			v = opt
		}
		fc.features[f.Name] = v
		applied = append(applied, f.Name)
	}
	fc.recorder.ImageAnalysisOutcome(OutcomeSuccess)
	return applied, nil
}

// ValidateImage はアップロードが空でない画像であることを確認します。
func ValidateImage(img entity.ImageUpload) error {
	if len(img.Data) == 0 {
		return domain.ErrEmptyImage
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return domain.ErrNotImage
	}
	return nil
}

// CheckHealth は予測サービスに到達できるかを返します。フォーム状態は変更しません。
func (fc *FormController) CheckHealth(ctx context.Context) bool {
	_, err := fc.predictor.CheckHealth(ctx)
	return err == nil
}

// Reset はフォームを初期状態に戻します（ページ再読み込みに相当）。
// 実行中の画像解析と予測の結果は破棄されます。
func (fc *FormController) Reset() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.features = entity.NewFeatureSet()
	fc.result = nil
	fc.errMsg = ""
	fc.uploadGen++
	fc.submitGen++
}

// Snapshot は現在のフォーム状態のコピーを返します。
func (fc *FormController) Snapshot() FormState {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	st := FormState{
		Features:   fc.features.Clone(),
		Analyzing:  fc.analyzing > 0,
		Predicting: fc.predicting,
		Error:      fc.errMsg,
	}
	if fc.result != nil {
		r := *fc.result
		st.Result = &r
	}
	switch {
	case st.Analyzing || st.Predicting:
		st.Phase = PhaseLoading
	case st.Result != nil || st.Error != "":
		st.Phase = PhaseSettled
	default:
		st.Phase = PhaseIdle
	}
	return st
}
