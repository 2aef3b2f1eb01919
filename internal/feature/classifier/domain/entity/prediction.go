package entity

import "fmt"

// Verdict は予測サービスが返す分類ラベルです。
type Verdict string

const (
	VerdictEdible    Verdict = "edible"
	VerdictPoisonous Verdict = "poisonous"
)

// Valid reports whether v is one of the two known verdicts.
func (v Verdict) Valid() bool {
	return v == VerdictEdible || v == VerdictPoisonous
}

// PredictionResult は1回の送信に対する予測結果を表します。
type PredictionResult struct {
	Prediction Verdict // "edible" または "poisonous"
	Confidence float64 // 確率として解釈される値（クランプしない）
}

// Headline は判定結果の見出し文を返します。
func (r PredictionResult) Headline() string {
	return fmt.Sprintf("This mushroom is predicted to be %s", r.Prediction)
}

// ConfidenceText は信頼度をパーセント表記で返します。
// 範囲外の値もそのまま表示します。
func (r PredictionResult) ConfidenceText() string {
	return fmt.Sprintf("Confidence: %.2f%%", r.Confidence*100)
}

// IsPoisonous reports whether the verdict is poisonous.
func (r PredictionResult) IsPoisonous() bool {
	return r.Prediction == VerdictPoisonous
}
