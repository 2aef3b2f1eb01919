package entity

// ImageUpload はアップロードされた画像ファイルを表します。
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageAnalysis は画像から検出された特徴量です。
// スキーマ外のキーを含むことがあり、フォームへの反映時に無視されます。
type ImageAnalysis struct {
	Features map[string]string
}
