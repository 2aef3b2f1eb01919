package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/usecase"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// FormTemplate はフォーム画面のテンプレートを返します。
func FormTemplate() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
}

// fieldView は1つのselect要素の表示データです。
type fieldView struct {
	Name     string
	Label    string
	Required bool
	Options  []string
	Selected string
}

type pageView struct {
	Fields []fieldView
	State  usecase.FormState
}

// FormPageHandler はサーバーサイドレンダリングのフォーム画面を処理します。
// POST後は303で / にリダイレクトします（Post/Redirect/Get）。
type FormPageHandler struct {
	uc FormUsecase
}

// NewFormPageHandler はFormPageHandlerの新しいインスタンスを生成します。
func NewFormPageHandler(uc FormUsecase) *FormPageHandler {
	return &FormPageHandler{uc: uc}
}

// Show はフォーム画面を描画します。
//
// エンドポイント: GET /
func (h *FormPageHandler) Show(c *gin.Context) {
	st := h.uc.Snapshot()
	schema := entity.Schema()
	fields := make([]fieldView, 0, len(schema))
	for _, f := range schema {
		fields = append(fields, fieldView{
			Name:     f.Name,
			Label:    f.Label(),
			Required: f.Required,
			Options:  f.Options,
			Selected: st.Features[f.Name],
		})
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "form.tmpl", pageView{Fields: fields, State: st})
}

// Submit はフォームの値を反映して予測を実行します。
// 結果とエラーはフォーム状態に保持され、リダイレクト先で表示されます。
//
// エンドポイント: POST /
func (h *FormPageHandler) Submit(c *gin.Context) {
	values := make(map[string]string)
	for _, f := range entity.Schema() {
		values[f.Name] = c.PostForm(f.Name)
	}
	if err := h.uc.SetFeatures(values); err != nil {
		slog.Warn("form values rejected", "error", err, "remote_addr", c.ClientIP())
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.uc.Submit(c.Request.Context()); err != nil {
		slog.Info("form submission did not produce a result", "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// UploadImage は画像を解析してフォームを事前入力します。
//
// エンドポイント: POST /image
func (h *FormPageHandler) UploadImage(c *gin.Context) {
	img, err := readImage(c)
	if err != nil {
		// 空の画像として渡し、ユーザー向けエラーをフォーム状態に設定させる
		img = entity.ImageUpload{}
	}
	if _, err := h.uc.UploadImage(c.Request.Context(), img); err != nil {
		slog.Info("image upload did not pre-fill the form", "error", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Reset はフォームを初期状態に戻します。
//
// エンドポイント: POST /reset
func (h *FormPageHandler) Reset(c *gin.Context) {
	h.uc.Reset()
	c.Redirect(http.StatusSeeOther, "/")
}
