package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mushroom_form/internal/app/di"
	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/usecase"
	"mushroom_form/internal/platform/config"
)

func main() {
	config.LoadEnv(".env")
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		features  []string
		imagePath string
	)

	root := &cobra.Command{
		Use:   "classify",
		Short: "Classify a mushroom as edible or poisonous via the prediction service",
		Example: `  classify -f odor=foul -f spore-print-color=black ...
  classify --image cap.jpg -f odor=none`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, closeFn, err := newForm(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()
			return runClassify(cmd, form, imagePath, features)
		},
	}
	root.Flags().StringArrayVarP(&features, "feature", "f", nil, "feature selection as name=value (repeatable)")
	root.Flags().StringVar(&imagePath, "image", "", "photo to analyze before submitting")

	root.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "List features and their allowed options",
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range entity.Schema() {
				req := ""
				if f.Required {
					req = " (required)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s: %s\n", f.Name, req, strings.Join(f.Options, ", "))
			}
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Check whether the prediction service is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, closeFn, err := newForm(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()
			if !form.CheckHealth(cmd.Context()) {
				return fmt.Errorf("prediction service is not reachable")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "prediction service is reachable")
			return nil
		},
	})
	return root
}

// newForm wires a form controller the same way the server does, without metrics.
func newForm(ctx context.Context) (*usecase.FormController, func() error, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	client := di.NewPredictionClient()
	analyzer, closeFn, err := di.NewImageAnalyzer(ctx, cfg, client)
	if err != nil {
		return nil, closeFn, err
	}
	return usecase.NewFormController(client, analyzer, nil), closeFn, nil
}

func runClassify(cmd *cobra.Command, form *usecase.FormController, imagePath string, features []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		img := entity.ImageUpload{
			Filename:    filepath.Base(imagePath),
			ContentType: http.DetectContentType(data),
			Data:        data,
		}
		applied, err := form.UploadImage(ctx, img)
		if err != nil {
			return fmt.Errorf("%s", usecase.UserMessage(err, usecase.FallbackAnalyzeMessage))
		}
		fmt.Fprintf(out, "pre-filled from image: %s\n", strings.Join(applied, ", "))
	}

	// 明示的な指定は画像解析の結果より優先する
	values, err := parseFeatureFlags(features)
	if err != nil {
		return err
	}
	if err := form.SetFeatures(values); err != nil {
		return err
	}

	res, err := form.Submit(ctx)
	if err != nil {
		return fmt.Errorf("%s", usecase.UserMessage(err, usecase.FallbackPredictMessage))
	}
	fmt.Fprintln(out, res.Headline())
	fmt.Fprintln(out, res.ConfidenceText())
	return nil
}

func parseFeatureFlags(flags []string) (map[string]string, error) {
	values := make(map[string]string, len(flags))
	for _, kv := range flags {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid feature %q: expected name=value", kv)
		}
		values[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return values, nil
}
