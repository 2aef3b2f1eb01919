package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mushroom_form/internal/feature/classifier/adapters/predictionapi"
	"mushroom_form/internal/feature/classifier/domain/entity"
	"mushroom_form/internal/feature/classifier/usecase"
)

func TestParseFeatureFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    []string
		expected map[string]string
		wantErr  bool
	}{
		{"empty", nil, map[string]string{}, false},
		{"trimmed pairs", []string{"odor = foul", "habitat=woods"}, map[string]string{"odor": "foul", "habitat": "woods"}, false},
		{"empty value clears", []string{"odor="}, map[string]string{"odor": ""}, false},
		{"missing separator", []string{"odor"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFeatureFlags(tt.flags)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func newStubForm(t *testing.T, h http.HandlerFunc) *usecase.FormController {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	client := predictionapi.NewClient(predictionapi.Config{BaseURL: server.URL}, server.Client())
	return usecase.NewFormController(client, client, nil)
}

func requiredFlags() []string {
	var flags []string
	for _, f := range entity.Schema() {
		if f.Required {
			flags = append(flags, f.Name+"="+f.Options[0])
		}
	}
	return flags
}

func TestRunClassify(t *testing.T) {
	t.Parallel()

	form := newStubForm(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction":"edible","confidence":0.755}`))
	})
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := runClassify(cmd, form, "", requiredFlags())

	require.NoError(t, err)
	assert.Equal(t, "This mushroom is predicted to be edible\nConfidence: 75.50%\n", out.String())
}

func TestRunClassify_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		flags       []string
		expectedErr string
	}{
		{
			name:        "missing required features",
			handler:     func(w http.ResponseWriter, r *http.Request) {},
			flags:       []string{"odor=foul"},
			expectedErr: "Please fill in all required fields: Cap Shape",
		},
		{
			name:        "unknown feature",
			handler:     func(w http.ResponseWriter, r *http.Request) {},
			flags:       []string{"stem-height=tall"},
			expectedErr: "unknown feature",
		},
		{
			name: "server message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"Model rejected input"}`))
			},
			flags:       requiredFlags(),
			expectedErr: "Model rejected input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			form := newStubForm(t, tt.handler)
			cmd := &cobra.Command{}
			cmd.SetOut(&bytes.Buffer{})

			err := runClassify(cmd, form, "", tt.flags)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestRunClassify_ImageFlagsOverride(t *testing.T) {
	t.Parallel()

	sentOdor := make(chan string, 1)
	form := newStubForm(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/analyze-image":
			_, _ = w.Write([]byte(`{"features":{"odor":"almond","habitat":"woods"}}`))
		case "/predict":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			sentOdor <- body["odor"]
			_, _ = w.Write([]byte(`{"prediction":"poisonous","confidence":1}`))
		}
	})
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "cap.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	err := runClassify(cmd, form, imagePath, append(requiredFlags(), "odor=foul"))

	require.NoError(t, err)
	assert.Equal(t, "foul", <-sentOdor)
	assert.Contains(t, out.String(), "pre-filled from image: odor, habitat\n")
	assert.Contains(t, out.String(), "Confidence: 100.00%")
}

func TestRootCmd_Schema(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"schema"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "odor (required): almond, anise, creosote")
	assert.Contains(t, out.String(), "veil-type: partial, universal\n")
}
