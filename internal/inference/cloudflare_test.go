package inference

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/maskpaint/inpaint-api/internal/config"
	"github.com/maskpaint/inpaint-api/internal/models"
)

const testModel = "@cf/runwayml/stable-diffusion-v1-5-inpainting"

func testInputs() *models.InferenceInputs {
	return &models.InferenceInputs{
		Prompt:    "a cat",
		Image:     "data:image/png;base64,AAA",
		Mask:      "data:image/png;base64,BBB",
		Strength:  0.85,
		NumSteps:  25,
		Guidance:  7.5,
		Seed:      42,
		ImageSize: "768x768",
	}
}

func newCloudflare(t *testing.T, h http.HandlerFunc) *CloudflareRunner {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewCloudflareRunner(config.CloudflareConfig{
		AccountID: "acc-1",
		APIToken:  "token-1",
		BaseURL:   srv.URL + "/client/v4/",
	}, srv.Client())
}

func TestCloudflareRunBinary(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	var gotPath, gotAuth string
	var gotBody map[string]any

	runner := newCloudflare(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})

	res, err := runner.Run(context.Background(), testModel, testInputs())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if gotPath != "/client/v4/accounts/acc-1/ai/run/"+testModel {
		t.Fatalf("path=%s", gotPath)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("auth=%s", gotAuth)
	}
	if gotBody["prompt"] != "a cat" || gotBody["num_steps"] != float64(25) || gotBody["guidance"] != 7.5 ||
		gotBody["seed"] != float64(42) || gotBody["image_size"] != "768x768" || gotBody["strength"] != 0.85 {
		t.Fatalf("unexpected upstream body: %v", gotBody)
	}
	if res.ContentType != "image/png" || string(res.Body) != string(png) {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCloudflareRunJSON(t *testing.T) {
	runner := newCloudflare(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"image":"data:image/png;base64,AAA"}`))
	})

	res, err := runner.Run(context.Background(), testModel, testInputs())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(res.ContentType, "json") || string(res.Body) != `{"image":"data:image/png;base64,AAA"}` {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCloudflareRunAPIError(t *testing.T) {
	runner := newCloudflare(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"errors":[{"code":5006,"message":"Error: required properties at '/' are 'prompt'"}],"result":null}`))
	})

	_, err := runner.Run(context.Background(), testModel, testInputs())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Error() != "Error: required properties at '/' are 'prompt'" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestCloudflareRunPlainTextError(t *testing.T) {
	runner := newCloudflare(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusServiceUnavailable)
	})

	_, err := runner.Run(context.Background(), testModel, testInputs())
	if err == nil || err.Error() != "upstream exploded" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCloudflareRunEmptyErrorBody(t *testing.T) {
	runner := newCloudflare(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := runner.Run(context.Background(), testModel, testInputs())
	if err == nil || err.Error() != "inference API returned status 500" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCloudflareRunCanceled(t *testing.T) {
	runner := newCloudflare(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runner.Run(ctx, testModel, testInputs()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	cfg := &config.Config{Provider: config.ProviderCloudflare}
	r, err := New(cfg, testLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := r.(*CloudflareRunner); !ok {
		t.Fatalf("expected *CloudflareRunner, got %T", r)
	}

	cfg.Provider = config.ProviderOpenAI
	cfg.OpenAI = config.OpenAIConfig{APIKey: "k", BaseURL: "http://localhost/v1"}
	r, err = New(cfg, testLogger())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := r.(*OpenAIRunner); !ok {
		t.Fatalf("expected *OpenAIRunner, got %T", r)
	}

	cfg.Provider = "replicate"
	if _, err := New(cfg, testLogger()); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
