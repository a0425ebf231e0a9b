package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"

	_ "image/jpeg"

	"github.com/maskpaint/inpaint-api/internal/config"
	"github.com/maskpaint/inpaint-api/internal/dataurl"
	"github.com/maskpaint/inpaint-api/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

// OpenAIRunner sends the request to an OpenAI-compatible /images/edits endpoint.
// That API has no strength, steps, guidance or seed knobs, so those inputs are
// dropped.
type OpenAIRunner struct {
	logger zerolog.Logger
	client openai.Client
}

func NewOpenAIRunner(cfg config.OpenAIConfig, httpClient *http.Client, logger zerolog.Logger) *OpenAIRunner {
	return &OpenAIRunner{
		logger: logger,
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithHTTPClient(httpClient),
			option.WithMaxRetries(0),
		),
	}
}

func (o *OpenAIRunner) Run(ctx context.Context, model string, inputs *models.InferenceInputs) (*models.InferenceResult, error) {
	imageData, imageType, err := dataurl.Decode(inputs.Image)
	if err != nil {
		return nil, fmt.Errorf("image must be a base64 data url: %w", err)
	}
	maskData, _, err := dataurl.Decode(inputs.Mask)
	if err != nil {
		return nil, fmt.Errorf("mask must be a base64 data url: %w", err)
	}

	alphaMask, err := toAlphaMask(maskData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert mask: %w", err)
	}

	o.logger.Debug().
		Str("model", model).
		Str("size", inputs.ImageSize).
		Float64("strength", inputs.Strength).
		Int64("seed", inputs.Seed).
		Msg("openai backend ignores strength, steps, guidance and seed")

	params := openai.ImageEditParams{
		Image: openai.ImageEditParamsImageUnion{
			OfFile: openai.File(bytes.NewReader(imageData), "image"+extension(imageType), imageType),
		},
		Mask:           openai.File(bytes.NewReader(alphaMask), "mask.png", "image/png"),
		Prompt:         inputs.Prompt,
		Model:          openai.ImageModel(model),
		N:              openai.Int(1),
		Size:           openai.ImageEditParamsSize(inputs.ImageSize),
		ResponseFormat: openai.ImageEditParamsResponseFormatB64JSON,
	}

	resp, err := o.client.Images.Edit(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return nil, &APIError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
		return nil, fmt.Errorf("inference request failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		// Hand the body back unchanged so the caller can report it.
		return &models.InferenceResult{
			ContentType: "application/json",
			Body:        []byte(resp.RawJSON()),
		}, nil
	}

	out, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode b64_json: %w", err)
	}
	return &models.InferenceResult{ContentType: "image/png", Body: out}, nil
}

// toAlphaMask turns a white-on-black mask into the transparent-area mask the
// images/edits API expects: bright pixels become fully transparent.
func toAlphaMask(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			if gray.Y >= 128 {
				dst.SetNRGBA(x, y, color.NRGBA{})
			} else {
				dst.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
