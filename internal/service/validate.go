package service

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/maskpaint/inpaint-api/internal/models"
)

// SeedFunc draws the per-request seed.
type SeedFunc func() int64

func RandomSeed() int64 {
	return rand.Int64N(seedUpperBound)
}

// ParseInpaintRequest validates a raw request and applies defaults. Checks run
// in a fixed order and the first failure wins.
func ParseInpaintRequest(contentType string, body io.Reader, defaultSize string) (*models.InpaintRequest, error) {
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		return nil, ErrUnsupportedMediaType
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}
	raw = bytes.TrimSpace(raw)
	if !sonic.Valid(raw) {
		return nil, ErrInvalidJSON
	}

	var payload any
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, err)
	}
	if !truthy(payload) {
		return nil, ErrInvalidJSON
	}

	// Non-object bodies behave like an object with no fields.
	fields, _ := payload.(map[string]any)

	req := &models.InpaintRequest{
		Prompt:   truncateRunes(coerceString(fields["prompt"]), maxPromptRunes),
		Image:    coerceString(fields["image"]),
		Mask:     coerceString(fields["mask"]),
		Size:     resolveSize(coerceString(fields["size"]), defaultSize),
		Strength: coerceStrength(fields["strength"]),
	}

	if req.Prompt == "" || req.Image == "" || req.Mask == "" {
		return nil, ErrMissingFields
	}
	return req, nil
}

// BuildInferenceInputs merges a validated request with the fixed sampling
// parameters and a seed from draw. Nothing in the request influences the seed.
func BuildInferenceInputs(req *models.InpaintRequest, draw SeedFunc) *models.InferenceInputs {
	return &models.InferenceInputs{
		Prompt:    req.Prompt,
		Image:     req.Image,
		Mask:      req.Mask,
		Strength:  req.Strength,
		NumSteps:  defaultNumSteps,
		Guidance:  defaultGuidance,
		Seed:      draw(),
		ImageSize: req.Size,
	}
}

func resolveSize(requested, configured string) string {
	if requested != "" {
		return requested
	}
	if configured != "" {
		return configured
	}
	return fallbackSize
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// coerceString turns a decoded JSON value into text. Falsy values become "".
func coerceString(v any) string {
	if !truthy(v) {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return "true"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		out, err := sonic.MarshalString(t)
		if err != nil {
			return ""
		}
		return out
	}
}

// coerceStrength accepts numbers, numeric strings and booleans. Anything that
// does not yield a finite number falls back to the default. Range is not checked.
func coerceStrength(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return defaultStrength
		}
		f = parsed
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return defaultStrength
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return defaultStrength
	}
	return f
}

