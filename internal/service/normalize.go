package service

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/maskpaint/inpaint-api/internal/dataurl"
	"github.com/maskpaint/inpaint-api/internal/models"
)

// NormalizeResult converts an upstream result into a data URL. A JSON body with
// a string image field is passed through as is, raw bytes are wrapped as a PNG
// data URL, and anything else is an *UnexpectedResponseError.
func NormalizeResult(res *models.InferenceResult) (string, error) {
	if res == nil {
		return "", &UnexpectedResponseError{}
	}

	if isBinary(res) {
		return dataurl.Encode(res.Body, binaryResultMIME), nil
	}

	if image, ok := imageField(res.Body); ok {
		return image, nil
	}
	return "", &UnexpectedResponseError{ContentType: res.ContentType, Body: res.Body}
}

// Payload returns the upstream body in a form that can be echoed back to the
// client: decoded JSON when possible, plain text otherwise.
func (e *UnexpectedResponseError) Payload() any {
	if len(e.Body) == 0 {
		return nil
	}
	if sonic.Valid(e.Body) {
		var v any
		if err := sonic.Unmarshal(e.Body, &v); err == nil {
			return v
		}
	}
	return string(e.Body)
}

func isBinary(res *models.InferenceResult) bool {
	mediaType, _, _ := strings.Cut(strings.ToLower(res.ContentType), ";")
	mediaType = strings.TrimSpace(mediaType)

	switch {
	case strings.Contains(mediaType, "json"), strings.HasPrefix(mediaType, "text/"):
		return false
	case strings.HasPrefix(mediaType, "image/"), mediaType == "application/octet-stream":
		return true
	}
	return !sonic.Valid(res.Body)
}

// imageField looks for a non-empty string "image", either at the top level or
// inside the {"result": {...}} envelope used by the Cloudflare REST API.
func imageField(body []byte) (string, bool) {
	var doc map[string]any
	if err := sonic.Unmarshal(body, &doc); err != nil {
		return "", false
	}

	if image, ok := doc["image"].(string); ok && image != "" {
		return image, true
	}
	if inner, ok := doc["result"].(map[string]any); ok {
		if image, ok := inner["image"].(string); ok && image != "" {
			return image, true
		}
	}
	return "", false
}
