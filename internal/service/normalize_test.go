package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/maskpaint/inpaint-api/internal/dataurl"
	"github.com/maskpaint/inpaint-api/internal/models"
)

func TestNormalizePassesImageThrough(t *testing.T) {
	const want = "data:image/png;base64,AAA"
	got, err := NormalizeResult(&models.InferenceResult{
		ContentType: "application/json",
		Body:        []byte(`{"image":"` + want + `"}`),
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != want {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeCloudflareEnvelope(t *testing.T) {
	got, err := NormalizeResult(&models.InferenceResult{
		ContentType: "application/json",
		Body:        []byte(`{"result":{"image":"data:image/png;base64,BBB"},"success":true,"errors":[]}`),
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got != "data:image/png;base64,BBB" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeBinaryRoundTrip(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 1, 2, 254, 255}
	for _, ct := range []string{"image/png", "application/octet-stream", ""} {
		got, err := NormalizeResult(&models.InferenceResult{ContentType: ct, Body: data})
		if err != nil {
			t.Fatalf("ct=%q: %v", ct, err)
		}
		if !strings.HasPrefix(got, "data:image/png;base64,") {
			t.Fatalf("ct=%q: unexpected prefix %q", ct, got)
		}

		decoded, mimeType, err := dataurl.Decode(got)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if mimeType != "image/png" || string(decoded) != string(data) {
			t.Fatalf("round trip mismatch: %v", decoded)
		}
	}
}

func TestNormalizeUnexpectedShape(t *testing.T) {
	cases := []*models.InferenceResult{
		{ContentType: "application/json", Body: []byte(`{"foo":1}`)},
		{ContentType: "application/json", Body: []byte(`{"image":42}`)},
		{ContentType: "application/json", Body: []byte(`{"image":""}`)},
		{ContentType: "application/json", Body: []byte(`[1,2]`)},
		{ContentType: "", Body: []byte(`{"foo":1}`)},
		{ContentType: "text/plain", Body: []byte("hello")},
		nil,
	}
	for _, res := range cases {
		_, err := NormalizeResult(res)
		if !errors.Is(err, ErrUnexpectedResponse) {
			t.Fatalf("%+v: expected ErrUnexpectedResponse, got %v", res, err)
		}
	}
}

func TestUnexpectedResponsePayload(t *testing.T) {
	_, err := NormalizeResult(&models.InferenceResult{ContentType: "application/json", Body: []byte(`{"foo":1}`)})

	var unexpected *UnexpectedResponseError
	if !errors.As(err, &unexpected) {
		t.Fatalf("expected *UnexpectedResponseError, got %T", err)
	}
	payload, ok := unexpected.Payload().(map[string]any)
	if !ok || payload["foo"] != float64(1) {
		t.Fatalf("unexpected payload: %#v", unexpected.Payload())
	}

	text := &UnexpectedResponseError{Body: []byte("hello")}
	if text.Payload() != "hello" {
		t.Fatalf("text payload: %#v", text.Payload())
	}
	if (&UnexpectedResponseError{}).Payload() != nil {
		t.Fatalf("empty body should echo nil")
	}
}
