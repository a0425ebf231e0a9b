package dataurl

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff, 0x10, 0x0a}
	url := Encode(data, "image/png")
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %s", url)
	}

	got, mimeType, err := Decode(url)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if mimeType != "image/png" {
		t.Fatalf("mime=%s", mimeType)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("payload mismatch: %v != %v", got, data)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if got := Encode(nil, "image/png"); got != "data:image/png;base64," {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeRejects(t *testing.T) {
	for _, in := range []string{
		"https://example.com/cat.png",
		"data:image/png,rawtext",
		"data:image/png;base64",
	} {
		if _, _, err := Decode(in); !errors.Is(err, ErrNotDataURL) {
			t.Fatalf("%q: expected ErrNotDataURL, got %v", in, err)
		}
	}

	if _, _, err := Decode("data:image/png;base64,!!!"); err == nil {
		t.Fatalf("expected base64 error")
	}
}
