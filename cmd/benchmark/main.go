package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/maskpaint/inpaint-api/internal/dataurl"
	"github.com/maskpaint/inpaint-api/internal/logging"
	"github.com/rs/zerolog"
)

var (
	defaultPrompt   = "a field of sunflowers"
	defaultStrength = 0.85
	backendEndpoint = "http://localhost:8080/api/inpaint"

	sizes = []string{"512x512", "768x768", "1024x1024"}
)

func main() {
	ctx := context.Background()
	logger := logging.New("info", "console")

	if v := os.Getenv("BENCH_ENDPOINT"); v != "" {
		backendEndpoint = v
	}

	images := loadImages(filepath.Join(".", "data"), logger)

	var results []BenchResult
	for _, size := range sizes {
		for name, img := range images {
			res := benchmarkInpaint(ctx, name, img, size)

			if res.Err != nil {
				logger.Error().Err(res.Err).Str("file", res.File).Str("size", size).Msg("request failed")
			} else {
				logger.Info().Str("file", res.File).Str("size", size).Dur("dur", res.Duration).Msg("ok")
			}

			results = append(results, res)
		}
	}

	printMarkdown(results)
}

// loadImages reads every png under dir; when there is none a synthetic
// gradient stands in.
func loadImages(dir string, logger zerolog.Logger) map[string][]byte {
	out := map[string][]byte{}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warn().Err(err).Str("file", e.Name()).Msg("skip")
			continue
		}
		out[e.Name()] = raw
	}
	if len(out) == 0 {
		out["synthetic.png"] = encodePNG(gradient(512, 512))
	}
	return out
}

func benchmarkInpaint(ctx context.Context, name string, img []byte, size string) BenchResult {
	start := time.Now()

	cfg, _, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return BenchResult{File: name, Size: size, Err: fmt.Errorf("decode %s: %w", name, err)}
	}

	req := InpaintRequest{
		Prompt:   defaultPrompt,
		Image:    dataurl.Encode(img, "image/png"),
		Mask:     dataurl.Encode(encodePNG(centerMask(cfg.Width, cfg.Height)), "image/png"),
		Size:     size,
		Strength: defaultStrength,
	}

	resp, err := send(ctx, req)
	if err == nil && resp.Image == "" {
		err = fmt.Errorf("empty image in response")
	}

	return BenchResult{
		File:     name,
		Size:     size,
		Duration: time.Since(start),
		Err:      err,
		Bytes:    int64(len(img)),
	}
}

func send(ctx context.Context, req InpaintRequest) (*InpaintResponse, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, backendEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out InpaintResponse
	if err := sonic.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal resp: %w", err)
	}
	return &out, nil
}

func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

// centerMask marks the middle third of the frame for regeneration.
func centerMask(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := h / 3; y < 2*h/3; y++ {
		for x := w / 3; x < 2*w/3; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func encodePNG(img image.Image) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Size]
		a.Count++
		a.TotalBytes += r.Bytes
		a.Total += r.Duration
		m[r.Size] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Println("\n## Benchmark Results")
	fmt.Println()
	fmt.Println("| Size | Requests | Avg Time | Total Time | Avg Input Size |")
	fmt.Println("|------|----------|----------|------------|----------------|")

	agg := aggregate(results)

	var (
		totalCount    int
		totalDuration time.Duration
		totalBytes    int64
	)

	for _, size := range sizes {
		a, ok := agg[size]
		if !ok {
			continue
		}
		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Printf("| %s | %d | %v | %v | %s |\n",
			size,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			humanBytes(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Printf("| **ALL** | %d | %v | %v | %s |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			humanBytes(avgSize),
		)
	}

	if failed := len(results) - totalCount; failed > 0 {
		fmt.Printf("\n%d request(s) failed\n", failed)
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
