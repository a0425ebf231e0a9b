package main

import "time"

type InpaintRequest struct {
	Prompt   string  `json:"prompt"`
	Image    string  `json:"image"`
	Mask     string  `json:"mask"`
	Size     string  `json:"size"`
	Strength float64 `json:"strength"`
}

type InpaintResponse struct {
	Image string `json:"image"`
	Error string `json:"error"`
}

type BenchResult struct {
	File     string
	Size     string
	Duration time.Duration
	Err      error
	Bytes    int64
}

type Agg struct {
	Count      int
	Total      time.Duration
	TotalBytes int64
}
