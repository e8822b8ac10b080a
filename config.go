package main

import (
	"os"
	"strconv"

	"github.com/beherw/FFXIV-Market-sub004/pkg/imgproc"
	"github.com/beherw/FFXIV-Market-sub004/pkg/match"
)

// matchOptions returns the matcher tuning, with the main knobs overridable
// from the environment so accuracy can be re-tuned without a rebuild.
func matchOptions() match.Options {
	opts := match.DefaultOptions()
	if v := envInt("MATCH_TOP_K"); v > 0 {
		opts.TopK = v
	}
	if v := envFloat("MATCH_MIN_SCORE"); v > 0 {
		opts.MinScore = v
	}
	if v := envInt("MATCH_NGRAM_SIZE"); v > 0 {
		opts.NgramSize = v
	}
	if v := envFloat("MATCH_WEIGHT_OVERLAP"); v > 0 {
		opts.Weights.Overlap = v
	}
	if v := envFloat("MATCH_WEIGHT_EDIT"); v > 0 {
		opts.Weights.Edit = v
	}
	if v := envFloat("MATCH_WEIGHT_POSITION"); v > 0 {
		opts.Weights.Position = v
	}
	return opts
}

// imgprocOptions returns the preprocessing tuning. OCR_SCALE is the
// load-bearing knob; the rest rarely needs touching in production.
func imgprocOptions() imgproc.Options {
	opts := imgproc.DefaultOptions()
	if v := envFloat("OCR_SCALE"); v > 0 {
		opts.Scale = v
	}
	if v := envInt("OCR_THRESHOLD"); v > 0 && v < 256 {
		opts.Threshold = uint8(v)
		opts.EnableAutoThreshold = false
	}
	if os.Getenv("OCR_DENOISE") == "1" {
		opts.EnableBilateral = true
		opts.EnableMedian = true
	}
	if os.Getenv("OCR_SHARPEN_STRONG") == "1" {
		opts.SharpenStrong = true
	}
	return opts
}

func envInt(key string) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func envFloat(key string) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
