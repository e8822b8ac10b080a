// Package ocr wraps the external Tesseract engine behind a narrow call. The
// engine is a black box here: it gets a preprocessed bitmap and a script hint
// and returns raw text plus a confidence estimate. Everything smarter lives in
// pkg/imgproc (before) and pkg/match (after).
package ocr

import (
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Result is the raw recognizer output. Confidence is in [0,100];
// ConfidenceUnknown when the engine reported none.
type Result struct {
	Text       string
	Confidence float64
}

// ConfidenceUnknown marks a missing engine confidence.
const ConfidenceUnknown = -1

// Recognize runs Tesseract over an already-preprocessed image. lang is the
// Tesseract language pack (default chi_sim); whitelist restricts the engine to
// the catalog's character set and may be empty.
func Recognize(img image.Image, lang, whitelist string) (Result, error) {
	if lang == "" {
		lang = "chi_sim"
	}
	tmpFile, err := os.CreateTemp("", "itemocr-*.png")
	if err != nil {
		return Result{}, fmt.Errorf("temp file: %w", err)
	}
	tmp := tmpFile.Name()
	_ = tmpFile.Close()
	defer os.Remove(tmp)
	if err := imaging.Save(img, tmp); err != nil {
		return Result{}, fmt.Errorf("save processed image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(lang)
	if whitelist != "" {
		_ = client.SetWhitelist(whitelist)
	}
	_ = client.SetPageSegMode(gosseract.PSM_SINGLE_LINE)
	client.SetImage(tmp)

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("ocr error: %w", err)
	}
	text = normalizeText(text)
	if text == "" {
		return Result{}, ErrNoText
	}
	conf := heuristicConfidence(text)
	log.Printf("OCR recognized %q conf=%.0f", snippet(text, 80), conf)
	return Result{Text: text, Confidence: conf}, nil
}

// normalizeText collapses whitespace; item names are single lines so internal
// whitespace is recognizer noise.
func normalizeText(t string) string {
	return strings.Join(strings.Fields(t), "")
}

// heuristicConfidence estimates certainty from text shape when the engine
// itself reports none. Item names are 2-20 characters; very short or very long
// reads are usually garbage.
func heuristicConfidence(text string) float64 {
	n := len([]rune(text))
	switch {
	case n == 0:
		return 0
	case n == 1:
		return 30
	case n <= 20:
		return 70
	case n <= 30:
		return 50
	default:
		return 25
	}
}

// snippet shortens text for logging.
func snippet(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}
