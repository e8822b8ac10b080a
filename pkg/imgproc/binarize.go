package imgproc

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// binarize reduces a grayscale image to pure black/white at a fixed threshold.
// Pixels at or below the threshold become black.
func binarize(img *image.NRGBA, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := imaging.New(b.Dx(), b.Dy(), color.NRGBA{255, 255, 255, 255})
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).R <= threshold {
				out.SetNRGBA(x-b.Min.X, y-b.Min.Y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}

// otsuThreshold picks the binarization threshold that maximizes between-class
// variance of the luminance histogram.
func otsuThreshold(img *image.NRGBA) uint8 {
	b := img.Bounds()
	var hist [256]int
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 128
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.NRGBAAt(x, y).R]++
		}
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}

	var sumBack, weightBack float64
	var bestVar float64
	best := 128
	for t := 0; t < 256; t++ {
		weightBack += float64(hist[t])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / weightBack
		meanFore := (sumAll - sumBack) / weightFore
		diff := meanBack - meanFore
		between := weightBack * weightFore * diff * diff
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	return uint8(best)
}
