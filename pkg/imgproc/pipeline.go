// Package imgproc prepares screenshots and clipboard pastes for text
// recognition. The pipeline scales, flattens and binarizes small stylized
// glyphs so the downstream recognizer sees dark text on a clean light
// background regardless of what the game UI rendered.
package imgproc

import (
	"context"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Process runs the full preprocessing pipeline and returns a new image.
// The input is never mutated. Images with no usable pixels are returned
// unchanged rather than failing; there is nothing to find in them.
func Process(img image.Image, opts Options) image.Image {
	out, _ := ProcessContext(context.Background(), img, opts)
	return out
}

// ProcessContext is Process with cancellation. Every stage boundary is a
// checkpoint; on cancellation all work is discarded and ctx.Err() returned.
// Partial results are meaningless mid-pipeline so nothing is salvaged.
func ProcessContext(ctx context.Context, img image.Image, opts Options) (image.Image, error) {
	if img == nil {
		return nil, nil
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return img, nil
	}

	// Stage 1: resize guard then upscale. Downscale first so pathological
	// inputs don't explode after the upscale factor is applied.
	work := imaging.Clone(img)
	if opts.MaxDimension > 0 && (work.Bounds().Dx() > opts.MaxDimension || work.Bounds().Dy() > opts.MaxDimension) {
		if work.Bounds().Dx() >= work.Bounds().Dy() {
			work = imaging.Resize(work, opts.MaxDimension, 0, imaging.Lanczos)
		} else {
			work = imaging.Resize(work, 0, opts.MaxDimension, imaging.Lanczos)
		}
	}
	if opts.Scale > 1 {
		w := int(math.Round(float64(work.Bounds().Dx()) * opts.Scale))
		work = imaging.Resize(work, w, 0, imaging.Lanczos)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: luminance grayscale (0.299R + 0.587G + 0.114B).
	work = imaging.Grayscale(work)

	// Stage 3: classify light-on-dark tooltips from brightness statistics.
	mean, stddev := brightnessStats(work)
	darkBackground := mean < opts.DarkMeanMax && stddev > opts.DarkStddevMin

	// Stage 4: contrast stretch, harder on dark backgrounds.
	factor := opts.ContrastFactor
	shift := 0.0
	if darkBackground {
		factor = opts.ContrastFactorDark
		shift = opts.BrightnessShift
	}
	work = stretchContrast(work, factor, shift)

	// Stage 5: invert so binarization can assume dark text on light ground.
	if darkBackground {
		work = imaging.Invert(work)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 6: denoising, each filter assumes a less noisy input than the last.
	if opts.EnableBilateral {
		work = bilateralFilter(work, 2, 25)
	}
	if opts.EnableGridRemoval {
		work = removeGridLines(work, opts.GridDiffThreshold)
	}
	if opts.EnableGaussian {
		work = gaussianBlur(work)
	}
	if opts.EnableMedian {
		work = medianFilter(work)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 7: sharpening.
	if opts.EnableSharpen {
		if opts.SharpenStrong {
			work = convolve(work, sharpenKernel5, 5)
		} else {
			work = convolve(work, sharpenKernel3, 3)
		}
	}

	// Stage 8: binarization.
	th := opts.Threshold
	if opts.EnableAutoThreshold {
		th = otsuThreshold(work)
	}
	work = binarize(work, th)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 9: morphology. Opening removes specks, closing reconnects the
	// thin strokes that high-stroke-count glyphs lose to binarization.
	if opts.EnableOpening && opts.OpenRadius > 0 {
		work = erode(work, opts.OpenRadius)
		work = dilate(work, opts.OpenRadius)
	}
	if opts.EnableClosing && opts.CloseRadius > 0 {
		work = dilate(work, opts.CloseRadius)
		er := opts.CloseRadius - 1
		if er < 1 {
			er = 1
		}
		work = erode(work, er)
	}

	// Stage 10: crop to content.
	if opts.EnableAutoCrop {
		work = autoCrop(work, opts)
	}
	return work, nil
}

// brightnessStats computes mean and standard deviation of luminance over the
// whole image. The image is already grayscale so the red channel suffices.
func brightnessStats(img *image.NRGBA) (mean, stddev float64) {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0, 0
	}
	var sum, sumSq float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(img.NRGBAAt(x, y).R)
			sum += v
			sumSq += v * v
		}
	}
	mean = sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stddev = math.Sqrt(variance)
	return mean, stddev
}

// stretchContrast applies enhanced = clamp((gray-128)*factor + 128 + shift).
func stretchContrast(img *image.NRGBA, factor, shift float64) *image.NRGBA {
	b := img.Bounds()
	out := imaging.Clone(img)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := out.NRGBAAt(x, y)
			v := clamp255((float64(c.R)-128)*factor + 128 + shift)
			c.R, c.G, c.B = v, v, v
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
