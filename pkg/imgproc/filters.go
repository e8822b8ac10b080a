package imgproc

import (
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

// bilateralFilter smooths while preserving edges: neighbors contribute by both
// spatial distance and intensity similarity. radius is in pixels, sigmaColor
// controls how quickly dissimilar intensities stop contributing.
func bilateralFilter(img *image.NRGBA, radius int, sigmaColor float64) *image.NRGBA {
	if radius <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := imaging.Clone(img)
	sigmaSpace := float64(radius)
	for y := radius; y < h-radius; y++ {
		for x := radius; x < w-radius; x++ {
			center := float64(img.NRGBAAt(x, y).R)
			var sum, weightSum float64
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					v := float64(img.NRGBAAt(x+dx, y+dy).R)
					spatial := math.Exp(-float64(dx*dx+dy*dy) / (2 * sigmaSpace * sigmaSpace))
					tonal := math.Exp(-(v - center) * (v - center) / (2 * sigmaColor * sigmaColor))
					wgt := spatial * tonal
					sum += v * wgt
					weightSum += wgt
				}
			}
			c := out.NRGBAAt(x, y)
			v := clamp255(sum / weightSum)
			c.R, c.G, c.B = v, v, v
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// removeGridLines flattens small local deviations to the neighborhood mean.
// Inventory backgrounds carry faint grid/slot lines that survive contrast
// stretching; pixels within diffThreshold of their local average are noise,
// not strokes.
func removeGridLines(img *image.NRGBA, diffThreshold int) *image.NRGBA {
	if diffThreshold <= 0 {
		return img
	}
	const radius = 2
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := imaging.Clone(img)
	for y := radius; y < h-radius; y++ {
		for x := radius; x < w-radius; x++ {
			sum := 0
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					sum += int(img.NRGBAAt(x+dx, y+dy).R)
				}
			}
			mean := sum / ((2*radius + 1) * (2*radius + 1))
			v := int(img.NRGBAAt(x, y).R)
			d := v - mean
			if d < 0 {
				d = -d
			}
			if d < diffThreshold {
				c := out.NRGBAAt(x, y)
				m := uint8(mean)
				c.R, c.G, c.B = m, m, m
				out.SetNRGBA(x, y, c)
			}
		}
	}
	return out
}

// gaussianBlur applies a fixed 3x3 gaussian kernel.
func gaussianBlur(img *image.NRGBA) *image.NRGBA {
	return convolve(img, gaussianKernel3, 3)
}

// medianFilter replaces each pixel with the median of its 3x3 neighborhood.
func medianFilter(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := imaging.Clone(img)
	window := make([]int, 0, 9)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			window = window[:0]
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					window = append(window, int(img.NRGBAAt(x+dx, y+dy).R))
				}
			}
			sort.Ints(window)
			c := out.NRGBAAt(x, y)
			v := uint8(window[4])
			c.R, c.G, c.B = v, v, v
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
