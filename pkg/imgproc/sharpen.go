package imgproc

import (
	"image"

	"github.com/disintegration/imaging"
)

// sharpenKernel3 is the standard unity-boosting sharpen for normal text.
var sharpenKernel3 = []float64{
	0, -1, 0,
	-1, 5, -1,
	0, -1, 0,
}

// sharpenKernel5 is a wider, stronger kernel for very small or low quality
// glyphs where the 3x3 kernel leaves strokes mushy.
var sharpenKernel5 = []float64{
	0, 0, -1, 0, 0,
	0, -1, -2, -1, 0,
	-1, -2, 17, -2, -1,
	0, -1, -2, -1, 0,
	0, 0, -1, 0, 0,
}

var gaussianKernel3 = []float64{
	1.0 / 16, 2.0 / 16, 1.0 / 16,
	2.0 / 16, 4.0 / 16, 2.0 / 16,
	1.0 / 16, 2.0 / 16, 1.0 / 16,
}

// convolve applies a size x size kernel to the luminance channel. The outer
// ring of kernel-radius pixels is left untouched: no wraparound, no
// reflection.
func convolve(img *image.NRGBA, kernel []float64, size int) *image.NRGBA {
	radius := size / 2
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := imaging.Clone(img)
	for y := radius; y < h-radius; y++ {
		for x := radius; x < w-radius; x++ {
			var sum float64
			for ky := 0; ky < size; ky++ {
				for kx := 0; kx < size; kx++ {
					v := float64(img.NRGBAAt(x+kx-radius, y+ky-radius).R)
					sum += v * kernel[ky*size+kx]
				}
			}
			c := out.NRGBAAt(x, y)
			v := clamp255(sum)
			c.R, c.G, c.B = v, v, v
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
