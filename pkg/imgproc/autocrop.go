package imgproc

import (
	"image"

	"github.com/disintegration/imaging"
)

// autoCrop finds the bounding box of non-background content by scanning inward
// from each edge until the average row/column brightness drops below the
// threshold, then crops to that box plus padding. Implausibly small regions
// and regions spanning the whole image are left alone.
func autoCrop(img *image.NRGBA, opts Options) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	rowMean := func(y int) float64 {
		sum := 0
		for x := 0; x < w; x++ {
			sum += int(img.NRGBAAt(b.Min.X+x, b.Min.Y+y).R)
		}
		return float64(sum) / float64(w)
	}
	colMean := func(x int) float64 {
		sum := 0
		for y := 0; y < h; y++ {
			sum += int(img.NRGBAAt(b.Min.X+x, b.Min.Y+y).R)
		}
		return float64(sum) / float64(h)
	}

	top := 0
	for top < h && rowMean(top) >= opts.CropThreshold {
		top++
	}
	bottom := h - 1
	for bottom > top && rowMean(bottom) >= opts.CropThreshold {
		bottom--
	}
	left := 0
	for left < w && colMean(left) >= opts.CropThreshold {
		left++
	}
	right := w - 1
	for right > left && colMean(right) >= opts.CropThreshold {
		right--
	}

	if top >= bottom || left >= right {
		return img // nothing found
	}
	cw, ch := right-left+1, bottom-top+1
	if cw < opts.MinCropSize || ch < opts.MinCropSize {
		return img
	}
	if left == 0 && top == 0 && right == w-1 && bottom == h-1 {
		return img // content spans the whole image, crop is a no-op
	}

	pad := opts.CropPadding
	x0, y0 := left-pad, top-pad
	x1, y1 := right+1+pad, bottom+1+pad
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	return imaging.Crop(img, image.Rect(x0, y0, x1, y1))
}
