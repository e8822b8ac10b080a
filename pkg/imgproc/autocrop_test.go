package imgproc

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestAutoCropFindsContent(t *testing.T) {
	opts := DefaultOptions()
	opts.CropPadding = 2
	opts.MinCropSize = 5
	img := imaging.New(100, 100, color.NRGBA{255, 255, 255, 255})
	// 30x30 block of text-ish black
	for y := 40; y < 70; y++ {
		for x := 30; x < 60; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	out := autoCrop(img, opts)
	if out.Bounds().Dx() != 30+2*opts.CropPadding || out.Bounds().Dy() != 30+2*opts.CropPadding {
		t.Fatalf("unexpected crop size %v", out.Bounds())
	}
}

func TestAutoCropSkipsTinyRegion(t *testing.T) {
	opts := DefaultOptions() // MinCropSize 20
	img := imaging.New(100, 100, color.NRGBA{255, 255, 255, 255})
	for y := 50; y < 55; y++ {
		for x := 50; x < 55; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	out := autoCrop(img, opts)
	if out != img {
		t.Fatalf("implausibly small region should not be cropped")
	}
}

func TestAutoCropBlankImageNoOp(t *testing.T) {
	opts := DefaultOptions()
	img := imaging.New(50, 50, color.NRGBA{255, 255, 255, 255})
	if out := autoCrop(img, opts); out != img {
		t.Fatalf("blank image should pass through")
	}
	full := imaging.New(50, 50, color.NRGBA{0, 0, 0, 255})
	if out := autoCrop(full, opts); out != full {
		t.Fatalf("full-content image should pass through")
	}
}

func TestGridRemovalFlattensFaintLines(t *testing.T) {
	img := imaging.New(40, 40, color.NRGBA{200, 200, 200, 255})
	// faint grid line 6 levels off the background, below the threshold
	for y := 0; y < 40; y++ {
		img.SetNRGBA(20, y, color.NRGBA{194, 194, 194, 255})
	}
	out := removeGridLines(img, 12)
	v := out.NRGBAAt(20, 20).R
	if v < 197 {
		t.Fatalf("faint line not flattened toward background: %d", v)
	}
	// a real stroke far from the local mean survives
	img2 := imaging.New(40, 40, color.NRGBA{200, 200, 200, 255})
	img2.SetNRGBA(20, 20, color.NRGBA{10, 10, 10, 255})
	out2 := removeGridLines(img2, 12)
	if out2.NRGBAAt(20, 20).R != 10 {
		t.Fatalf("stroke pixel was flattened: %d", out2.NRGBAAt(20, 20).R)
	}
}

func TestMedianFilterRemovesSaltNoise(t *testing.T) {
	img := imaging.New(9, 9, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(4, 4, color.NRGBA{255, 255, 255, 255})
	out := medianFilter(img)
	if out.NRGBAAt(4, 4).R != 0 {
		t.Fatalf("salt pixel survived median filter: %d", out.NRGBAAt(4, 4).R)
	}
}

func TestConvolveLeavesBorderUntouched(t *testing.T) {
	img := imaging.New(10, 10, color.NRGBA{100, 100, 100, 255})
	out := convolve(img, sharpenKernel5, 5)
	// 5x5 kernel radius 2: outer two rings keep their original values
	for x := 0; x < 10; x++ {
		if out.NRGBAAt(x, 0).R != 100 || out.NRGBAAt(x, 1).R != 100 {
			t.Fatalf("border row modified at x=%d", x)
		}
	}
}
