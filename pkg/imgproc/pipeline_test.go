package imgproc

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// testOptions disables the upscale so pixel-level assertions stay cheap.
func testOptions() Options {
	opts := DefaultOptions()
	opts.Scale = 1
	opts.EnableAutoCrop = false
	opts.EnableClosing = false
	return opts
}

func TestProcessNilAndZeroSize(t *testing.T) {
	if got := Process(nil, DefaultOptions()); got != nil {
		t.Fatalf("nil image should pass through, got %v", got)
	}
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	got := Process(empty, DefaultOptions())
	if got != image.Image(empty) {
		t.Fatalf("zero-size image should be returned unchanged")
	}
}

func TestProcessContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := imaging.New(40, 20, color.NRGBA{128, 128, 128, 255})
	out, err := ProcessContext(ctx, img, testOptions())
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out != nil {
		t.Fatalf("cancelled pipeline should discard work, got %v", out.Bounds())
	}

	// nil and zero-size short-circuit before the first checkpoint
	if _, err := ProcessContext(ctx, nil, testOptions()); err != nil {
		t.Fatalf("nil image should not report cancellation: %v", err)
	}
}

func TestBinarizationPurity(t *testing.T) {
	// noisy gray gradient with a dark blob
	img := imaging.New(64, 32, color.NRGBA{255, 255, 255, 255})
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			v := uint8((x * 4) % 256)
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	out := Process(img, testOptions())
	nrgba := imaging.Clone(out)
	b := nrgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgba.NRGBAAt(x, y)
			if c.R != c.G || c.G != c.B {
				t.Fatalf("channels differ at (%d,%d): %+v", x, y, c)
			}
			if c.R != 0 && c.R != 255 {
				t.Fatalf("gray survived binarization at (%d,%d): %d", x, y, c.R)
			}
		}
	}
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	img := imaging.New(40, 20, color.NRGBA{90, 90, 90, 255})
	img.SetNRGBA(5, 5, color.NRGBA{10, 10, 10, 255})
	orig := imaging.Clone(img)
	_ = Process(img, testOptions())
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) != orig.NRGBAAt(x, y) {
				t.Fatalf("input mutated at (%d,%d)", x, y)
			}
		}
	}
}

func TestDarkBackgroundClassification(t *testing.T) {
	// light text on dark tooltip: low mean, high stddev
	img := imaging.New(60, 30, color.NRGBA{20, 20, 20, 255})
	for x := 10; x < 50; x++ {
		for y := 12; y < 18; y++ {
			img.SetNRGBA(x, y, color.NRGBA{230, 230, 230, 255})
		}
	}
	gray := imaging.Grayscale(img)
	mean, stddev := brightnessStats(gray)
	opts := DefaultOptions()
	if !(mean < opts.DarkMeanMax && stddev > opts.DarkStddevMin) {
		t.Fatalf("tooltip not classified dark: mean=%f stddev=%f", mean, stddev)
	}

	// after the full pipeline the inverted text must come out as dark
	// foreground: some black pixels where the glyph block was
	out := imaging.Clone(Process(img, testOptions()))
	blackInGlyph := 0
	for x := 12; x < 48; x++ {
		for y := 13; y < 17; y++ {
			if out.NRGBAAt(x, y).R == 0 {
				blackInGlyph++
			}
		}
	}
	if blackInGlyph == 0 {
		t.Fatalf("inverted tooltip produced no dark foreground")
	}
}

func TestStretchContrastClamps(t *testing.T) {
	img := imaging.New(4, 1, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(2, 0, color.NRGBA{128, 128, 128, 255})
	img.SetNRGBA(3, 0, color.NRGBA{100, 100, 100, 255})
	out := stretchContrast(img, 3.0, 0)
	if out.NRGBAAt(0, 0).R != 0 {
		t.Fatalf("black not clamped at 0: %d", out.NRGBAAt(0, 0).R)
	}
	if out.NRGBAAt(1, 0).R != 255 {
		t.Fatalf("white not clamped at 255: %d", out.NRGBAAt(1, 0).R)
	}
	if out.NRGBAAt(2, 0).R != 128 {
		t.Fatalf("midpoint should be fixed: %d", out.NRGBAAt(2, 0).R)
	}
}

func TestResizeGuardCapsLargeImages(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDimension = 100
	opts.Scale = 1
	opts.EnableAutoCrop = false
	img := imaging.New(400, 200, color.NRGBA{128, 128, 128, 255})
	out := Process(img, opts)
	if out.Bounds().Dx() > 100 || out.Bounds().Dy() > 100 {
		t.Fatalf("resize guard failed: %v", out.Bounds())
	}
	// aspect ratio preserved: 400x200 -> 100x50
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Fatalf("aspect ratio lost: %v", out.Bounds())
	}
}

func TestUpscaleFactor(t *testing.T) {
	opts := testOptions()
	opts.Scale = 2.5
	img := imaging.New(40, 20, color.NRGBA{128, 128, 128, 255})
	out := Process(img, opts)
	if out.Bounds().Dx() != 100 {
		t.Fatalf("expected width 100 after 2.5x, got %d", out.Bounds().Dx())
	}
}
