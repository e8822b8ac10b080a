package imgproc

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestClosingReconnectsBrokenStroke(t *testing.T) {
	// horizontal stroke with a 2px gap, the classic fragmented thin stroke
	img := imaging.New(30, 9, color.NRGBA{255, 255, 255, 255})
	for x := 2; x < 13; x++ {
		img.SetNRGBA(x, 4, color.NRGBA{0, 0, 0, 255})
	}
	for x := 15; x < 27; x++ {
		img.SetNRGBA(x, 4, color.NRGBA{0, 0, 0, 255})
	}
	closed := erode(dilate(img, 2), 1)
	for x := 13; x < 15; x++ {
		if closed.NRGBAAt(x, 4).R != 0 {
			t.Fatalf("gap at x=%d not bridged", x)
		}
	}
}

func TestOpeningRemovesSpeck(t *testing.T) {
	img := imaging.New(20, 20, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(10, 10, color.NRGBA{0, 0, 0, 255}) // isolated noise pixel
	opened := dilate(erode(img, 1), 1)
	if opened.NRGBAAt(10, 10).R != 255 {
		t.Fatalf("isolated speck survived opening")
	}
}

func TestCircularElementSize(t *testing.T) {
	// radius 1 circle is the 4-neighborhood plus center
	offs := circularOffsets(1)
	if len(offs) != 5 {
		t.Fatalf("radius-1 circle has %d offsets, want 5", len(offs))
	}
	// radius 2 excludes the (2,2)-style corners a square would include
	for _, d := range circularOffsets(2) {
		if d[0]*d[0]+d[1]*d[1] > 4 {
			t.Fatalf("offset %v outside circle", d)
		}
	}
}

func TestMorphologyZeroRadiusNoOp(t *testing.T) {
	img := imaging.New(5, 5, color.NRGBA{0, 0, 0, 255})
	if dilate(img, 0) != img || erode(img, 0) != img {
		t.Fatalf("zero radius should return the input")
	}
}
