package imgproc

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// circularOffsets returns the neighborhood offsets of a circular structuring
// element. A circle bridges stroke gaps without the corner-fusing a square
// element causes between adjacent characters.
func circularOffsets(radius int) [][2]int {
	var offs [][2]int
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				offs = append(offs, [2]int{dx, dy})
			}
		}
	}
	return offs
}

// dilate grows black (foreground) regions by a circular element.
func dilate(img *image.NRGBA, radius int) *image.NRGBA {
	if radius <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	offs := circularOffsets(radius)
	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for _, d := range offs {
				x2, y2 := x+d[0], y+d[1]
				if x2 < 0 || y2 < 0 || x2 >= w || y2 >= h {
					continue
				}
				if img.NRGBAAt(b.Min.X+x2, b.Min.Y+y2).R == 0 {
					out.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
					break
				}
			}
		}
	}
	return out
}

// erode shrinks black regions: a pixel stays black only if its whole circular
// neighborhood (clipped at borders) is black.
func erode(img *image.NRGBA, radius int) *image.NRGBA {
	if radius <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	offs := circularOffsets(radius)
	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			keep := img.NRGBAAt(b.Min.X+x, b.Min.Y+y).R == 0
			if keep {
				for _, d := range offs {
					x2, y2 := x+d[0], y+d[1]
					if x2 < 0 || y2 < 0 || x2 >= w || y2 >= h {
						continue
					}
					if img.NRGBAAt(b.Min.X+x2, b.Min.Y+y2).R != 0 {
						keep = false
						break
					}
				}
			}
			if keep {
				out.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}
