package imgproc

// Options is the flat configuration record for Process. All stages read their
// knobs from here; zero value is NOT useful, start from DefaultOptions.
type Options struct {
	// MaxDimension caps either side before upscaling; larger images are
	// downscaled proportionally first.
	MaxDimension int
	// Scale is the upscale factor applied before binarization. Small stylized
	// glyphs benefit disproportionately from this; it is the single most
	// load-bearing knob in the pipeline.
	Scale float64

	// Brightness classification thresholds (stage 3). An image with mean
	// brightness below DarkMeanMax and stddev above DarkStddevMin is treated
	// as light text on a dark background (inverted tooltip).
	DarkMeanMax   float64
	DarkStddevMin float64

	// Contrast stretch factors (stage 4).
	ContrastFactor     float64 // normal backgrounds
	ContrastFactorDark float64 // dark backgrounds, stretched harder
	BrightnessShift    float64 // added after the stretch on dark backgrounds

	// Denoising (stage 6), off by default for speed.
	EnableBilateral   bool
	EnableGridRemoval bool
	EnableGaussian    bool
	EnableMedian      bool
	GridDiffThreshold int // local deviation below this is flattened to the mean

	// Sharpening (stage 7).
	EnableSharpen bool
	SharpenStrong bool // 5x5 kernel for very small / low quality glyphs

	// Binarization (stage 8). Threshold is used when EnableAutoThreshold is
	// false; otherwise Otsu picks it per image.
	Threshold           uint8
	EnableAutoThreshold bool

	// Morphology (stage 9). Radii of 0 disable the corresponding operation.
	OpenRadius    int
	CloseRadius   int // dilation radius; erosion uses CloseRadius-1
	EnableOpening bool
	EnableClosing bool

	// Auto-crop (stage 10).
	EnableAutoCrop bool
	CropPadding    int
	CropThreshold  float64 // row/column mean brightness marking content
	MinCropSize    int     // detected regions smaller than this are ignored
}

// DefaultOptions returns the tuning that works for small game-UI glyph strips.
// These values are empirical; expose them to callers rather than hardcoding.
func DefaultOptions() Options {
	return Options{
		MaxDimension:        2400,
		Scale:               4.0,
		DarkMeanMax:         120,
		DarkStddevMin:       40,
		ContrastFactor:      1.5,
		ContrastFactorDark:  2.0,
		BrightnessShift:     10,
		GridDiffThreshold:   12,
		EnableSharpen:       true,
		SharpenStrong:       false,
		Threshold:           128,
		EnableAutoThreshold: true,
		EnableOpening:       false,
		EnableClosing:       true,
		OpenRadius:          1,
		CloseRadius:         2,
		EnableAutoCrop:      true,
		CropPadding:         8,
		CropThreshold:       245,
		MinCropSize:         20,
	}
}
