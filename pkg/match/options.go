package match

// Normalizer maps a raw recognized string to canonical form before matching.
// The default trims and strips out-of-script noise; callers wanting
// simplified/traditional folding supply their own.
type Normalizer func(string) string

// Weights are the composite score weights. They should sum to 1 but Search
// does not enforce it; they are the primary accuracy tuning surface.
type Weights struct {
	Overlap  float64
	Edit     float64
	Position float64
}

// Options is the flat configuration record for Search and BuildIndex.
type Options struct {
	// NgramSize is the recall gram length. 2 suits CJK item names; scripts
	// where two characters are too coarse or too fine can override it.
	NgramSize int
	// TopK is the maximum result count.
	TopK int
	// PoolSize caps the candidate pool kept after n-gram recall, before the
	// expensive scoring pass. It also bounds the confidence-relaxed TopK.
	PoolSize int
	// MinScore discards candidates scoring below it.
	MinScore float64
	Weights  Weights

	// Confidence bands. Below LowConfidence the pool widens (TopK doubled, up
	// to PoolSize) and MinScore drops by LowConfidenceDelta; at or above
	// HighConfidence the defaults apply unchanged. Relaxation is monotonic:
	// lower confidence never tightens thresholds.
	LowConfidence      float64
	HighConfidence     float64
	LowConfidenceDelta float64

	// Normalizer, nil means the default out-of-script strip.
	Normalizer Normalizer
	// ConfusionMap optionally lowers substitution cost for visually
	// confusable glyph pairs. Looked up in both orders; absent pairs cost 1.
	ConfusionMap map[[2]rune]float64
}

// DefaultOptions returns the tuning used by the production catalog. The
// weights and thresholds are empirical for one catalog/recognizer pair; treat
// them as a starting point, not proven-optimal constants.
func DefaultOptions() Options {
	return Options{
		NgramSize:          2,
		TopK:               10,
		PoolSize:           200,
		MinScore:           0.4,
		Weights:            Weights{Overlap: 0.4, Edit: 0.4, Position: 0.2},
		LowConfidence:      50,
		HighConfidence:     70,
		LowConfidenceDelta: 0.1,
	}
}
