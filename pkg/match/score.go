package match

// overlapScore rewards shared n-grams proportional to both strings' gram
// counts: overlap / max(queryGrams, candidateGrams). Zero when either side
// has no grams.
func overlapScore(overlap, queryGrams, candGrams int) float64 {
	max := queryGrams
	if candGrams > max {
		max = candGrams
	}
	if max == 0 {
		return 0
	}
	return float64(overlap) / float64(max)
}

// editScore maps edit distance to [0,1]: 1 - dist/maxLen.
func editScore(query, cand []rune, confusion map[[2]rune]float64) float64 {
	max := len(query)
	if len(cand) > max {
		max = len(cand)
	}
	if max == 0 {
		return 0
	}
	s := 1 - levenshtein(query, cand, confusion)/float64(max)
	if s < 0 {
		s = 0
	}
	return s
}

// positionScore is the fraction of left-aligned positions where the strings
// agree, over the longer length. It catches the "right string, one or two
// wrong characters in place" failure mode that overlap and edit distance both
// under-weight.
func positionScore(query, cand []rune) float64 {
	max := len(query)
	min := len(cand)
	if min > max {
		max, min = min, max
	}
	if max == 0 {
		return 0
	}
	matches := 0
	for i := 0; i < min; i++ {
		if query[i] == cand[i] {
			matches++
		}
	}
	return float64(matches) / float64(max)
}

// compositeScore combines the three signals with the configured weights.
func compositeScore(overlap, queryGrams, candGrams int, query, cand []rune, opts Options) float64 {
	w := opts.Weights
	return w.Overlap*overlapScore(overlap, queryGrams, candGrams) +
		w.Edit*editScore(query, cand, opts.ConfusionMap) +
		w.Position*positionScore(query, cand)
}
