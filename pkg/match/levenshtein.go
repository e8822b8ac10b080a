package match

// levenshtein returns the rune-level edit distance between a and b using the
// standard DP with a rolling row. Substitution cost defaults to 1 but drops to
// the configured value for visually confusable pairs; the confusion map is
// looked up in both orders so callers only list each pair once.
func levenshtein(a, b []rune, confusion map[[2]rune]float64) float64 {
	la, lb := len(a), len(b)
	if la == 0 {
		return float64(lb)
	}
	if lb == 0 {
		return float64(la)
	}

	subCost := func(x, y rune) float64 {
		if x == y {
			return 0
		}
		if confusion != nil {
			if c, ok := confusion[[2]rune{x, y}]; ok {
				return c
			}
			if c, ok := confusion[[2]rune{y, x}]; ok {
				return c
			}
		}
		return 1
	}

	row := make([]float64, lb+1)
	for j := range row {
		row[j] = float64(j)
	}
	for i := 1; i <= la; i++ {
		prev := float64(i)
		for j := 1; j <= lb; j++ {
			cost := row[j-1] + subCost(a[i-1], b[j-1])
			if d := row[j] + 1; d < cost {
				cost = d // delete
			}
			if d := prev + 1; d < cost {
				cost = d // insert
			}
			row[j-1] = prev
			prev = cost
		}
		row[lb] = prev
	}
	return row[lb]
}
