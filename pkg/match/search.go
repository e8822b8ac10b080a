package match

import (
	"sort"
	"strings"
)

// ConfidenceUnknown marks a missing recognizer confidence. It is treated as
// maximum uncertainty, i.e. the fully relaxed thresholds.
const ConfidenceUnknown = -1

// Search resolves a possibly corrupted recognized string against the catalog
// snapshot the index was built from and returns ranked candidates.
//
// Stages: normalize; exact/substring fast path; n-gram recall with a capped
// candidate pool; composite scoring; confidence-adaptive thresholds; final
// deterministic ranking (score desc, id asc). An empty result is the normal
// "no match" signal, never an error.
func Search(query string, catalog []CatalogEntry, idx *NgramIndex, opts Options, confidence float64) []Candidate {
	if idx == nil || len(catalog) == 0 {
		return nil
	}
	q := opts.normalize(query)
	if q == "" {
		return nil
	}
	topK, minScore := effectiveThresholds(opts, confidence)

	// Fast path: a clean recognition matches exactly or as a substring.
	// Shorter names rank first (more specific), ties by id.
	if exact := exactOrSubstring(q, catalog); len(exact) > 0 {
		if len(exact) > topK {
			exact = exact[:topK]
		}
		return exact
	}

	// Recall: accumulate per-entry n-gram overlap, keep the top PoolSize.
	queryGrams := ngrams(q, idx.n)
	if len(queryGrams) == 0 {
		return nil
	}
	overlap := make(map[int]int)
	for _, g := range queryGrams {
		for _, pos := range idx.postings[g] {
			overlap[pos]++
		}
	}
	if len(overlap) == 0 {
		return nil
	}
	type recalled struct {
		pos     int
		overlap int
	}
	pool := make([]recalled, 0, len(overlap))
	for pos, n := range overlap {
		pool = append(pool, recalled{pos, n})
	}
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].overlap != pool[j].overlap {
			return pool[i].overlap > pool[j].overlap
		}
		return pool[i].pos < pool[j].pos
	})
	if opts.PoolSize > 0 && len(pool) > opts.PoolSize {
		pool = pool[:opts.PoolSize]
	}

	// Scoring.
	qRunes := []rune(q)
	var out []Candidate
	for _, r := range pool {
		e := catalog[r.pos]
		score := compositeScore(r.overlap, len(queryGrams), idx.counts[r.pos], qRunes, []rune(e.Name), opts)
		if score < minScore {
			continue
		}
		out = append(out, Candidate{ID: e.ID, Name: e.Name, Score: score})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

// effectiveThresholds widens the pool and lowers the floor when the
// recognizer reports low (or no) confidence. Monotonic: lower confidence
// never yields stricter thresholds than higher confidence.
func effectiveThresholds(opts Options, confidence float64) (topK int, minScore float64) {
	topK = opts.TopK
	if topK <= 0 {
		topK = 10
	}
	minScore = opts.MinScore
	if confidence >= 0 && confidence >= opts.LowConfidence {
		return topK, minScore
	}
	// confidence absent or below the low band
	topK *= 2
	if opts.PoolSize > 0 && topK > opts.PoolSize {
		topK = opts.PoolSize
	}
	minScore -= opts.LowConfidenceDelta
	if minScore < 0 {
		minScore = 0
	}
	return topK, minScore
}

// exactOrSubstring returns equality and containment matches ranked by name
// length ascending, then id. Exact matches score 1.0; containment matches
// score by length ratio. Catalog names shorter than the n-gram size are only
// reachable through this path.
func exactOrSubstring(q string, catalog []CatalogEntry) []Candidate {
	qLen := len([]rune(q))
	var out []Candidate
	for _, e := range catalog {
		if e.Name == q {
			out = append(out, Candidate{ID: e.ID, Name: e.Name, Score: 1})
			continue
		}
		if strings.Contains(e.Name, q) || strings.Contains(q, e.Name) {
			nLen := len([]rune(e.Name))
			shorter, longer := qLen, nLen
			if shorter > longer {
				shorter, longer = longer, shorter
			}
			out = append(out, Candidate{ID: e.ID, Name: e.Name, Score: float64(shorter) / float64(longer)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		li, lj := len([]rune(out[i].Name)), len([]rune(out[j].Name))
		if li != lj {
			return li < lj
		}
		return out[i].ID < out[j].ID
	})
	return out
}
