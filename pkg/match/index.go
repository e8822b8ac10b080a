package match

import "sync"

// NgramIndex maps each n-gram of a catalog name to the catalog positions whose
// name contains it. Built once per catalog snapshot, read-only afterwards; it
// is only valid against the exact catalog slice it was built from.
type NgramIndex struct {
	n        int
	postings map[string][]int // gram -> catalog positions, ascending
	counts   []int            // distinct n-grams per catalog position
}

// ngrams slides a rune window of length n and returns the distinct grams in
// first-seen order. Strings shorter than n yield nothing; such names are only
// reachable through the exact/substring path.
func ngrams(s string, n int) []string {
	runes := []rune(s)
	if len(runes) < n || n <= 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(runes))
	var grams []string
	for i := 0; i <= len(runes)-n; i++ {
		g := string(runes[i : i+n])
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			grams = append(grams, g)
		}
	}
	return grams
}

// BuildIndex constructs the n-gram inverted index for a catalog snapshot.
// Deterministic; an empty catalog produces an empty (but usable) index.
func BuildIndex(catalog []CatalogEntry, n int) *NgramIndex {
	if n <= 0 {
		n = 2
	}
	idx := &NgramIndex{
		n:        n,
		postings: make(map[string][]int),
		counts:   make([]int, len(catalog)),
	}
	for pos, e := range catalog {
		grams := ngrams(e.Name, n)
		idx.counts[pos] = len(grams)
		for _, g := range grams {
			idx.postings[g] = append(idx.postings[g], pos)
		}
	}
	return idx
}

// Size returns the number of distinct n-grams indexed.
func (idx *NgramIndex) Size() int { return len(idx.postings) }

// IndexCache memoizes the derived state of one catalog snapshot (n-gram index
// and whitelist profile). It is owned by the application session and passed by
// reference; concurrent first callers share the single in-flight build instead
// of rebuilding a tens-of-thousands-entry index redundantly.
type IndexCache struct {
	catalog []CatalogEntry
	n       int

	idxOnce sync.Once
	idx     *NgramIndex

	wlOnce sync.Once
	wl     *WhitelistProfile
}

// NewIndexCache wraps a catalog snapshot. The snapshot must not be mutated
// afterwards; swap in a new cache when the catalog changes.
func NewIndexCache(catalog []CatalogEntry, n int) *IndexCache {
	return &IndexCache{catalog: catalog, n: n}
}

// Catalog returns the wrapped snapshot.
func (c *IndexCache) Catalog() []CatalogEntry { return c.catalog }

// Index builds the n-gram index on first use.
func (c *IndexCache) Index() *NgramIndex {
	c.idxOnce.Do(func() { c.idx = BuildIndex(c.catalog, c.n) })
	return c.idx
}

// Whitelist builds the whitelist profile on first use.
func (c *IndexCache) Whitelist() *WhitelistProfile {
	c.wlOnce.Do(func() { c.wl = BuildWhitelist(c.catalog) })
	return c.wl
}
