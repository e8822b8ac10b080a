// Package match resolves noisy recognized strings to entries of an item
// catalog. Recognition output for small stylized glyphs is full of
// substitutions and dropped characters, so lookup combines n-gram recall with
// a composite similarity score instead of exact matching.
package match

// CatalogEntry is one item of the immutable catalog snapshot. Duplicate names
// across different ids are legal; names never carry surrounding whitespace.
type CatalogEntry struct {
	ID   uint
	Name string
}

// Candidate is a ranked search result. Score is in [0,1], higher is better.
type Candidate struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
