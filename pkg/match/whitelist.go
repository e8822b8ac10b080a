package match

import "sort"

// WhitelistProfile holds the character, bigram and trigram vocabulary of the
// catalog. It biases recognition (the recognizer whitelist is built from
// Chars) and flags queries containing in-script characters the catalog never
// uses. Advisory only: the profile is necessarily incomplete for rare
// compounds, so it never hard-filters scoring.
type WhitelistProfile struct {
	Chars    map[rune]struct{}
	Bigrams  map[string]struct{}
	Trigrams map[string]struct{}
}

// BuildWhitelist derives the profile from a catalog snapshot.
func BuildWhitelist(catalog []CatalogEntry) *WhitelistProfile {
	p := &WhitelistProfile{
		Chars:    make(map[rune]struct{}),
		Bigrams:  make(map[string]struct{}),
		Trigrams: make(map[string]struct{}),
	}
	for _, e := range catalog {
		runes := []rune(e.Name)
		for _, r := range runes {
			p.Chars[r] = struct{}{}
		}
		for _, g := range ngrams(e.Name, 2) {
			p.Bigrams[g] = struct{}{}
		}
		for _, g := range ngrams(e.Name, 3) {
			p.Trigrams[g] = struct{}{}
		}
	}
	return p
}

// CharString returns every catalog character as a single string, suitable for
// a recognizer character whitelist.
func (p *WhitelistProfile) CharString() string {
	runes := make([]rune, 0, len(p.Chars))
	for r := range p.Chars {
		runes = append(runes, r)
	}
	// deterministic order so recognizer configs are reproducible
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

// Validate returns the in-script runes of query that the catalog never uses.
// A non-empty result suggests the recognition is corrupt; callers may lower
// confidence or reject, but scoring proceeds regardless.
func (p *WhitelistProfile) Validate(query string) []rune {
	var invalid []rune
	for _, r := range query {
		if !isCatalogRune(r) {
			continue
		}
		if _, ok := p.Chars[r]; !ok {
			invalid = append(invalid, r)
		}
	}
	return invalid
}
