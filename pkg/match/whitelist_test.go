package match

import (
	"strings"
	"testing"
)

func TestBuildWhitelist(t *testing.T) {
	p := BuildWhitelist(axeCatalog())
	for _, r := range "精金投斧战鋼鐵長劍" {
		if _, ok := p.Chars[r]; !ok {
			t.Fatalf("missing catalog char %q", r)
		}
	}
	if _, ok := p.Bigrams["精金"]; !ok {
		t.Fatalf("missing bigram 精金")
	}
	if _, ok := p.Trigrams["精金投"]; !ok {
		t.Fatalf("missing trigram 精金投")
	}
}

func TestValidateFlagsUnknownInScriptChars(t *testing.T) {
	p := BuildWhitelist(axeCatalog())
	invalid := p.Validate("精金投釫")
	if len(invalid) != 1 || invalid[0] != '釫' {
		t.Fatalf("expected [釫], got %v", invalid)
	}
	// out-of-script noise is ignored, not flagged
	if inv := p.Validate("精金!!??"); len(inv) != 0 {
		t.Fatalf("symbols should not be flagged, got %v", inv)
	}
}

func TestCharStringDeterministic(t *testing.T) {
	p := BuildWhitelist(axeCatalog())
	first := p.CharString()
	for i := 0; i < 5; i++ {
		if got := p.CharString(); got != first {
			t.Fatalf("CharString unstable: %q vs %q", got, first)
		}
	}
	if !strings.ContainsRune(first, '斧') {
		t.Fatalf("char string missing 斧: %q", first)
	}
}

func TestDefaultNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  精金投斧  ", "精金投斧"},
		{"精金·投斧!", "精金投斧"},
		{"G10精金", "G10精金"},
		{"※★☆", ""},
	}
	for _, c := range cases {
		if got := defaultNormalize(c.in); got != c.want {
			t.Fatalf("defaultNormalize(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
