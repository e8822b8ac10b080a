package ocr

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{" 精金 投斧 \n", "精金投斧"},
		{"\t\n ", ""},
		{"精金投斧", "精金投斧"},
	}
	for _, c := range cases {
		if got := normalizeText(c.in); got != c.want {
			t.Fatalf("normalizeText(%q)=%q want %q", c.in, got, c.want)
		}
	}
}

func TestHeuristicConfidence(t *testing.T) {
	if heuristicConfidence("") != 0 {
		t.Fatalf("empty text should be zero confidence")
	}
	if c := heuristicConfidence("精金投斧"); c != 70 {
		t.Fatalf("name-length text = %f want 70", c)
	}
	long := make([]rune, 40)
	for i := range long {
		long[i] = '斧'
	}
	if c := heuristicConfidence(string(long)); c >= 50 {
		t.Fatalf("overlong garbage should be low confidence, got %f", c)
	}
}
