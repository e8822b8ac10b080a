package match

import "testing"

func TestLevenshteinBasic(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"", "", 0},
		{"精金投斧", "", 4},
		{"", "斧", 1},
		{"精金投斧", "精金投斧", 0},
		{"精金投斧", "精金战斧", 1},
		{"精金投斧", "鋼鐵長劍", 4},
		{"精金投斧", "精金斧", 1},   // deletion
		{"精金投斧", "精金投投斧", 1}, // insertion
	}
	for _, c := range cases {
		got := levenshtein([]rune(c.a), []rune(c.b), nil)
		if got != c.want {
			t.Fatalf("levenshtein(%q,%q)=%f want %f", c.a, c.b, got, c.want)
		}
	}
}

func TestLevenshteinConfusionCost(t *testing.T) {
	conf := map[[2]rune]float64{{'鐵', '銕'}: 0.25}
	got := levenshtein([]rune("鋼鐵長劍"), []rune("鋼銕長劍"), conf)
	if got != 0.25 {
		t.Fatalf("confused substitution cost = %f want 0.25", got)
	}
	// lookup works in both orders
	got = levenshtein([]rune("鋼銕長劍"), []rune("鋼鐵長劍"), conf)
	if got != 0.25 {
		t.Fatalf("reversed confusion lookup = %f want 0.25", got)
	}
}

func TestSubScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"精金投斧", "精金战斧"},
		{"斧", "鋼鐵長劍精金投斧"},
		{"精金", "精金"},
	}
	for _, p := range pairs {
		a, b := []rune(p[0]), []rune(p[1])
		if s := editScore(a, b, nil); s < 0 || s > 1 {
			t.Fatalf("editScore(%q,%q)=%f out of bounds", p[0], p[1], s)
		}
		if s := positionScore(a, b); s < 0 || s > 1 {
			t.Fatalf("positionScore(%q,%q)=%f out of bounds", p[0], p[1], s)
		}
	}
	if s := overlapScore(3, 3, 3); s != 1 {
		t.Fatalf("full overlap should be 1, got %f", s)
	}
	if s := overlapScore(0, 0, 0); s != 0 {
		t.Fatalf("no grams should be 0, got %f", s)
	}
}
