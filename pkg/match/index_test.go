package match

import (
	"sync"
	"testing"
)

func TestNgrams(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want []string
	}{
		{"精金投斧", 2, []string{"精金", "金投", "投斧"}},
		{"斧", 2, nil},
		{"", 2, nil},
		{"精精精", 2, []string{"精精"}}, // dedupe
		{"鋼鐵長劍", 3, []string{"鋼鐵長", "鐵長劍"}},
	}
	for _, c := range cases {
		got := ngrams(c.in, c.n)
		if len(got) != len(c.want) {
			t.Fatalf("ngrams(%q,%d)=%v want %v", c.in, c.n, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("ngrams(%q,%d)=%v want %v", c.in, c.n, got, c.want)
			}
		}
	}
}

func TestBuildIndexEmpty(t *testing.T) {
	idx := BuildIndex(nil, 2)
	if idx == nil || idx.Size() != 0 {
		t.Fatalf("empty catalog should give empty index, got %+v", idx)
	}
}

func TestBuildIndexPostings(t *testing.T) {
	catalog := axeCatalog()
	idx := BuildIndex(catalog, 2)
	// 精金 appears in both axe names (positions 0 and 1)
	posts := idx.postings["精金"]
	if len(posts) != 2 || posts[0] != 0 || posts[1] != 1 {
		t.Fatalf("unexpected postings for 精金: %v", posts)
	}
	if idx.counts[0] != 3 {
		t.Fatalf("expected 3 grams for 精金投斧, got %d", idx.counts[0])
	}
}

func TestIndexCacheBuildsOnce(t *testing.T) {
	cache := NewIndexCache(axeCatalog(), 2)
	var wg sync.WaitGroup
	results := make([]*NgramIndex, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.Index()
		}(i)
	}
	wg.Wait()
	for i := 1; i < 8; i++ {
		if results[i] != results[0] {
			t.Fatalf("concurrent callers got different index instances")
		}
	}
	if cache.Whitelist() != cache.Whitelist() {
		t.Fatalf("whitelist not memoized")
	}
}
