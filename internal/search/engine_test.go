package search

import (
	"testing"

	"menuvoice/internal/menu"

	"github.com/shopspring/decimal"
)

func buildEngine(t *testing.T, names ...string) *Engine {
	t.Helper()
	items := make([]menu.Item, 0, len(names))
	for i, name := range names {
		items = append(items, menu.Item{
			ID:        string(rune('a' + i)),
			Name:      name,
			Category:  "Test",
			BasePrice: decimal.NewFromInt(int64(i + 1)),
		})
	}
	c, err := menu.New(items, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return NewEngine(c)
}

func TestSearch_Tiers(t *testing.T) {
	e := buildEngine(t, "Omelet", "Cheese Omelet", "Coffee")

	results := e.Search("OMELET", DefaultThreshold)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[0].Name != "Omelet" || results[0].MatchType != MatchExact || results[0].Score != ExactScore {
		t.Errorf("expected exact Omelet first, got %+v", results[0])
	}
	if results[1].Name != "Cheese Omelet" || results[1].MatchType != MatchPartial || results[1].Score != PartialScore {
		t.Errorf("expected partial Cheese Omelet second, got %+v", results[1])
	}
}

func TestSearch_QueryContainsName(t *testing.T) {
	e := buildEngine(t, "Latte")

	results := e.Search("large iced latte please", DefaultThreshold)
	if len(results) != 1 || results[0].MatchType != MatchPartial {
		t.Fatalf("expected partial match, got %+v", results)
	}
}

func TestSearch_Fuzzy(t *testing.T) {
	e := buildEngine(t, "Omelet", "Bagel")

	results := e.Search("omlet", DefaultThreshold)
	if len(results) != 1 {
		t.Fatalf("expected one fuzzy match, got %+v", results)
	}
	if results[0].MatchType != MatchFuzzy || results[0].Score < 0.9 {
		t.Errorf("unexpected result %+v", results[0])
	}
	if results[0].Price != 1 {
		t.Errorf("expected price 1, got %v", results[0].Price)
	}
}

func TestSearch_NoMatch(t *testing.T) {
	e := buildEngine(t, "Omelet", "Bagel", "Coffee")

	results := e.Search("cheeseburger", DefaultThreshold)
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil results, got %#v", results)
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	e := buildEngine(t, "Omelet")

	for _, q := range []string{"", "   "} {
		if results := e.Search(q, DefaultThreshold); results == nil || len(results) != 0 {
			t.Errorf("Search(%q) = %#v, want empty", q, results)
		}
	}
}

func TestSearch_TiesKeepCatalogOrder(t *testing.T) {
	e := buildEngine(t, "Egg Sandwich", "Egg Bagel", "Eggs", "Egg Wrap")

	results := e.Search("egg", DefaultThreshold)
	if len(results) != 4 {
		t.Fatalf("expected 4 partial matches, got %+v", results)
	}
	want := []string{"Egg Sandwich", "Egg Bagel", "Eggs", "Egg Wrap"}
	for i, r := range results {
		if r.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], r.Name)
		}
	}
}

func TestSearch_SortedByScore(t *testing.T) {
	e := buildEngine(t, "Bagle", "Bagel Sandwich", "Bagel")

	results := e.Search("bagel", DefaultThreshold)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %+v", results)
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].Score < results[i].Score {
			t.Fatalf("results not sorted: %+v", results)
		}
	}
	if results[0].Name != "Bagel" || results[2].Name != "Bagle" {
		t.Errorf("unexpected order: %+v", results)
	}
}

func TestSearch_ThresholdRespected(t *testing.T) {
	e := buildEngine(t, "Omelet")

	if results := e.Search("omlet", 0.95); len(results) != 0 {
		t.Errorf("expected no results above 0.95, got %+v", results)
	}
}

func TestSearch_PaddedNamesMatchExactly(t *testing.T) {
	e := buildEngine(t, " Pancakes ", "Waffles")

	for _, q := range []string{"pancakes", "  PANCAKES "} {
		results := e.Search(q, DefaultThreshold)
		if len(results) == 0 {
			t.Fatalf("Search(%q): no results", q)
		}
		if results[0].MatchType != MatchExact || results[0].Score != ExactScore {
			t.Errorf("Search(%q): expected exact match, got %+v", q, results[0])
		}
	}
}

func TestSearch_PropertiesOverCatalog(t *testing.T) {
	names := []string{
		"Omelet", "Cheese Omelet", "Bagel", "Bagel Sandwich", "Latte",
		"Iced Latte", "Pancakes", "Blueberry Pancakes", "Coffee", "Hash Browns",
	}
	e := buildEngine(t, names...)

	queries := append([]string{"omlet", "bagle", "late", "pancake", "brown", "cofee", "tea"}, names...)

	for _, name := range names {
		t.Run("exact "+name, func(t *testing.T) {
			results := e.Search(name, DefaultThreshold)
			if len(results) == 0 {
				t.Fatal("no results")
			}
			if results[0].Name != name || results[0].MatchType != MatchExact || results[0].Score != ExactScore {
				t.Errorf("expected %q exact first, got %+v", name, results[0])
			}
		})
	}

	for _, q := range queries {
		t.Run("threshold "+q, func(t *testing.T) {
			results := e.Search(q, DefaultThreshold)
			for i, r := range results {
				if r.MatchType == MatchFuzzy && r.Score < DefaultThreshold {
					t.Errorf("fuzzy result below threshold: %+v", r)
				}
				if i > 0 && results[i-1].Score < r.Score {
					t.Errorf("results not sorted by score: %+v", results)
				}
			}
		})
	}
}
