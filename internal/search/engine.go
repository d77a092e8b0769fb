package search

import (
	"sort"
	"strings"

	"menuvoice/internal/menu"
)

type entry struct {
	item  *menu.Item
	lower string
	chars []string
}

// Engine resolves free-text queries against a catalog snapshot. It keeps
// no state between calls and is safe for concurrent use.
type Engine struct {
	entries []entry
}

func NewEngine(catalog *menu.Catalog) *Engine {
	items := catalog.Items()
	e := &Engine{entries: make([]entry, 0, len(items))}
	for _, item := range items {
		lower := strings.ToLower(strings.TrimSpace(item.Name))
		e.entries = append(e.entries, entry{item: item, lower: lower, chars: runes(lower)})
	}
	return e
}

// Search ranks every item that matches query. Each item yields at most one
// result: exact name, then substring either way, then fuzzy ratio at or
// above threshold. Results are ordered by score, ties in catalog order.
// The full list is returned; an empty list means nothing matched.
func (e *Engine) Search(query string, threshold float64) []Result {
	results := []Result{}
	if strings.TrimSpace(query) == "" {
		return results
	}

	q := strings.ToLower(strings.TrimSpace(query))
	qChars := runes(q)

	for _, en := range e.entries {
		var (
			kind  MatchType
			score float64
		)

		switch {
		case q == en.lower:
			kind, score = MatchExact, ExactScore
		case strings.Contains(en.lower, q) || strings.Contains(q, en.lower):
			kind, score = MatchPartial, PartialScore
		default:
			score = ratioOf(qChars, en.chars)
			if score < threshold {
				continue
			}
			kind = MatchFuzzy
		}

		results = append(results, Result{
			ID:        en.item.ID,
			Name:      en.item.Name,
			Category:  en.item.Category,
			Price:     en.item.BasePrice.InexactFloat64(),
			MatchType: kind,
			Score:     score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
