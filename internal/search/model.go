package search

// MatchType classifies how a result matched the query.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
	MatchFuzzy   MatchType = "fuzzy"
)

// Fixed scores for the non-fuzzy tiers.
const (
	ExactScore   = 1.0
	PartialScore = 0.9
)

// DefaultThreshold is the minimum fuzzy ratio a result needs.
const DefaultThreshold = 0.6

// Result is one ranked candidate for a query.
type Result struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	MatchType MatchType `json:"match_type"`
	Score     float64   `json:"score"`
}
