package search

import "github.com/pmezard/go-difflib/difflib"

// Ratio is the matching-blocks similarity of a and b: 2*M/T where M is the
// number of characters in the matching blocks and T the combined length.
// 1.0 means identical, 0.0 means no common characters. Both empty is 1.0.
// Comparison is case-sensitive; Engine lower-cases both sides first.
func Ratio(a, b string) float64 {
	return ratioOf(runes(a), runes(b))
}

func ratioOf(a, b []string) float64 {
	return difflib.NewMatcher(a, b).Ratio()
}

// runes splits s into one element per code point so the matcher compares
// characters instead of lines.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
