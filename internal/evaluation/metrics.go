package evaluation

import "strings"

// Matches compares an extracted value with the label, ignoring case and
// surrounding whitespace.
func Matches(expected, got string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(got))
}

// ReciprocalRank is 1/rank of expected within the first k entries of
// ranked, or 0 when it is absent.
func ReciprocalRank(expected string, ranked []string, k int) float64 {
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	for i, r := range ranked {
		if Matches(expected, r) {
			return 1.0 / float64(i+1)
		}
	}
	return 0.0
}
