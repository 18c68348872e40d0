// Package suggest finds the known site path closest to a path that was not
// found, so the 404 page can offer "you were probably looking for" links.
package suggest

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Threshold is the rating a match must exceed to be suggested.
const Threshold = 0.7

// Excluded paths never make sense as a suggestion.
var Excluded = map[string]struct{}{
	"/dev-404-page": {},
	"/404":          {},
	"/404/":         {},
	"/404.html":     {},
}

// Match is a candidate path and its similarity rating in [0, 1].
type Match struct {
	Target string
	Rating float64
}

// dice is case-sensitive Sørensen–Dice over character bigrams.
var dice = metrics.NewSorensenDice()

// Rate scores the similarity of two paths.
func Rate(a, b string) float64 {
	return strutil.Similarity(a, b, dice)
}

// BestMatch rates path against every candidate and returns the highest
// scoring one. Ties keep the earliest candidate. The second result is false
// when no candidates remain after exclusions.
func BestMatch(path string, candidates []string) (Match, bool) {
	var best Match
	found := false
	for _, c := range candidates {
		if _, skip := Excluded[c]; skip {
			continue
		}
		r := Rate(path, c)
		if !found || r > best.Rating {
			best = Match{Target: c, Rating: r}
			found = true
		}
	}
	return best, found
}

// Suggest returns the best match for path only if its rating is strictly
// greater than threshold.
func Suggest(path string, candidates []string, threshold float64) (Match, bool) {
	m, ok := BestMatch(path, candidates)
	if !ok || m.Rating <= threshold {
		return Match{}, false
	}
	return m, true
}
