package insight

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// maxSuggestions bounds the number of "did you mean" candidates returned.
const maxSuggestions = 3

// Suggest returns up to three candidates closest to name, best first. Names
// are compared after normalizeName. A candidate qualifies when its edit
// distance is at most a third of the longer name, and 1 edit is always
// tolerated.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}

	needle := normalizeName(name)

	var hits []scored

	for _, c := range candidates {
		hay := normalizeName(c)
		d := levenshtein.Distance(needle, hay, nil)

		limit := max(utf8.RuneCountInString(needle), utf8.RuneCountInString(hay)) / 3
		if d <= max(limit, 1) {
			hits = append(hits, scored{c, d})
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int { return a.dist - b.dist })

	out := make([]string, 0, min(len(hits), maxSuggestions))
	for _, h := range hits[:min(len(hits), maxSuggestions)] {
		out = append(out, h.name)
	}

	return out
}

// normalizeName folds case and drops separators, so "Ship Date",
// "ship_date" and "ShipDate" compare equal.
func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}
