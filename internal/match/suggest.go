package match

import (
	"cmp"
	"slices"
	"strings"
)

// MinSimilarity is the score a candidate needs to be suggested.
const MinSimilarity = 0.5

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates close to name, best first. Names
// are compared by their simple form, and a candidate whose normalized simple
// name contains the normalized input always qualifies. Ties keep the
// candidates' order. Duplicates are reported once.
func Suggest(name string, candidates []string, limit int) []string {
	want := Normalize(SimpleName(name))
	if want == "" || limit <= 0 {
		return nil
	}

	seen := make(map[string]bool, len(candidates))

	var ranked []scored

	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true

		simple := SimpleName(c)

		score := Similarity(want, simple)
		if strings.Contains(Normalize(simple), want) {
			score = max(score, MinSimilarity)
		}

		if score >= MinSimilarity {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, s := range ranked[:min(limit, len(ranked))] {
		out = append(out, s.name)
	}

	return out
}
