package match

import (
	"slices"
	"strings"
)

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	// Keep the row as short as possible.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity maps the edit distance onto [0, 1], 1 meaning identical.
func Similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Closest returns the candidate nearest to word, compared case-insensitively.
// Candidates further than maxDistance edits away are ignored. Ties go to the
// candidate listed first.
func Closest(word string, candidates []string, maxDistance int) (string, bool) {
	best, bestDist := "", maxDistance+1
	lw := strings.ToLower(word)

	for _, c := range candidates {
		if d := Levenshtein(lw, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist <= maxDistance
}

// Suggest returns Closest with a distance budget that grows with the word:
// one edit for short words, up to a third of the word for longer ones.
func Suggest(word string, candidates []string) (string, bool) {
	if word == "" || slices.Contains(candidates, word) {
		return "", false
	}

	return Closest(word, candidates, max(1, len([]rune(word))/3))
}
