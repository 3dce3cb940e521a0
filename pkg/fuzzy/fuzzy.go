package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LevenshteinDistance calculates the edit distance between two strings
// This measures how many single-character edits (insertions, deletions, or substitutions)
// are required to change one string into another
func LevenshteinDistance(s1, s2 string) int {
	// Normalize strings: lowercase and remove accents for better matching
	s1 = Normalize(s1)
	s2 = Normalize(s2)

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Two rows are enough
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// FuzzyMatch checks if query fuzzy-matches text within a given threshold
// threshold is the maximum allowed edit distance
func FuzzyMatch(query, text string, threshold int) bool {
	query = Normalize(query)
	text = Normalize(text)
	if query == "" {
		return false
	}

	// If query is contained in text, it's a match
	if strings.Contains(text, query) {
		return true
	}

	// Check if any word in text fuzzy-matches the query
	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	// Card names are short, compare the whole name too
	distance := LevenshteinDistance(query, text)
	maxDistance := threshold + len(query)/5
	return distance <= maxDistance
}

// Threshold picks the typo tolerance for a query based on its length
func Threshold(query string) int {
	switch n := len(Normalize(query)); {
	case n <= 3:
		return 1
	case n >= 8:
		return 3
	default:
		return 2
	}
}

// RelevanceScore scores how relevant a card is to a search query.
// Higher score = more relevant. names are scored in order with decreasing weight.
func RelevanceScore(query string, names ...string) float64 {
	query = Normalize(query)
	if query == "" {
		return 0
	}
	score := 0.0

	weight := 1.0
	for _, name := range names {
		nameNorm := Normalize(name)
		if nameNorm == "" {
			continue
		}
		if nameNorm == query {
			score += 200 * weight
		} else if strings.Contains(nameNorm, query) {
			score += 100 * weight
			// Bonus for exact word match
			if containsWord(nameNorm, query) {
				score += 50 * weight
			}
		} else {
			// Fuzzy match per word
			for _, word := range strings.Fields(nameNorm) {
				dist := LevenshteinDistance(query, word)
				if dist <= 2 {
					score += (50 - float64(dist)*15) * weight
				}
				if strings.HasPrefix(word, query) {
					score += 40 * weight
				}
			}
		}
		weight *= 0.8
	}

	return score
}

// Helper functions

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// removeAccents removes diacritical marks from a string
// ("Força" -> "Forca", "Ás" -> "As")
func removeAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases, folds accents, turns punctuation into spaces and collapses whitespace
func Normalize(s string) string {
	s = strings.ToLower(removeAccents(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// containsWord checks if text contains query as a whole word
func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
