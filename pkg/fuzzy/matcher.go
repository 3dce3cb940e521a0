package fuzzy

import "strings"

// Tier says which stage of the name lookup produced a match
type Tier string

const (
	TierExact     Tier = "exact"
	TierSubstring Tier = "substring"
	TierToken     Tier = "token"
)

// Candidate is one entry to match against, with every name it is known by
type Candidate struct {
	Names []string
}

// Match is the winning candidate and how it was found
type Match struct {
	Index int
	Name  string
	Tier  Tier
}

// minSubstringLen stops tiny inputs like "a" from matching inside every name
const minSubstringLen = 3

var stopwords = map[string]bool{
	"the": true, "of": true,
	"o": true, "a": true, "os": true,
	"de": true, "do": true, "da": true, "dos": true, "das": true,
}

// MatchName resolves a free-form name against candidates in three tiers,
// stopping at the first tier that matches:
//
//  1. exact: normalized input equals a normalized name
//  2. substring: a name appears inside the input (longest name wins), else the
//     input appears inside a name (shortest name wins)
//  3. token: most shared non-stopword tokens, at least one
//
// Ties go to the earliest candidate. The lookup is a pure function of its inputs.
func MatchName(input string, candidates []Candidate) (Match, bool) {
	in := Normalize(input)
	if in == "" {
		return Match{}, false
	}

	if m, ok := matchExact(in, candidates); ok {
		return m, true
	}
	if m, ok := matchSubstring(in, candidates); ok {
		return m, true
	}
	return matchTokens(in, candidates)
}

func matchExact(in string, candidates []Candidate) (Match, bool) {
	for i, c := range candidates {
		for _, name := range c.Names {
			if Normalize(name) == in {
				return Match{Index: i, Name: name, Tier: TierExact}, true
			}
		}
	}
	return Match{}, false
}

func matchSubstring(in string, candidates []Candidate) (Match, bool) {
	// name inside input: "king of cups reversed"
	best, bestLen := -1, 0
	bestName := ""
	for i, c := range candidates {
		for _, name := range c.Names {
			n := Normalize(name)
			if len(n) < minSubstringLen || !containsPhrase(in, n) {
				continue
			}
			if len(n) > bestLen {
				best, bestLen, bestName = i, len(n), name
			}
		}
	}
	if best >= 0 {
		return Match{Index: best, Name: bestName, Tier: TierSubstring}, true
	}

	// input inside name: "hanged"
	if len(in) < minSubstringLen {
		return Match{}, false
	}
	best, bestLen = -1, 0
	for i, c := range candidates {
		for _, name := range c.Names {
			n := Normalize(name)
			if !strings.Contains(n, in) {
				continue
			}
			if best < 0 || len(n) < bestLen {
				best, bestLen, bestName = i, len(n), name
			}
		}
	}
	if best >= 0 {
		return Match{Index: best, Name: bestName, Tier: TierSubstring}, true
	}
	return Match{}, false
}

func matchTokens(in string, candidates []Candidate) (Match, bool) {
	inTokens := tokenSet(in)
	if len(inTokens) == 0 {
		return Match{}, false
	}

	best, bestScore := -1, 0
	bestName := ""
	for i, c := range candidates {
		for _, name := range c.Names {
			score := 0
			for tok := range tokenSet(Normalize(name)) {
				if inTokens[tok] {
					score++
				}
			}
			if score > bestScore {
				best, bestScore, bestName = i, score, name
			}
		}
	}
	if best < 0 {
		return Match{}, false
	}
	return Match{Index: best, Name: bestName, Tier: TierToken}, true
}

// containsPhrase matches whole words only, so "ace of cups" is not found in "space of cupsx"
func containsPhrase(text, phrase string) bool {
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}

func tokenSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		if stopwords[tok] {
			continue
		}
		set[tok] = true
	}
	return set
}
