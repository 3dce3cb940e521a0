package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "the hanged man", Normalize("  The-Hanged   Man! "))
	assert.Equal(t, "forca", Normalize("Força"))
	assert.Equal(t, "as de copas", Normalize("Ás de Copas"))
	assert.Equal(t, "", Normalize(" -- "))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 3, LevenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 3, LevenshteinDistance("", "abc"))
	assert.Equal(t, 0, LevenshteinDistance("Star", "star"))
	assert.Equal(t, 0, LevenshteinDistance("Imperatriz", "imperatriz"))
	assert.Equal(t, 1, LevenshteinDistance("mago", "magos"))
}

func TestFuzzyMatch(t *testing.T) {
	assert.True(t, FuzzyMatch("star", "The Star", 1))
	assert.True(t, FuzzyMatch("strar", "The Star", 1))
	assert.True(t, FuzzyMatch("estr", "A Estrela", 1))
	assert.False(t, FuzzyMatch("moon", "The Sun", 1))
	assert.False(t, FuzzyMatch("", "The Sun", 1))
}

func TestRelevanceScore(t *testing.T) {
	exact := RelevanceScore("the star", "The Star", "A Estrela")
	contains := RelevanceScore("star", "The Star", "A Estrela")
	miss := RelevanceScore("star", "The Sun", "O Sol")

	assert.Greater(t, exact, contains)
	assert.Greater(t, contains, 0.0)
	assert.Equal(t, 0.0, miss)

	// second name counts, with less weight
	pt := RelevanceScore("estrela", "The Star", "A Estrela")
	assert.Greater(t, pt, 0.0)
	assert.Less(t, pt, contains)
}

func TestMatchName(t *testing.T) {
	candidates := []Candidate{
		{Names: []string{"The Fool", "O Louco"}},
		{Names: []string{"Strength", "A Força"}},
		{Names: []string{"The Hanged Man", "O Enforcado"}},
		{Names: []string{"Queen of Wands", "Rainha de Paus"}},
		{Names: []string{"Queen of Cups", "Rainha de Copas"}},
		{Names: []string{"King of Cups", "Rei de Copas"}},
	}

	tests := []struct {
		name  string
		input string
		index int
		tier  Tier
	}{
		{"exact english", "the fool", 0, TierExact},
		{"exact portuguese with accents folded", "a forca", 1, TierExact},
		{"name inside input", "King of Cups reversed", 5, TierSubstring},
		{"input inside name", "hanged", 2, TierSubstring},
		{"token overlap", "Queen Cups", 4, TierToken},
		{"token overlap portuguese", "rainha copas", 4, TierToken},
		{"token tie goes to catalog order", "queen pentacles", 3, TierToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := MatchName(tt.input, candidates)
			require.True(t, ok)
			assert.Equal(t, tt.index, m.Index)
			assert.Equal(t, tt.tier, m.Tier)
		})
	}

	t.Run("longest contained name wins", func(t *testing.T) {
		cands := []Candidate{
			{Names: []string{"Man"}},
			{Names: []string{"The Hanged Man"}},
		}
		m, ok := MatchName("I drew the hanged man today", cands)
		require.True(t, ok)
		assert.Equal(t, 1, m.Index)
		assert.Equal(t, "The Hanged Man", m.Name)
	})

	t.Run("no match", func(t *testing.T) {
		for _, input := range []string{"", "banana", "of the", "  "} {
			_, ok := MatchName(input, candidates)
			assert.False(t, ok, input)
		}
	})

	t.Run("pure", func(t *testing.T) {
		a, _ := MatchName("Queen Cups", candidates)
		b, _ := MatchName("Queen Cups", candidates)
		assert.Equal(t, a, b)
	})
}
