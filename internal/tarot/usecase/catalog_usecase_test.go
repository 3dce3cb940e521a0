package usecase

import (
	"testing"

	"tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/fuzzy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCards(t *testing.T) {
	uc := NewCatalogUsecase()

	all, err := uc.ListCards(CardFilter{})
	require.NoError(t, err)
	assert.Len(t, all, domain.DeckSize)
	assert.Equal(t, "the-fool", all[0].ID)

	majors, err := uc.ListCards(CardFilter{Arcana: "Major"})
	require.NoError(t, err)
	assert.Len(t, majors, 22)

	cups, err := uc.ListCards(CardFilter{Suit: "cups"})
	require.NoError(t, err)
	assert.Len(t, cups, 14)
	assert.Equal(t, "ace-of-cups", cups[0].ID)

	none, err := uc.ListCards(CardFilter{Arcana: "major", Suit: "cups"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = uc.ListCards(CardFilter{Suit: "coins"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
	_, err = uc.ListCards(CardFilter{Arcana: "middle"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestGetCard(t *testing.T) {
	uc := NewCatalogUsecase()

	card, err := uc.GetCard("The-Star")
	require.NoError(t, err)
	assert.Equal(t, "The Star", card.Name)

	_, err = uc.GetCard("the-void")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}

func TestSearchCards(t *testing.T) {
	uc := NewCatalogUsecase()

	results := uc.SearchCards("strar", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "the-star", results[0].Card.ID, "one typo away")

	results = uc.SearchCards("estrela", 5)
	require.NotEmpty(t, results)
	assert.Equal(t, "the-star", results[0].Card.ID, "portuguese names are searched")

	results = uc.SearchCards("cups", 0)
	assert.Len(t, results, defaultSearchLimit)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	assert.Empty(t, uc.SearchCards("  ", 5))
}

func TestLookupCard(t *testing.T) {
	uc := NewCatalogUsecase()

	tests := []struct {
		input string
		id    string
		tier  fuzzy.Tier
	}{
		{"the star", "the-star", fuzzy.TierExact},
		{"A ESTRELA", "the-star", fuzzy.TierExact},
		{"I pulled the Queen of Cups today", "queen-of-cups", fuzzy.TierSubstring},
		{"Queen Cups", "queen-of-cups", fuzzy.TierToken},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := uc.LookupCard(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.id, res.Card.ID)
			assert.Equal(t, tt.tier, res.Tier)
		})
	}

	_, err := uc.LookupCard("xyzzy")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
}
