package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckOrderIsFrozen(t *testing.T) {
	cards := Deck()
	require.Len(t, cards, DeckSize)

	assert.Equal(t, "the-fool", cards[0].ID)
	assert.Equal(t, "the-world", cards[21].ID)
	assert.Equal(t, "ace-of-wands", cards[22].ID)
	assert.Equal(t, "king-of-wands", cards[35].ID)
	assert.Equal(t, "ace-of-cups", cards[36].ID)
	assert.Equal(t, "ace-of-swords", cards[50].ID)
	assert.Equal(t, "king-of-pentacles", cards[77].ID)
}

func TestDeckIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Deck() {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.NamePT)
	}
}

func TestCardLookup(t *testing.T) {
	c, ok := CardByID("queen-of-cups")
	require.True(t, ok)
	assert.Equal(t, "Queen of Cups", c.Name)
	assert.Equal(t, "Rainha de Copas", c.NamePT)
	assert.Equal(t, ArcanaMinor, c.Arcana)
	assert.Equal(t, SuitCups, c.Suit)
	assert.Equal(t, 13, c.Number)
	assert.Equal(t, "/cards/queen-of-cups.jpg", c.Image)
	assert.Equal(t, "Rainha de Copas", c.LocalizedName(true))

	_, ok = CardByID("the-joker")
	assert.False(t, ok)

	_, ok = CardAt(DeckSize)
	assert.False(t, ok)
}

func TestDeckReturnsCopy(t *testing.T) {
	cards := Deck()
	cards[0].Name = "changed"
	assert.Equal(t, "The Fool", Deck()[0].Name)
}

func TestSpreads(t *testing.T) {
	s, ok := SpreadByID("celtic-cross")
	require.True(t, ok)
	assert.Len(t, s.Positions, 10)
	assert.False(t, s.Allows(TierFree))
	assert.True(t, s.Allows(TierPremium))

	s, ok = SpreadByID("three-card")
	require.True(t, ok)
	assert.True(t, s.Allows(TierFree))

	assert.Equal(t, TierFree, ParseTier("gold"))
	assert.Equal(t, TierPremium, ParseTier("premium"))
}
