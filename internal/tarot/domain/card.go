package domain

import "fmt"

// Arcana separates the 22 trumps from the 56 suit cards
type Arcana string

const (
	ArcanaMajor Arcana = "major"
	ArcanaMinor Arcana = "minor"
)

// Suit of a minor arcana card. Empty for majors.
type Suit string

const (
	SuitWands     Suit = "wands"
	SuitCups      Suit = "cups"
	SuitSwords    Suit = "swords"
	SuitPentacles Suit = "pentacles"
)

// Card is an immutable catalog entry
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NamePT string `json:"name_pt"`
	Arcana Arcana `json:"arcana"`
	Suit   Suit   `json:"suit,omitempty"`
	Number int    `json:"number"`
	Image  string `json:"image"`
}

// LocalizedName returns the Portuguese name when pt is set
func (c Card) LocalizedName(pt bool) string {
	if pt {
		return c.NamePT
	}
	return c.Name
}

// DeckSize is the size of the full Rider-Waite-Smith deck
const DeckSize = 78

type majorEntry struct {
	id, name, namePT string
}

// Major arcana in trump order. Never reorder: deck indices feed the daily card seed.
var majors = []majorEntry{
	{"the-fool", "The Fool", "O Louco"},
	{"the-magician", "The Magician", "O Mago"},
	{"the-high-priestess", "The High Priestess", "A Sacerdotisa"},
	{"the-empress", "The Empress", "A Imperatriz"},
	{"the-emperor", "The Emperor", "O Imperador"},
	{"the-hierophant", "The Hierophant", "O Hierofante"},
	{"the-lovers", "The Lovers", "Os Enamorados"},
	{"the-chariot", "The Chariot", "O Carro"},
	{"strength", "Strength", "A Força"},
	{"the-hermit", "The Hermit", "O Eremita"},
	{"wheel-of-fortune", "Wheel of Fortune", "A Roda da Fortuna"},
	{"justice", "Justice", "A Justiça"},
	{"the-hanged-man", "The Hanged Man", "O Enforcado"},
	{"death", "Death", "A Morte"},
	{"temperance", "Temperance", "A Temperança"},
	{"the-devil", "The Devil", "O Diabo"},
	{"the-tower", "The Tower", "A Torre"},
	{"the-star", "The Star", "A Estrela"},
	{"the-moon", "The Moon", "A Lua"},
	{"the-sun", "The Sun", "O Sol"},
	{"judgement", "Judgement", "O Julgamento"},
	{"the-world", "The World", "O Mundo"},
}

var suits = []struct {
	suit   Suit
	name   string
	namePT string
}{
	{SuitWands, "Wands", "Paus"},
	{SuitCups, "Cups", "Copas"},
	{SuitSwords, "Swords", "Espadas"},
	{SuitPentacles, "Pentacles", "Ouros"},
}

var ranks = []struct {
	name   string
	namePT string
}{
	{"Ace", "Ás"},
	{"Two", "Dois"},
	{"Three", "Três"},
	{"Four", "Quatro"},
	{"Five", "Cinco"},
	{"Six", "Seis"},
	{"Seven", "Sete"},
	{"Eight", "Oito"},
	{"Nine", "Nove"},
	{"Ten", "Dez"},
	{"Page", "Valete"},
	{"Knight", "Cavaleiro"},
	{"Queen", "Rainha"},
	{"King", "Rei"},
}

var (
	deck    = buildDeck()
	deckIdx = indexDeck(deck)
)

func buildDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for i, m := range majors {
		cards = append(cards, Card{
			ID:     m.id,
			Name:   m.name,
			NamePT: m.namePT,
			Arcana: ArcanaMajor,
			Number: i,
			Image:  "/cards/" + m.id + ".jpg",
		})
	}
	for _, s := range suits {
		for i, r := range ranks {
			id := fmt.Sprintf("%s-of-%s", lowerASCII(r.name), s.suit)
			cards = append(cards, Card{
				ID:     id,
				Name:   r.name + " of " + s.name,
				NamePT: r.namePT + " de " + s.namePT,
				Arcana: ArcanaMinor,
				Suit:   s.suit,
				Number: i + 1,
				Image:  "/cards/" + id + ".jpg",
			})
		}
	}
	return cards
}

func indexDeck(cards []Card) map[string]int {
	idx := make(map[string]int, len(cards))
	for i, c := range cards {
		idx[c.ID] = i
	}
	return idx
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}

// Deck returns a copy of the catalog in its fixed order
func Deck() []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	return out
}

// CardAt returns the card at a deck index
func CardAt(index int) (Card, bool) {
	if index < 0 || index >= len(deck) {
		return Card{}, false
	}
	return deck[index], true
}

// CardByID looks a card up by slug
func CardByID(id string) (Card, bool) {
	i, ok := deckIdx[id]
	if !ok {
		return Card{}, false
	}
	return deck[i], true
}
