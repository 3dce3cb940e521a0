package usecase

import (
	"fmt"
	"sort"
	"strings"

	"tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/fuzzy"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = domain.DeckSize
)

type catalogUsecase struct {
	deck       []domain.Card
	candidates []fuzzy.Candidate
}

// NewCatalogUsecase creates a new CatalogUsecase over the built-in deck
func NewCatalogUsecase() CatalogUsecase {
	deck := domain.Deck()
	candidates := make([]fuzzy.Candidate, len(deck))
	for i, c := range deck {
		candidates[i] = fuzzy.Candidate{Names: []string{c.Name, c.NamePT}}
	}
	return &catalogUsecase{deck: deck, candidates: candidates}
}

func (u *catalogUsecase) ListCards(filter CardFilter) ([]domain.Card, error) {
	arcana := domain.Arcana(strings.ToLower(strings.TrimSpace(filter.Arcana)))
	suit := domain.Suit(strings.ToLower(strings.TrimSpace(filter.Suit)))

	switch arcana {
	case "", domain.ArcanaMajor, domain.ArcanaMinor:
	default:
		return nil, fmt.Errorf("%w: unknown arcana %q", domain.ErrInvalidFilter, filter.Arcana)
	}
	switch suit {
	case "", domain.SuitWands, domain.SuitCups, domain.SuitSwords, domain.SuitPentacles:
	default:
		return nil, fmt.Errorf("%w: unknown suit %q", domain.ErrInvalidFilter, filter.Suit)
	}

	cards := make([]domain.Card, 0, len(u.deck))
	for _, c := range u.deck {
		if arcana != "" && c.Arcana != arcana {
			continue
		}
		if suit != "" && c.Suit != suit {
			continue
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (u *catalogUsecase) GetCard(id string) (*domain.Card, error) {
	card, ok := domain.CardByID(strings.ToLower(strings.TrimSpace(id)))
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return &card, nil
}

func (u *catalogUsecase) SearchCards(query string, limit int) []SearchResult {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if fuzzy.Normalize(query) == "" {
		return []SearchResult{}
	}

	threshold := fuzzy.Threshold(query)
	results := make([]SearchResult, 0)
	for _, c := range u.deck {
		score := fuzzy.RelevanceScore(query, c.Name, c.NamePT)
		if score == 0 && (fuzzy.FuzzyMatch(query, c.Name, threshold) || fuzzy.FuzzyMatch(query, c.NamePT, threshold)) {
			score = 1
		}
		if score > 0 {
			results = append(results, SearchResult{Card: c, Score: score})
		}
	}

	// Stable: equal scores keep catalog order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (u *catalogUsecase) LookupCard(name string) (*LookupResult, error) {
	m, ok := fuzzy.MatchName(name, u.candidates)
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return &LookupResult{Card: u.deck[m.Index], MatchedOn: m.Name, Tier: m.Tier}, nil
}

func (u *catalogUsecase) ListSpreads() []domain.Spread {
	return domain.Spreads()
}
