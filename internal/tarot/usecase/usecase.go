package usecase

import (
	"tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/fuzzy"
)

// CatalogUsecase defines the read-only card and spread catalog
type CatalogUsecase interface {
	// ListCards returns the deck in catalog order, optionally filtered
	ListCards(filter CardFilter) ([]domain.Card, error)

	// GetCard returns a card by slug
	GetCard(id string) (*domain.Card, error)

	// SearchCards ranks cards by typo-tolerant similarity to query
	SearchCards(query string, limit int) []SearchResult

	// LookupCard resolves a free-form English or Portuguese name to one card
	LookupCard(name string) (*LookupResult, error)

	// ListSpreads returns the spread catalog
	ListSpreads() []domain.Spread
}

// CardFilter narrows ListCards. Empty fields match everything.
type CardFilter struct {
	Arcana string
	Suit   string
}

// SearchResult is a ranked search hit
type SearchResult struct {
	Card  domain.Card `json:"card"`
	Score float64     `json:"score"`
}

// LookupResult is the card a name resolved to and the tier that matched
type LookupResult struct {
	Card      domain.Card `json:"card"`
	MatchedOn string      `json:"matched_on"`
	Tier      fuzzy.Tier  `json:"tier"`
}
