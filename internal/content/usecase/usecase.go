package usecase

import (
	"context"

	"tarot-backend/internal/content/domain"
	tarot "tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/fuzzy"
)

// ContentUsecase defines admin generation and import of card meanings
type ContentUsecase interface {
	// GenerateCard writes the meaning of one card through the AI provider and stores it
	GenerateCard(ctx context.Context, cardID, locale string) (*domain.CardContent, error)

	// QueueAll queues every card without content in locale for background generation
	QueueAll(locale string) (*QueueResult, error)

	// Import stores externally supplied meanings, resolving card names fuzzily
	Import(ctx context.Context, items []ImportItem) (*ImportResult, error)

	// GetCardContent returns every stored locale of a card
	GetCardContent(cardID string) ([]*domain.CardContent, error)

	// SemanticSearch finds cards whose meaning is close to query
	SemanticSearch(ctx context.Context, query, locale string, limit int) ([]SearchHit, error)

	// SearchEnabled reports whether a vector index is configured
	SearchEnabled() bool
}

// VectorIndex stores and queries card meaning embeddings
type VectorIndex interface {
	UpsertCardEmbedding(ctx context.Context, docID, cardID, locale, text string) error
	SemanticSearch(ctx context.Context, locale, query string, limit int) ([]string, []float64, error)
}

// ImportItem is one externally supplied meaning
type ImportItem struct {
	Name     string   `json:"name"`
	Locale   string   `json:"locale"`
	Upright  string   `json:"upright"`
	Reversed string   `json:"reversed"`
	Keywords []string `json:"keywords"`
}

// ImportMatch records which card an imported name resolved to
type ImportMatch struct {
	Name   string     `json:"name"`
	CardID string     `json:"card_id"`
	Tier   fuzzy.Tier `json:"tier"`
}

// ImportResult summarises an import
type ImportResult struct {
	Imported  int           `json:"imported"`
	Matches   []ImportMatch `json:"matches"`
	Unmatched []string      `json:"unmatched"`
}

// QueueResult summarises a QueueAll call
type QueueResult struct {
	Locale  string `json:"locale"`
	Queued  int    `json:"queued"`
	Skipped int    `json:"skipped"` // already have content
	Dropped int    `json:"dropped"` // queue full
}

// SearchHit is a semantic search result
type SearchHit struct {
	Card     tarot.Card `json:"card"`
	Locale   string     `json:"locale"`
	Distance float64    `json:"distance"`
}
