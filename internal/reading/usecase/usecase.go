package usecase

import (
	"context"

	"tarot-backend/internal/reading/domain"
	tarot "tarot-backend/internal/tarot/domain"
)

// Access describes who is asking for an interpretation. Gate is false in
// guest mode, where premium spreads are not restricted.
type Access struct {
	Gate bool
	Tier tarot.Tier
}

// InterpretUsecase produces AI interpretations for spreads, through the cache
type InterpretUsecase interface {
	// Configured reports whether an AI provider is available
	Configured() bool

	// Interpret validates the request, answers from cache when possible and
	// otherwise calls the provider once
	Interpret(ctx context.Context, req domain.InterpretRequest, access Access) (*domain.Interpretation, error)
}

// HistoryUsecase defines the reading history business logic
type HistoryUsecase interface {
	// SaveReading stores a reading for the user, enforcing the free tier limit
	SaveReading(userID string, tier tarot.Tier, req SaveReadingRequest) (*domain.Reading, error)

	// GetReading retrieves a reading by ID (with ownership check)
	GetReading(userID, readingID string) (*domain.Reading, error)

	// ListReadings retrieves the user's readings, newest first
	ListReadings(userID string, limit, offset int) ([]*domain.Reading, int64, error)

	// DeleteReading deletes a reading (with ownership check)
	DeleteReading(userID, readingID string) error
}

// SaveReadingRequest represents the body of POST /api/readings
type SaveReadingRequest struct {
	SpreadID       string             `json:"spread_id" binding:"required"`
	Question       string             `json:"question"`
	Cards          []domain.DrawnCard `json:"cards" binding:"required,min=1"`
	Interpretation string             `json:"interpretation"`
	Locale         string             `json:"locale"`
}
