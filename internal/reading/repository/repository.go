package repository

import (
	"tarot-backend/internal/reading/domain"
)

// ReadingRepository defines the interface for reading history data access
type ReadingRepository interface {
	// Create stores a new reading
	Create(reading *domain.Reading) error

	// FindByID finds a reading by its ID, nil when it does not exist
	FindByID(id string) (*domain.Reading, error)

	// FindByUserID returns a page of the user's readings, newest first, and the total
	FindByUserID(userID string, limit, offset int) ([]*domain.Reading, int64, error)

	// CountByUserID counts the user's saved readings
	CountByUserID(userID string) (int64, error)

	// Delete deletes a reading by ID
	Delete(id string) error
}
