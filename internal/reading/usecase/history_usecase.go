package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tarot-backend/internal/reading/domain"
	"tarot-backend/internal/reading/repository"
	tarot "tarot-backend/internal/tarot/domain"
)

// historyUsecase implements HistoryUsecase interface
type historyUsecase struct {
	readingRepo repository.ReadingRepository
	freeLimit   int
}

// NewHistoryUsecase creates a new instance of historyUsecase.
// freeLimit caps how many readings a free user can keep.
func NewHistoryUsecase(readingRepo repository.ReadingRepository, freeLimit int) HistoryUsecase {
	return &historyUsecase{
		readingRepo: readingRepo,
		freeLimit:   freeLimit,
	}
}

func (u *historyUsecase) SaveReading(userID string, tier tarot.Tier, req SaveReadingRequest) (*domain.Reading, error) {
	if len(req.Cards) == 0 {
		return nil, fmt.Errorf("%w: at least one card is required", domain.ErrInvalidRequest)
	}

	if tier != tarot.TierPremium && u.freeLimit > 0 {
		count, err := u.readingRepo.CountByUserID(userID)
		if err != nil {
			return nil, err
		}
		if count >= int64(u.freeLimit) {
			return nil, fmt.Errorf("%w: free plan keeps at most %d readings", domain.ErrForbidden, u.freeLimit)
		}
	}

	locale := req.Locale
	if locale != "pt" {
		locale = "en"
	}

	reading := &domain.Reading{
		ID:             uuid.New().String(),
		UserID:         userID,
		SpreadID:       req.SpreadID,
		Question:       req.Question,
		Cards:          req.Cards,
		Interpretation: req.Interpretation,
		Locale:         locale,
		CreatedAt:      time.Now(),
	}

	if err := u.readingRepo.Create(reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func (u *historyUsecase) GetReading(userID, readingID string) (*domain.Reading, error) {
	reading, err := u.readingRepo.FindByID(readingID)
	if err != nil {
		return nil, err
	}
	if reading == nil {
		return nil, domain.ErrNotFound
	}
	if reading.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return reading, nil
}

func (u *historyUsecase) ListReadings(userID string, limit, offset int) ([]*domain.Reading, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.readingRepo.FindByUserID(userID, limit, offset)
}

func (u *historyUsecase) DeleteReading(userID, readingID string) error {
	reading, err := u.GetReading(userID, readingID)
	if err != nil {
		return err
	}
	return u.readingRepo.Delete(reading.ID)
}
