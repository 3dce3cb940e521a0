package daily

import (
	"errors"
	"fmt"
	"time"

	"tarot-backend/internal/tarot/domain"
)

// ErrUnknownSign is returned for sign ids outside the zodiac table
var ErrUnknownSign = errors.New("unknown zodiac sign")

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// Service resolves daily selections into catalog cards
type Service struct {
	loc *time.Location
	now func() time.Time
}

// NewService creates a Service deciding "today" in loc
func NewService(loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{loc: loc, now: time.Now}
}

// WithClock replaces the wall clock, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Location is where calendar dates are decided
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today returns the current calendar date in the service location
func (s *Service) Today() time.Time {
	return s.now().In(s.loc)
}

// ParseDate parses YYYY-MM-DD in the service location. Empty means today.
func (s *Service) ParseDate(value string) (time.Time, error) {
	if value == "" {
		return s.Today(), nil
	}
	t, err := time.ParseInLocation(DateLayout, value, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return t, nil
}

// CardOfTheDay is the global daily card
func (s *Service) CardOfTheDay(date time.Time) domain.Card {
	return s.cards(date, NoGroup, 1)[0]
}

// Triad is the global three-card draw of the day
func (s *Service) Triad(date time.Time) []domain.Card {
	return s.cards(date, NoGroup, 3)
}

// SignCard is the card of the day for one zodiac sign
func (s *Service) SignCard(date time.Time, signID string) (domain.Card, Sign, error) {
	sign, ok := SignByID(signID)
	if !ok {
		return domain.Card{}, Sign{}, fmt.Errorf("%w: %s", ErrUnknownSign, signID)
	}
	return s.cards(date, sign.Group(), 1)[0], sign, nil
}

func (s *Service) cards(date time.Time, group Group, count int) []domain.Card {
	indices := SelectDailyCards(date, group, domain.DeckSize, count)
	cards := make([]domain.Card, 0, len(indices))
	for _, idx := range indices {
		card, ok := domain.CardAt(idx)
		if !ok {
			continue
		}
		cards = append(cards, card)
	}
	return cards
}
