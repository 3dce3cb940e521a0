package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotConfigured  = errors.New("AI service is not configured")
	ErrUpstream       = errors.New("interpretation provider failed")
	ErrNotFound       = errors.New("reading not found")
	ErrForbidden      = errors.New("forbidden")
)

// DrawnCard is a card as it was laid out in a session
type DrawnCard struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	NamePT     string `json:"namePt,omitempty"`
	IsReversed bool   `json:"isReversed,omitempty"`
}

// SpreadRef identifies the spread a session used. Positions are only
// consulted for spreads the catalog does not know.
type SpreadRef struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Positions []string `json:"positions,omitempty"`
}

// Session is one reading: the spread, the drawn cards in position order and
// the querent's question
type Session struct {
	Cards           []DrawnCard `json:"cards"`
	Spread          SpreadRef   `json:"spread"`
	Question        string      `json:"question,omitempty"`
	ReversedIndices []int       `json:"reversedIndices,omitempty"`
}

// Reversed reports whether the card at position i is reversed, either
// flagged on the card or listed in ReversedIndices
func (s Session) Reversed(i int) bool {
	if i >= 0 && i < len(s.Cards) && s.Cards[i].IsReversed {
		return true
	}
	for _, idx := range s.ReversedIndices {
		if idx == i {
			return true
		}
	}
	return false
}

// InterpretRequest is the body of POST /api/interpret
type InterpretRequest struct {
	Session      Session `json:"session"`
	IsPortuguese bool    `json:"isPortuguese"`
}

// Interpretation is the result handed back to the client
type Interpretation struct {
	Text   string `json:"text"`
	Cached bool   `json:"cached"`
}

// Reading is a saved reading in a user's history
type Reading struct {
	ID             string      `json:"id" gorm:"primaryKey"`
	UserID         string      `json:"user_id" gorm:"index;not null"`
	SpreadID       string      `json:"spread_id" gorm:"not null"`
	Question       string      `json:"question,omitempty"`
	Cards          []DrawnCard `json:"cards" gorm:"serializer:json;type:jsonb"`
	Interpretation string      `json:"interpretation,omitempty" gorm:"type:text"`
	Locale         string      `json:"locale" gorm:"default:en"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (Reading) TableName() string {
	return "tarot_readings"
}
