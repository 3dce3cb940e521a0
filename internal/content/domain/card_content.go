package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidContent    = errors.New("invalid card content")
	ErrNotConfigured     = errors.New("AI service is not configured")
	ErrSearchUnavailable = errors.New("semantic search is not configured")
	ErrUpstream          = errors.New("content generation failed")
)

const (
	SourceGenerated = "generated"
	SourceImported  = "imported"
)

// CardContent is the long-form meaning of one card in one locale
type CardContent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CardID    string    `json:"card_id" gorm:"uniqueIndex:idx_card_locale;not null"`
	Locale    string    `json:"locale" gorm:"uniqueIndex:idx_card_locale;not null"`
	Upright   string    `json:"upright" gorm:"type:text"`
	Reversed  string    `json:"reversed" gorm:"type:text"`
	Keywords  []string  `json:"keywords" gorm:"serializer:json;type:jsonb"`
	Source    string    `json:"source"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (CardContent) TableName() string {
	return "card_contents"
}

// DocumentID is the vector index id of this content
func (c *CardContent) DocumentID() string {
	return c.CardID + ":" + c.Locale
}
