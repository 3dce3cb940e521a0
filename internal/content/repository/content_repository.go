package repository

import (
	"time"

	"tarot-backend/internal/content/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentRepository defines the interface for card content operations
type ContentRepository interface {
	// GetContent retrieves the content of a card in a locale, nil when missing
	GetContent(cardID, locale string) (*domain.CardContent, error)
	// ListByCard returns every locale stored for a card
	ListByCard(cardID string) ([]*domain.CardContent, error)
	// CardIDsWithContent returns the set of cards that have content in locale
	CardIDsWithContent(locale string) (map[string]bool, error)
	// SaveContent creates or replaces the content of a card+locale
	SaveContent(content *domain.CardContent) error
}

// contentRepository implements ContentRepository interface
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new instance of contentRepository
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{
		db: db,
	}
}

// AutoMigrate creates or updates the card_contents table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.CardContent{})
}

func (r *contentRepository) GetContent(cardID, locale string) (*domain.CardContent, error) {
	var content domain.CardContent
	err := r.db.Where("card_id = ? AND locale = ?", cardID, locale).First(&content).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) ListByCard(cardID string) ([]*domain.CardContent, error) {
	var contents []*domain.CardContent
	err := r.db.Where("card_id = ?", cardID).Order("locale ASC").Find(&contents).Error
	return contents, err
}

func (r *contentRepository) CardIDsWithContent(locale string) (map[string]bool, error) {
	var ids []string
	err := r.db.Model(&domain.CardContent{}).Where("locale = ?", locale).Pluck("card_id", &ids).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(ids))
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// SaveContent upserts on (card_id, locale)
func (r *contentRepository) SaveContent(content *domain.CardContent) error {
	now := time.Now()
	if content.ID == "" {
		content.ID = uuid.New().String()
	}
	if content.CreatedAt.IsZero() {
		content.CreatedAt = now
	}
	content.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "locale"}},
		DoUpdates: clause.AssignmentColumns([]string{"upright", "reversed", "keywords", "source", "model", "updated_at"}),
	}).Create(content).Error
}
