package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tarot-backend/internal/reading/domain"
)

// gormReadingRepository implements ReadingRepository using GORM
type gormReadingRepository struct {
	db *gorm.DB
}

// NewGormReadingRepository creates a new GORM-based ReadingRepository
func NewGormReadingRepository(db *gorm.DB) ReadingRepository {
	return &gormReadingRepository{db: db}
}

// AutoMigrate creates or updates the tarot_readings table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Reading{})
}

func (r *gormReadingRepository) Create(reading *domain.Reading) error {
	if reading.ID == "" {
		reading.ID = uuid.New().String()
	}
	if reading.CreatedAt.IsZero() {
		reading.CreatedAt = time.Now()
	}
	return r.db.Create(reading).Error
}

func (r *gormReadingRepository) FindByID(id string) (*domain.Reading, error) {
	var reading domain.Reading
	err := r.db.Where("id = ?", id).First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (r *gormReadingRepository) FindByUserID(userID string, limit, offset int) ([]*domain.Reading, int64, error) {
	var readings []*domain.Reading
	var total int64

	query := r.db.Model(&domain.Reading{}).Where("user_id = ?", userID)

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&readings).Error
	return readings, total, err
}

func (r *gormReadingRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Reading{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *gormReadingRepository) Delete(id string) error {
	return r.db.Delete(&domain.Reading{}, "id = ?", id).Error
}
