package repository

import (
	"time"

	"tarot-backend/internal/notification/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormSubscriberRepository implements SubscriberRepository using GORM
type gormSubscriberRepository struct {
	db *gorm.DB
}

// NewGormSubscriberRepository creates a new GORM-based SubscriberRepository
func NewGormSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &gormSubscriberRepository{db: db}
}

// AutoMigrate creates or updates the daily_subscribers table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Subscriber{})
}

func (r *gormSubscriberRepository) Upsert(sub *domain.Subscriber) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"phone", "sign", "locale", "delivery_hour", "active", "updated_at"}),
	}).Create(sub).Error
}

func (r *gormSubscriberRepository) FindByUserID(userID string) (*domain.Subscriber, error) {
	var sub domain.Subscriber
	err := r.db.Where("user_id = ?", userID).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *gormSubscriberRepository) Deactivate(userID string) (bool, error) {
	res := r.db.Model(&domain.Subscriber{}).
		Where("user_id = ? AND active = ?", userID, true).
		Updates(map[string]interface{}{
			"active":     false,
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *gormSubscriberRepository) FindDue(date string, hour int) ([]*domain.Subscriber, error) {
	var subs []*domain.Subscriber
	err := r.db.Where("active = ? AND delivery_hour <= ? AND (last_delivered_on IS NULL OR last_delivered_on <> ?)",
		true, hour, date).
		Order("created_at ASC").
		Find(&subs).Error
	return subs, err
}

func (r *gormSubscriberRepository) MarkDelivered(id, date string) error {
	return r.db.Model(&domain.Subscriber{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_delivered_on": date,
			"updated_at":        time.Now(),
		}).Error
}
