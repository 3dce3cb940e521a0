package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidSubscription = errors.New("invalid subscription")
	ErrSubscriptionMissing = errors.New("subscription not found")
)

// Subscriber receives the daily card over WhatsApp (and push, when the
// user has registered devices)
type Subscriber struct {
	ID           string `json:"id" gorm:"primaryKey"`
	UserID       string `json:"user_id" gorm:"uniqueIndex;not null"`
	Phone        string `json:"phone" gorm:"not null"`
	Sign         string `json:"sign,omitempty"` // empty means the global card
	Locale       string `json:"locale" gorm:"default:en"`
	DeliveryHour int    `json:"delivery_hour" gorm:"default:8"`
	Active       bool   `json:"active" gorm:"index;default:true"`
	// LastDeliveredOn is the YYYY-MM-DD of the last delivery attempt
	LastDeliveredOn string    `json:"last_delivered_on,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Subscriber) TableName() string {
	return "daily_subscribers"
}
