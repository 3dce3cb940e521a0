package repository

import "tarot-backend/internal/notification/domain"

// SubscriberRepository defines the interface for subscriber data access
type SubscriberRepository interface {
	// Upsert creates the user's subscription or replaces its settings
	Upsert(sub *domain.Subscriber) error

	// FindByUserID returns nil when the user never subscribed
	FindByUserID(userID string) (*domain.Subscriber, error)

	// Deactivate stops deliveries; false when there is nothing to deactivate
	Deactivate(userID string) (bool, error)

	// FindDue returns active subscribers not yet served on date whose
	// delivery hour is at or before hour
	FindDue(date string, hour int) ([]*domain.Subscriber, error)

	// MarkDelivered records a delivery attempt for date
	MarkDelivered(id, date string) error
}
