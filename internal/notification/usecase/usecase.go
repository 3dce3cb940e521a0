package usecase

import (
	"context"
	"time"

	"tarot-backend/internal/notification/domain"
	"tarot-backend/pkg/fcm"
)

// SubscriptionUsecase manages a user's WhatsApp daily card subscription
type SubscriptionUsecase interface {
	Subscribe(userID string, req SubscribeRequest) (*domain.Subscriber, error)
	Unsubscribe(userID string) error
	GetSubscription(userID string) (*domain.Subscriber, error)
}

// DeliveryUsecase sends the daily card to every subscriber that is due
type DeliveryUsecase interface {
	DeliverAll(ctx context.Context, now time.Time) (*DeliveryResult, error)
}

// SubscribeRequest is the body of POST /api/subscriptions/whatsapp
type SubscribeRequest struct {
	Phone        string `json:"phone" binding:"required"`
	Sign         string `json:"sign"`
	Locale       string `json:"locale"`
	DeliveryHour *int   `json:"delivery_hour"`
}

// DeliveryResult summarises one DeliverAll run
type DeliveryResult struct {
	Date   string `json:"date"`
	Due    int    `json:"due"`
	Sent   int    `json:"sent"`
	Failed int    `json:"failed"`
	Pushed int    `json:"pushed"`
}

// TextSender delivers a WhatsApp text message
type TextSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// PushSender delivers a push notification, returning the tokens that failed
type PushSender interface {
	SendToDevices(ctx context.Context, tokens []string, notification fcm.NotificationData) ([]string, error)
}
