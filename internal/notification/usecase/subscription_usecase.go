package usecase

import (
	"fmt"
	"strings"

	"tarot-backend/internal/daily"
	"tarot-backend/internal/notification/domain"
	"tarot-backend/internal/notification/repository"
)

type subscriptionUsecase struct {
	repo        repository.SubscriberRepository
	defaultHour int
}

// NewSubscriptionUsecase creates a new SubscriptionUsecase. defaultHour is
// used when the request does not choose a delivery hour.
func NewSubscriptionUsecase(repo repository.SubscriberRepository, defaultHour int) SubscriptionUsecase {
	if defaultHour < 0 || defaultHour > 23 {
		defaultHour = 8
	}
	return &subscriptionUsecase{repo: repo, defaultHour: defaultHour}
}

func (u *subscriptionUsecase) Subscribe(userID string, req SubscribeRequest) (*domain.Subscriber, error) {
	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	sign := strings.ToLower(strings.TrimSpace(req.Sign))
	if sign != "" {
		if _, ok := daily.SignByID(sign); !ok {
			return nil, fmt.Errorf("%w: unknown zodiac sign %q", domain.ErrInvalidSubscription, req.Sign)
		}
	}

	hour := u.defaultHour
	if req.DeliveryHour != nil {
		hour = *req.DeliveryHour
		if hour < 0 || hour > 23 {
			return nil, fmt.Errorf("%w: delivery_hour must be between 0 and 23", domain.ErrInvalidSubscription)
		}
	}

	locale := "en"
	if strings.EqualFold(strings.TrimSpace(req.Locale), "pt") {
		locale = "pt"
	}

	sub := &domain.Subscriber{
		UserID:       userID,
		Phone:        phone,
		Sign:         sign,
		Locale:       locale,
		DeliveryHour: hour,
		Active:       true,
	}
	if existing, err := u.repo.FindByUserID(userID); err != nil {
		return nil, err
	} else if existing != nil {
		sub.ID = existing.ID
		sub.CreatedAt = existing.CreatedAt
		sub.LastDeliveredOn = existing.LastDeliveredOn
	}

	if err := u.repo.Upsert(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (u *subscriptionUsecase) Unsubscribe(userID string) error {
	ok, err := u.repo.Deactivate(userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSubscriptionMissing
	}
	return nil
}

func (u *subscriptionUsecase) GetSubscription(userID string) (*domain.Subscriber, error) {
	sub, err := u.repo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrSubscriptionMissing
	}
	return sub, nil
}

// NormalizePhone strips formatting and returns the number as +<digits>.
// Numbers must hold 8 to 15 digits (E.164).
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", fmt.Errorf("%w: invalid phone number", domain.ErrInvalidSubscription)
		}
	}
	digits := b.String()
	if len(digits) < 8 || len(digits) > 15 {
		return "", fmt.Errorf("%w: invalid phone number", domain.ErrInvalidSubscription)
	}
	return "+" + digits, nil
}
