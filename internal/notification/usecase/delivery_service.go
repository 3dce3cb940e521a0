package usecase

import (
	"context"
	"sync"
	"time"

	authrepo "tarot-backend/internal/auth/repository"
	"tarot-backend/internal/daily"
	"tarot-backend/internal/notification/domain"
	"tarot-backend/internal/notification/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the deliveries in flight
const DefaultConcurrency = 8

// DeliveryService fans the daily card out to subscribers
type DeliveryService struct {
	repo        repository.SubscriberRepository
	fcmRepo     authrepo.FCMTokenRepository
	daily       *daily.Service
	text        TextSender
	push        PushSender
	appURL      string
	concurrency int
	logger      *zap.Logger
}

// DeliveryConfig wires the optional channels. A nil sender disables it.
type DeliveryConfig struct {
	Text        TextSender
	Push        PushSender
	FCMRepo     authrepo.FCMTokenRepository
	AppURL      string
	Concurrency int
}

func NewDeliveryService(repo repository.SubscriberRepository, dailyService *daily.Service, cfg DeliveryConfig, logger *zap.Logger) *DeliveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return &DeliveryService{
		repo:        repo,
		fcmRepo:     cfg.FCMRepo,
		daily:       dailyService,
		text:        cfg.Text,
		push:        cfg.Push,
		appURL:      cfg.AppURL,
		concurrency: cfg.Concurrency,
		logger:      logger.Named("delivery"),
	}
}

// Enabled reports whether any delivery channel is configured
func (s *DeliveryService) Enabled() bool {
	return s.text != nil || (s.push != nil && s.fcmRepo != nil)
}

type deliveryCounts struct {
	mu                   sync.Mutex
	sent, failed, pushed int
}

func (c *deliveryCounts) add(sent, failed, pushed int) {
	c.mu.Lock()
	c.sent += sent
	c.failed += failed
	c.pushed += pushed
	c.mu.Unlock()
}

// DeliverAll sends today's card to every active subscriber whose delivery
// hour has passed and who has not been served today. Each subscriber is
// marked delivered after the attempt, whatever its outcome.
func (s *DeliveryService) DeliverAll(ctx context.Context, now time.Time) (*DeliveryResult, error) {
	local := now.In(s.daily.Location())
	dateKey := local.Format(daily.DateLayout)
	result := &DeliveryResult{Date: dateKey}

	if !s.Enabled() {
		s.logger.Debug("no delivery channel configured")
		return result, nil
	}

	subs, err := s.repo.FindDue(dateKey, local.Hour())
	if err != nil {
		return nil, err
	}
	result.Due = len(subs)
	if len(subs) == 0 {
		return result, nil
	}

	s.logger.Info("delivering daily cards", zap.String("date", dateKey), zap.Int("due", len(subs)))

	var counts deliveryCounts
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s.deliver(gctx, sub, local, dateKey, &counts)
			return nil
		})
	}
	err = g.Wait()

	result.Sent, result.Failed, result.Pushed = counts.sent, counts.failed, counts.pushed
	s.logger.Info("daily delivery finished",
		zap.String("date", dateKey),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("pushed", result.Pushed))
	return result, err
}

func (s *DeliveryService) deliver(ctx context.Context, sub *domain.Subscriber, date time.Time, dateKey string, counts *deliveryCounts) {
	msg := dailyMessage{Date: date, Locale: sub.Locale}
	if sub.Sign != "" {
		card, sign, err := s.daily.SignCard(date, sub.Sign)
		if err == nil {
			msg.Card, msg.Sign = card, &sign
		} else {
			s.logger.Warn("unknown sign on subscriber, sending global card",
				zap.String("subscriber_id", sub.ID), zap.String("sign", sub.Sign))
		}
	}
	if msg.Sign == nil {
		msg.Card = s.daily.CardOfTheDay(date)
	}

	sent, failed := 0, 0
	if s.text != nil {
		if _, err := s.text.SendText(ctx, sub.Phone, msg.text(s.appURL)); err != nil {
			s.logger.Warn("whatsapp delivery failed", zap.String("subscriber_id", sub.ID), zap.Error(err))
			failed = 1
		} else {
			sent = 1
		}
	}

	pushed := s.pushToDevices(ctx, sub.UserID, msg)
	counts.add(sent, failed, pushed)

	// Mark delivered regardless of success (to avoid spamming)
	if err := s.repo.MarkDelivered(sub.ID, dateKey); err != nil {
		s.logger.Error("failed to mark subscriber delivered", zap.String("subscriber_id", sub.ID), zap.Error(err))
	}
}

// pushToDevices sends the card to the user's registered devices and removes
// the tokens FCM rejected
func (s *DeliveryService) pushToDevices(ctx context.Context, userID string, msg dailyMessage) int {
	if s.push == nil || s.fcmRepo == nil {
		return 0
	}

	tokens, err := s.fcmRepo.GetTokensByUserID(userID)
	if err != nil {
		s.logger.Warn("failed to load FCM tokens", zap.String("user_id", userID), zap.Error(err))
		return 0
	}
	if len(tokens) == 0 {
		return 0
	}

	tokenStrings := make([]string, 0, len(tokens))
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failedTokens, err := s.push.SendToDevices(ctx, tokenStrings, msg.push(s.appURL))
	if err != nil {
		s.logger.Warn("push delivery failed", zap.String("user_id", userID), zap.Error(err))
		return 0
	}

	for _, token := range failedTokens {
		if err := s.fcmRepo.DeleteToken(token); err != nil {
			s.logger.Warn("failed to delete FCM token", zap.Error(err))
		}
	}
	return len(tokenStrings) - len(failedTokens)
}
