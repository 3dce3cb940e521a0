package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tarot-backend/internal/daily"
	"tarot-backend/internal/notification/usecase"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// DeliveryTrigger is the payload published by Cloud Scheduler. Date is
// optional; when set, every subscriber not yet served on that date is due.
type DeliveryTrigger struct {
	Date string `json:"date"`
}

// Service listens on Pub/Sub and runs daily deliveries on demand
type Service struct {
	pubsubClient *pubsub.Client
	delivery     usecase.DeliveryUsecase
	loc          *time.Location
	now          func() time.Time
	topicName    string
	subName      string
	logger       *zap.Logger
}

func NewService(ctx context.Context, projectID, topicName, credentialsFile string, delivery usecase.DeliveryUsecase, loc *time.Location, logger *zap.Logger) (*Service, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	s := newService(delivery, loc, logger)
	s.pubsubClient = client
	s.topicName = topicName
	s.subName = topicName + "-sub" // Convention: topic-sub
	return s, nil
}

func newService(delivery usecase.DeliveryUsecase, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		delivery: delivery,
		loc:      loc,
		now:      time.Now,
		logger:   logger.Named("pubsub"),
	}
}

// Start blocks receiving trigger messages until ctx is cancelled
func (s *Service) Start(ctx context.Context) {
	s.logger.Info("starting delivery trigger", zap.String("topic", s.topicName), zap.String("subscription", s.subName))

	// Ensure subscription exists
	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		s.logger.Error("error checking subscription existence", zap.Error(err))
		return
	}

	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		topicExists, err := topic.Exists(ctx)
		if err != nil {
			s.logger.Error("error checking topic existence", zap.Error(err))
			return
		}
		if !topicExists {
			s.logger.Warn("topic does not exist, cannot create subscription", zap.String("topic", s.topicName))
			return
		}

		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 60 * time.Second,
		})
		if err != nil {
			s.logger.Error("failed to create subscription", zap.Error(err))
			return
		}
		s.logger.Info("created subscription", zap.String("subscription", s.subName))
	}

	// Deliveries are idempotent per day, one at a time is enough
	sub.ReceiveSettings.NumGoroutines = 1
	sub.ReceiveSettings.MaxOutstandingMessages = 1

	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if err := s.handleMessage(ctx, msg.Data); err != nil {
			s.logger.Warn("delivery trigger failed", zap.Error(err))
		}
		// Bad payloads are acked too; redelivery would not fix them
		msg.Ack()
	})
	if err != nil && ctx.Err() == nil {
		s.logger.Error("error receiving messages", zap.Error(err))
	}
}

// Close releases the Pub/Sub client
func (s *Service) Close() error {
	if s.pubsubClient == nil {
		return nil
	}
	return s.pubsubClient.Close()
}

func (s *Service) handleMessage(ctx context.Context, data []byte) error {
	at, err := s.deliveryTime(data)
	if err != nil {
		return err
	}

	res, err := s.delivery.DeliverAll(ctx, at)
	if err != nil {
		return err
	}
	s.logger.Info("triggered delivery finished", zap.String("date", res.Date), zap.Int("due", res.Due), zap.Int("sent", res.Sent))
	return nil
}

// deliveryTime turns a trigger payload into the instant to deliver for.
// An explicit date maps to its last minute so every delivery hour has passed.
func (s *Service) deliveryTime(data []byte) (time.Time, error) {
	var trigger DeliveryTrigger
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &trigger); err != nil {
			return time.Time{}, fmt.Errorf("failed to unmarshal trigger: %w", err)
		}
	}
	if trigger.Date == "" {
		return s.now(), nil
	}
	date, err := time.ParseInLocation(daily.DateLayout, trigger.Date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid trigger date %q", trigger.Date)
	}
	return EndOfDay(date), nil
}

// EndOfDay returns 23:59 of date in its own location
func EndOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, date.Location())
}
