package scheduler

import (
	"context"
	"sync"
	"time"

	"tarot-backend/internal/notification/usecase"

	"go.uber.org/zap"
)

// DefaultInterval is how often due subscribers are checked
const DefaultInterval = time.Minute

// DailyCardScheduler periodically delivers the daily card
type DailyCardScheduler struct {
	delivery usecase.DeliveryUsecase
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.Logger

	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewDailyCardScheduler creates a new scheduler. interval <= 0 uses DefaultInterval.
func NewDailyCardScheduler(delivery usecase.DeliveryUsecase, interval time.Duration, logger *zap.Logger) *DailyCardScheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyCardScheduler{
		delivery: delivery,
		interval: interval,
		timeout:  5 * time.Minute,
		now:      time.Now,
		logger:   logger.Named("scheduler"),
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *DailyCardScheduler) Start() {
	s.logger.Info("starting daily card scheduler", zap.Duration("interval", s.interval))

	go func() {
		defer close(s.done)

		// Run immediately on start
		s.runOnce()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stopChan:
				s.logger.Info("scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler and waits for the running pass
func (s *DailyCardScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	<-s.done
}

func (s *DailyCardScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	go func() {
		select {
		case <-s.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := s.delivery.DeliverAll(ctx, s.now()); err != nil {
		s.logger.Error("daily delivery failed", zap.Error(err))
	}
}
