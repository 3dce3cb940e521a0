package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"tarot-backend/internal/notification/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingDelivery struct {
	calls atomic.Int32
	err   error
	block bool
}

func (d *countingDelivery) DeliverAll(ctx context.Context, now time.Time) (*usecase.DeliveryResult, error) {
	d.calls.Add(1)
	if d.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &usecase.DeliveryResult{}, d.err
}

func TestSchedulerRunsOnStartAndTicks(t *testing.T) {
	d := &countingDelivery{err: errors.New("db down")}
	s := NewDailyCardScheduler(d, 5*time.Millisecond, nil)
	s.Start()

	assert.Eventually(t, func() bool { return d.calls.Load() >= 3 }, time.Second, time.Millisecond)

	s.Stop()
	calls := d.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, d.calls.Load(), "no runs after Stop")
}

func TestSchedulerStopCancelsRunningPass(t *testing.T) {
	d := &countingDelivery{block: true}
	s := NewDailyCardScheduler(d, time.Hour, nil)
	s.Start()

	assert.Eventually(t, func() bool { return d.calls.Load() == 1 }, time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestSchedulerDefaults(t *testing.T) {
	s := NewDailyCardScheduler(&countingDelivery{}, 0, nil)
	assert.Equal(t, DefaultInterval, s.interval)
}
