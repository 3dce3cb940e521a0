package notification

import (
	"context"
	"testing"
	"time"

	"tarot-backend/internal/notification/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDelivery struct {
	at []time.Time
}

func (d *recordingDelivery) DeliverAll(ctx context.Context, now time.Time) (*usecase.DeliveryResult, error) {
	d.at = append(d.at, now)
	return &usecase.DeliveryResult{Date: now.Format("2006-01-02")}, nil
}

func TestHandleMessage(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	d := &recordingDelivery{}
	s := newService(d, loc, nil)
	fixed := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.handleMessage(context.Background(), []byte(`{"date":"2025-06-01"}`)))
	require.NoError(t, s.handleMessage(context.Background(), []byte(`{}`)))
	require.NoError(t, s.handleMessage(context.Background(), nil))

	require.Len(t, d.at, 3)
	assert.Equal(t, time.Date(2025, 6, 1, 23, 59, 0, 0, loc), d.at[0])
	assert.Equal(t, fixed, d.at[1])
	assert.Equal(t, fixed, d.at[2])

	assert.Error(t, s.handleMessage(context.Background(), []byte(`not json`)))
	assert.Error(t, s.handleMessage(context.Background(), []byte(`{"date":"June 1st"}`)))
	assert.Len(t, d.at, 3)
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(time.Date(2025, 2, 28, 3, 4, 5, 6, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC), got)
}
