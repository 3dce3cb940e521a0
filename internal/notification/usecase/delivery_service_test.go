package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	authdomain "tarot-backend/internal/auth/domain"
	"tarot-backend/internal/daily"
	"tarot-backend/internal/notification/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func subscribers() []*domain.Subscriber {
	return []*domain.Subscriber{
		{ID: "s1", UserID: "u1", Phone: "+5511900000001", Locale: "pt", DeliveryHour: 8, Active: true},
		{ID: "s2", UserID: "u2", Phone: "+14155550100", Sign: "leo", Locale: "en", DeliveryHour: 8, Active: true},
		{ID: "s3", UserID: "u3", Phone: "+14155550101", Locale: "en", DeliveryHour: 20, Active: true},
		{ID: "s4", UserID: "u4", Phone: "+14155550102", Locale: "en", DeliveryHour: 8, Active: false},
		{ID: "s5", UserID: "u5", Phone: "+14155550103", Locale: "en", DeliveryHour: 8, Active: true, LastDeliveredOn: "2025-06-10"},
	}
}

func TestDeliverAll(t *testing.T) {
	repo := newMemorySubscriberRepo(subscribers()...)
	text := &recordingText{fail: map[string]bool{"+14155550100": true}}
	dailySvc := daily.NewService(brt)
	svc := NewDeliveryService(repo, dailySvc, DeliveryConfig{Text: text, AppURL: "https://tarot.example/"}, nil)

	// 12:00 UTC is 09:00 in BRT
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	res, err := svc.DeliverAll(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-10", res.Date)
	assert.Equal(t, 2, res.Due, "inactive, later hour and already served are skipped")
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)

	date := now.In(brt)
	card := dailySvc.CardOfTheDay(date)
	body := text.sent["+5511900000001"]
	assert.Contains(t, body, "Sua carta do dia (10/06/2025)")
	assert.Contains(t, body, card.NamePT)
	assert.Contains(t, body, "https://tarot.example/cards/"+card.ID)

	assert.Equal(t, "2025-06-10", repo.marked["s1"])
	assert.Equal(t, "2025-06-10", repo.marked["s2"], "failed sends are marked too")
	assert.NotContains(t, repo.marked, "s3")

	again, err := svc.DeliverAll(context.Background(), now.Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, again.Due, "nobody is served twice on the same day")
}

func TestDeliverAllSignCard(t *testing.T) {
	repo := newMemorySubscriberRepo(subscribers()[1])
	text := &recordingText{}
	dailySvc := daily.NewService(time.UTC)
	svc := NewDeliveryService(repo, dailySvc, DeliveryConfig{Text: text}, nil)

	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	_, err := svc.DeliverAll(context.Background(), now)
	require.NoError(t, err)

	card, _, err := dailySvc.SignCard(now, "leo")
	require.NoError(t, err)
	body := text.sent["+14155550100"]
	assert.True(t, strings.HasPrefix(body, "🔮 Leo card of the day (2025-06-10)"), body)
	assert.Contains(t, body, card.Name)
	assert.NotContains(t, body, "Read the meaning", "no link without an app url")
}

func TestDeliverAllPush(t *testing.T) {
	repo := newMemorySubscriberRepo(subscribers()[0])
	tokens := &memoryTokens{tokens: map[string]authdomain.FCMToken{
		"good":  {UserID: "u1", Token: "good"},
		"stale": {UserID: "u1", Token: "stale"},
		"other": {UserID: "u9", Token: "other"},
	}}
	push := &recordingPush{reject: map[string]bool{"stale": true}}
	svc := NewDeliveryService(repo, daily.NewService(time.UTC), DeliveryConfig{Push: push, FCMRepo: tokens}, nil)

	res, err := svc.DeliverAll(context.Background(), time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pushed)
	assert.Zero(t, res.Sent)

	require.Len(t, push.received, 1)
	assert.Equal(t, "🔮 Sua carta do dia", push.received[0].Title)
	assert.Equal(t, "daily_card", push.received[0].Data["type"])
	assert.Equal(t, "2025-06-10", push.received[0].Data["date"])

	assert.NotContains(t, tokens.tokens, "stale", "rejected tokens are removed")
	assert.Contains(t, tokens.tokens, "good")
	assert.Contains(t, tokens.tokens, "other")
}

func TestDeliverAllWithoutChannels(t *testing.T) {
	repo := newMemorySubscriberRepo(subscribers()...)
	svc := NewDeliveryService(repo, daily.NewService(time.UTC), DeliveryConfig{}, nil)
	assert.False(t, svc.Enabled())

	res, err := svc.DeliverAll(context.Background(), time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, res.Due)
	assert.Empty(t, repo.marked, "nothing is marked when nothing can be sent")
}

func TestDeliverAllCancelled(t *testing.T) {
	repo := newMemorySubscriberRepo(subscribers()...)
	svc := NewDeliveryService(repo, daily.NewService(time.UTC), DeliveryConfig{Text: &recordingText{}, Concurrency: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.DeliverAll(ctx, time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, context.Canceled)
}
