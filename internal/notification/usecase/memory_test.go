package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	authdomain "tarot-backend/internal/auth/domain"
	"tarot-backend/internal/notification/domain"
	"tarot-backend/pkg/fcm"

	"github.com/google/uuid"
)

type memorySubscriberRepo struct {
	mu     sync.Mutex
	byUser map[string]*domain.Subscriber
	marked map[string]string
}

func newMemorySubscriberRepo(subs ...*domain.Subscriber) *memorySubscriberRepo {
	r := &memorySubscriberRepo{byUser: map[string]*domain.Subscriber{}, marked: map[string]string{}}
	for _, s := range subs {
		r.byUser[s.UserID] = s
	}
	return r
}

func (r *memorySubscriberRepo) Upsert(sub *domain.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	cp := *sub
	r.byUser[sub.UserID] = &cp
	return nil
}

func (r *memorySubscriberRepo) FindByUserID(userID string) (*domain.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memorySubscriberRepo) Deactivate(userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byUser[userID]
	if !ok || !s.Active {
		return false, nil
	}
	s.Active = false
	return true, nil
}

func (r *memorySubscriberRepo) FindDue(date string, hour int) ([]*domain.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Subscriber
	for _, s := range r.byUser {
		if s.Active && s.DeliveryHour <= hour && s.LastDeliveredOn != date {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *memorySubscriberRepo) MarkDelivered(id, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byUser {
		if s.ID == id {
			s.LastDeliveredOn = date
			r.marked[id] = date
			return nil
		}
	}
	return errors.New("not found")
}

type recordingText struct {
	mu   sync.Mutex
	sent map[string]string
	fail map[string]bool
}

func (t *recordingText) SendText(ctx context.Context, to, body string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail[to] {
		return "", errors.New("recipient not on whatsapp")
	}
	if t.sent == nil {
		t.sent = map[string]string{}
	}
	t.sent[to] = body
	return "wamid." + to, nil
}

type recordingPush struct {
	mu       sync.Mutex
	received []fcm.NotificationData
	reject   map[string]bool
}

func (p *recordingPush) SendToDevices(ctx context.Context, tokens []string, n fcm.NotificationData) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, n)
	var failed []string
	for _, t := range tokens {
		if p.reject[t] {
			failed = append(failed, t)
		}
	}
	return failed, nil
}

type memoryTokens struct {
	mu     sync.Mutex
	tokens map[string]authdomain.FCMToken
}

func (m *memoryTokens) SaveToken(userID, token, deviceInfo, locale string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = authdomain.FCMToken{UserID: userID, Token: token, Locale: locale}
	return nil
}

func (m *memoryTokens) GetTokensByUserID(userID string) ([]authdomain.FCMToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []authdomain.FCMToken
	for _, t := range m.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryTokens) DeleteToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func (m *memoryTokens) DeleteUserToken(userID, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(m.tokens, token)
	return true, nil
}
