package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"tarot-backend/internal/reading/cache"
	"tarot-backend/internal/reading/domain"
	tarot "tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/ai"
)

// interpretUsecase implements InterpretUsecase
type interpretUsecase struct {
	generator ai.Generator
	cache     *cache.InterpretationCache
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewInterpretUsecase creates a new instance of interpretUsecase.
// A nil generator means the AI service is not configured.
func NewInterpretUsecase(generator ai.Generator, c *cache.InterpretationCache, logger *zap.Logger) InterpretUsecase {
	if c == nil {
		c = cache.New(cache.DefaultTTL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &interpretUsecase{
		generator: generator,
		cache:     c,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.Named("reading"),
	}
}

func (u *interpretUsecase) Configured() bool {
	return u.generator != nil
}

func (u *interpretUsecase) Interpret(ctx context.Context, req domain.InterpretRequest, access Access) (*domain.Interpretation, error) {
	if u.generator == nil {
		return nil, domain.ErrNotConfigured
	}

	session, err := normalizeSession(req.Session)
	if err != nil {
		return nil, err
	}
	req.Session = session

	if access.Gate {
		if spread, ok := tarot.SpreadByID(session.Spread.ID); ok && !spread.Allows(access.Tier) {
			return nil, fmt.Errorf("%w: %s spread requires a premium subscription", domain.ErrForbidden, spread.ID)
		}
	}

	names := make([]string, len(session.Cards))
	for i, card := range session.Cards {
		names[i] = card.Name
	}
	key := cache.Key(names, session.Spread.ID, session.Question)

	if text, ok := u.cache.Get(key); ok {
		u.logger.Debug("interpretation cache hit", zap.String("spread", session.Spread.ID))
		return &domain.Interpretation{Text: text, Cached: true}, nil
	}

	question := strings.TrimSpace(u.sanitizer.Sanitize(session.Question))
	text, err := u.generator.Generate(ctx, buildPrompt(req, question))
	if err != nil {
		u.logger.Warn("interpretation failed", zap.String("spread", session.Spread.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, err.Error())
	}

	text = ai.StripCodeFence(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrUpstream)
	}
	if !json.Valid([]byte(text)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", domain.ErrUpstream)
	}

	u.cache.Set(key, text)
	u.logger.Info("interpretation generated",
		zap.String("spread", session.Spread.ID),
		zap.Int("cards", len(session.Cards)),
		zap.Bool("pt", req.IsPortuguese))

	return &domain.Interpretation{Text: text, Cached: false}, nil
}

// normalizeSession fills card names from the catalog when only ids were sent
// and rejects sessions that cannot be interpreted
func normalizeSession(s domain.Session) (domain.Session, error) {
	s.Spread.ID = strings.TrimSpace(s.Spread.ID)
	if s.Spread.ID == "" {
		return s, fmt.Errorf("%w: spread id is required", domain.ErrInvalidRequest)
	}
	if len(s.Cards) == 0 {
		return s, fmt.Errorf("%w: at least one card is required", domain.ErrInvalidRequest)
	}

	cards := make([]domain.DrawnCard, len(s.Cards))
	for i, card := range s.Cards {
		card.Name = strings.TrimSpace(card.Name)
		if c, ok := tarot.CardByID(card.ID); ok {
			if card.Name == "" {
				card.Name = c.Name
			}
			if card.NamePT == "" {
				card.NamePT = c.NamePT
			}
		}
		if card.Name == "" {
			return s, fmt.Errorf("%w: card %d has no name", domain.ErrInvalidRequest, i+1)
		}
		cards[i] = card
	}
	s.Cards = cards

	if spread, ok := tarot.SpreadByID(s.Spread.ID); ok && len(spread.Positions) != len(s.Cards) {
		return s, fmt.Errorf("%w: %s spread takes %d cards, got %d",
			domain.ErrInvalidRequest, spread.ID, len(spread.Positions), len(s.Cards))
	}
	return s, nil
}
