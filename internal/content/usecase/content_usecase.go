package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"tarot-backend/internal/content/domain"
	"tarot-backend/internal/content/repository"
	tarot "tarot-backend/internal/tarot/domain"
	tarotusecase "tarot-backend/internal/tarot/usecase"
	"tarot-backend/pkg/ai"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	defaultSemanticLimit = 5
	maxSemanticLimit     = 20
)

// Options carries the optional collaborators of the content usecase
type Options struct {
	// Generator is nil when no AI provider is configured
	Generator ai.Generator
	// Index is nil when Chroma is not configured
	Index VectorIndex
	// Worker runs QueueAll jobs
	Worker *GenerationWorker
	// Model is recorded on generated rows
	Model string
}

type contentUsecase struct {
	repo      repository.ContentRepository
	catalog   tarotusecase.CatalogUsecase
	generator ai.Generator
	index     VectorIndex
	worker    *GenerationWorker
	model     string
	policy    *bluemonday.Policy
	logger    *zap.Logger
}

// NewContentUsecase creates a new ContentUsecase and registers it with the worker
func NewContentUsecase(repo repository.ContentRepository, catalog tarotusecase.CatalogUsecase, opts Options, logger *zap.Logger) ContentUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &contentUsecase{
		repo:      repo,
		catalog:   catalog,
		generator: opts.Generator,
		index:     opts.Index,
		worker:    opts.Worker,
		model:     opts.Model,
		policy:    bluemonday.StrictPolicy(),
		logger:    logger.Named("content"),
	}
	if u.worker != nil {
		u.worker.SetGenerator(u)
	}
	return u
}

// normalizeLocale accepts en and pt, empty meaning en
func normalizeLocale(locale string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", "en":
		return "en", nil
	case "pt", "pt-br":
		return "pt", nil
	}
	return "", fmt.Errorf("%w: unsupported locale %q", domain.ErrInvalidContent, locale)
}

// sanitize strips markup and returns plain text
func (u *contentUsecase) sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(u.policy.Sanitize(s)))
}

func (u *contentUsecase) sanitizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = u.sanitize(k)
		key := strings.ToLower(k)
		if k == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, k)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

func (u *contentUsecase) GenerateCard(ctx context.Context, cardID, locale string) (*domain.CardContent, error) {
	if u.generator == nil {
		return nil, domain.ErrNotConfigured
	}
	locale, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}
	card, err := u.catalog.GetCard(cardID)
	if err != nil {
		return nil, err
	}

	text, err := u.generator.Generate(ctx, buildContentPrompt(*card, locale))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	var generated generatedContent
	if err := json.Unmarshal([]byte(ai.StripCodeFence(text)), &generated); err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON", domain.ErrUpstream)
	}

	content := &domain.CardContent{
		CardID:   card.ID,
		Locale:   locale,
		Upright:  u.sanitize(generated.Upright),
		Reversed: u.sanitize(generated.Reversed),
		Keywords: u.sanitizeKeywords(generated.Keywords),
		Source:   domain.SourceGenerated,
		Model:    u.model,
	}
	if content.Upright == "" || content.Reversed == "" {
		return nil, fmt.Errorf("%w: response is missing a meaning", domain.ErrUpstream)
	}

	if err := u.store(ctx, *card, content); err != nil {
		return nil, err
	}
	return content, nil
}

// store saves the content and indexes it when a vector index is configured.
// Indexing failures are logged, the stored row stays.
func (u *contentUsecase) store(ctx context.Context, card tarot.Card, content *domain.CardContent) error {
	if err := u.repo.SaveContent(content); err != nil {
		return err
	}
	if u.index == nil {
		return nil
	}

	text := embeddingText(card, content.Upright, content.Reversed, content.Keywords)
	if err := u.index.UpsertCardEmbedding(ctx, content.DocumentID(), card.ID, content.Locale, text); err != nil {
		u.logger.Warn("failed to index card content", zap.String("card_id", card.ID), zap.String("locale", content.Locale), zap.Error(err))
	}
	return nil
}

func (u *contentUsecase) QueueAll(locale string) (*QueueResult, error) {
	if u.generator == nil {
		return nil, domain.ErrNotConfigured
	}
	if u.worker == nil {
		return nil, errors.New("generation worker is not running")
	}
	locale, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}

	existing, err := u.repo.CardIDsWithContent(locale)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing content: %w", err)
	}

	result := &QueueResult{Locale: locale}
	cards, _ := u.catalog.ListCards(tarotusecase.CardFilter{})
	for _, card := range cards {
		if existing[card.ID] {
			result.Skipped++
			continue
		}
		if u.worker.QueueJob(GenerationJob{CardID: card.ID, Locale: locale}) {
			result.Queued++
		} else {
			result.Dropped++
		}
	}

	u.logger.Info("queued card generation",
		zap.String("locale", locale),
		zap.Int("queued", result.Queued),
		zap.Int("skipped", result.Skipped),
		zap.Int("dropped", result.Dropped))
	return result, nil
}

func (u *contentUsecase) Import(ctx context.Context, items []ImportItem) (*ImportResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", domain.ErrInvalidContent)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("%w: item %d has no name", domain.ErrInvalidContent, i)
		}
		if strings.TrimSpace(item.Upright) == "" && strings.TrimSpace(item.Reversed) == "" {
			return nil, fmt.Errorf("%w: item %d (%s) has no meaning", domain.ErrInvalidContent, i, item.Name)
		}
		if _, err := normalizeLocale(item.Locale); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{Matches: []ImportMatch{}, Unmatched: []string{}}
	for _, item := range items {
		match, err := u.catalog.LookupCard(item.Name)
		if err != nil {
			result.Unmatched = append(result.Unmatched, item.Name)
			continue
		}

		locale, _ := normalizeLocale(item.Locale)
		content := &domain.CardContent{
			CardID:   match.Card.ID,
			Locale:   locale,
			Upright:  u.sanitize(item.Upright),
			Reversed: u.sanitize(item.Reversed),
			Keywords: u.sanitizeKeywords(item.Keywords),
			Source:   domain.SourceImported,
		}
		if err := u.store(ctx, match.Card, content); err != nil {
			return nil, err
		}

		result.Imported++
		result.Matches = append(result.Matches, ImportMatch{Name: item.Name, CardID: match.Card.ID, Tier: match.Tier})
	}

	u.logger.Info("imported card content", zap.Int("imported", result.Imported), zap.Int("unmatched", len(result.Unmatched)))
	return result, nil
}

func (u *contentUsecase) GetCardContent(cardID string) ([]*domain.CardContent, error) {
	return u.repo.ListByCard(cardID)
}

func (u *contentUsecase) SearchEnabled() bool {
	return u.index != nil
}

func (u *contentUsecase) SemanticSearch(ctx context.Context, query, locale string, limit int) ([]SearchHit, error) {
	if u.index == nil {
		return nil, domain.ErrSearchUnavailable
	}
	locale, err := normalizeLocale(locale)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchHit{}, nil
	}
	if limit <= 0 {
		limit = defaultSemanticLimit
	}
	if limit > maxSemanticLimit {
		limit = maxSemanticLimit
	}

	ids, distances, err := u.index.SemanticSearch(ctx, locale, query, limit)
	if err != nil {
		return nil, fmt.Errorf("semantic search failed: %w", err)
	}

	hits := make([]SearchHit, 0, len(ids))
	for i, id := range ids {
		cardID, docLocale, _ := strings.Cut(id, ":")
		card, ok := tarot.CardByID(cardID)
		if !ok {
			continue
		}
		hit := SearchHit{Card: card, Locale: docLocale}
		if i < len(distances) {
			hit.Distance = distances[i]
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
