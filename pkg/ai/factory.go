package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tarot-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Ollama config, read on every call so runtime settings take effect
	OllamaBaseURL func() string // e.g., "http://localhost:11434"
	OllamaModel   func() string // e.g., "llama3", "mistral"
}

// geminiGenerator adapts the Gemini SDK wrapper to Generator
type geminiGenerator struct {
	svc *gemini.GeminiService
}

func (g geminiGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	return g.svc.GenerateContent(ctx, p.User, gemini.Options{
		System:      p.System,
		JSON:        p.JSON,
		Temperature: p.Temperature,
		MaxTokens:   int32(p.MaxTokens),
	})
}

// NewGenerator creates a Generator based on the config
// This is the factory function - switch AI provider by changing config.Provider
func NewGenerator(ctx context.Context, cfg Config, logger *zap.Logger) (Generator, error) {
	ollama := func() *OllamaService {
		if cfg.OllamaBaseURL == nil || cfg.OllamaModel == nil {
			return NewOllamaService("", "")
		}
		return NewOllamaServiceWithGetters(cfg.OllamaBaseURL, cfg.OllamaModel)
	}

	switch cfg.Provider {
	case ProviderOllama:
		return ollama(), nil

	case ProviderAuto:
		if cfg.GeminiAPIKey == "" {
			return ollama(), nil
		}
		svc, err := gemini.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return NewFallbackService(geminiGenerator{svc: svc}, ollama(), logger), nil

	default: // ProviderGemini
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		svc, err := gemini.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return geminiGenerator{svc: svc}, nil
	}
}
