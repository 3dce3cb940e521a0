package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"
)

// FallbackService implements provider routing with fallback:
// the primary (Gemini) is tried first, the secondary (Ollama) takes over
// on quota exhaustion or connection errors.
type FallbackService struct {
	primary   Generator
	secondary Generator
	logger    *zap.Logger
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(primary, secondary Generator, logger *zap.Logger) *FallbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackService{
		primary:   primary,
		secondary: secondary,
		logger:    logger.Named("ai"),
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Check for common connection error messages
	return containsAny(err.Error(),
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"EOF",
	)
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(),
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"RESOURCE_EXHAUSTED",
	)
}

func containsAny(s string, indicators ...string) bool {
	s = strings.ToLower(s)
	for _, indicator := range indicators {
		if strings.Contains(s, strings.ToLower(indicator)) {
			return true
		}
	}
	return false
}

// Generate tries the primary provider, falls back to the secondary on failure
func (f *FallbackService) Generate(ctx context.Context, p Prompt) (string, error) {
	if f.primary != nil {
		result, err := f.primary.Generate(ctx, p)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return "", err
		}

		switch {
		case isQuotaError(err):
			f.logger.Warn("primary provider quota exhausted, falling back", zap.Error(err))
		case isConnectionError(err):
			f.logger.Warn("primary provider unreachable, falling back", zap.Error(err))
		default:
			f.logger.Warn("primary provider failed, falling back", zap.Error(err))
		}

		if f.secondary == nil {
			return "", err
		}
	}

	if f.secondary != nil {
		result, err := f.secondary.Generate(ctx, p)
		if err != nil {
			return "", fmt.Errorf("fallback provider failed: %w", err)
		}
		return result, nil
	}

	return "", fmt.Errorf("no AI provider available")
}
