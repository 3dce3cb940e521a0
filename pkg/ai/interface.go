package ai

import (
	"context"
	"strings"
)

// Prompt is one generation request, provider independent
type Prompt struct {
	System      string
	User        string
	JSON        bool // ask the provider for a JSON-only answer
	Temperature float32
	MaxTokens   int
}

// Generator is the interface for text generation
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)

// StripCodeFence removes a surrounding ```json ... ``` block if the model added one
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = text[3:]
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		// drop the language tag line
		text = text[nl+1:]
	}
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-3]
	}
	return strings.TrimSpace(text)
}
