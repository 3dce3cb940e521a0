package usecase

import (
	"fmt"
	"strings"

	tarot "tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/ai"
)

const maxKeywords = 8

type generatedContent struct {
	Upright  string   `json:"upright"`
	Reversed string   `json:"reversed"`
	Keywords []string `json:"keywords"`
}

func buildContentPrompt(card tarot.Card, locale string) ai.Prompt {
	system := "You are an expert tarot reader writing reference entries for a tarot app. " +
		"Be warm and concrete, avoid fatalistic predictions, and respond with JSON only."
	if locale == "pt" {
		system += " Write every field in Brazilian Portuguese."
	}

	suit := "-"
	if card.Suit != "" {
		suit = string(card.Suit)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Card: %s (%s)\n", card.Name, card.NamePT)
	fmt.Fprintf(&b, "Arcana: %s\n", card.Arcana)
	fmt.Fprintf(&b, "Suit: %s\n\n", suit)
	b.WriteString("Return a JSON object with exactly these fields:\n")
	b.WriteString(`{"upright": "2-3 paragraphs on the upright meaning", `)
	b.WriteString(`"reversed": "1-2 paragraphs on the reversed meaning", `)
	fmt.Fprintf(&b, `"keywords": ["5 to %d short keywords"]}`, maxKeywords)

	return ai.Prompt{
		System:      system,
		User:        b.String(),
		JSON:        true,
		Temperature: 0.6,
		MaxTokens:   2048,
	}
}

// embeddingText is the document indexed for semantic search
func embeddingText(card tarot.Card, upright, reversed string, keywords []string) string {
	return fmt.Sprintf("%s / %s\nKeywords: %s\n\nUpright: %s\n\nReversed: %s",
		card.Name, card.NamePT, strings.Join(keywords, ", "), upright, reversed)
}
