package usecase

import (
	"fmt"
	"strings"

	"tarot-backend/internal/reading/domain"
	tarot "tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/ai"
)

// spreadTemplate holds the fixed instructions and output schema of one spread
type spreadTemplate struct {
	focus  string
	schema string
}

const cardsSchema = `"cards": [{"card": string, "position": string, "reversed": boolean, "meaning": string}]`

var genericTemplate = spreadTemplate{
	focus: "Read each card in its position, then weave them into one coherent message.",
	schema: `{
  "summary": string,
  ` + cardsSchema + `,
  "advice": string
}`,
}

var spreadTemplates = map[string]spreadTemplate{
	"single": {
		focus: "A single card answers the question directly. Go deep on its symbolism and what it asks of the querent today.",
		schema: `{
  "summary": string,
  ` + cardsSchema + `,
  "advice": string
}`,
	},
	"yes-no": {
		focus: "Upright cards lean towards yes, reversed cards towards no, ambiguous cards towards maybe. Commit to one answer and explain it.",
		schema: `{
  "answer": "yes" | "no" | "maybe",
  "explanation": string,
  ` + cardsSchema + `,
  "advice": string
}`,
	},
	"three-card": {
		focus: "Read the cards as a timeline: past influences, the present situation, the most likely future if nothing changes.",
		schema: `{
  "summary": string,
  ` + cardsSchema + `,
  "timeline": {"past": string, "present": string, "future": string},
  "advice": string
}`,
	},
	"love": {
		focus: "Focus on the relationship: what each person brings, the energy between them, what blocks it and where it can go.",
		schema: `{
  "summary": string,
  ` + cardsSchema + `,
  "relationship_energy": string,
  "advice": string
}`,
	},
	"career": {
		focus: "Focus on work and vocation: the current situation, obstacles, strengths to lean on and a concrete next step.",
		schema: `{
  "summary": string,
  ` + cardsSchema + `,
  "opportunities": [string],
  "challenges": [string],
  "next_step": string
}`,
	},
	"celtic-cross": {
		focus: "Read the Celtic Cross in its traditional order. Relate the cross (positions 1-6) to the staff (positions 7-10) and close on the outcome.",
		schema: `{
  "summary": string,
  ` + cardsSchema + `,
  "core_theme": string,
  "outcome": string,
  "advice": string
}`,
	},
}

func templateFor(spreadID string) spreadTemplate {
	if t, ok := spreadTemplates[spreadID]; ok {
		return t
	}
	return genericTemplate
}

// positionNames picks position labels: the catalog's for known spreads,
// otherwise what the client sent, otherwise "Card N"
func positionNames(session domain.Session, pt bool) []string {
	names := make([]string, len(session.Cards))
	spread, known := tarot.SpreadByID(session.Spread.ID)
	for i := range names {
		switch {
		case known && i < len(spread.Positions):
			names[i] = spread.Positions[i].Name
			if pt {
				names[i] = spread.Positions[i].NamePT
			}
		case i < len(session.Spread.Positions) && strings.TrimSpace(session.Spread.Positions[i]) != "":
			names[i] = strings.TrimSpace(session.Spread.Positions[i])
		case pt:
			names[i] = fmt.Sprintf("Carta %d", i+1)
		default:
			names[i] = fmt.Sprintf("Card %d", i+1)
		}
	}
	return names
}

func buildPrompt(req domain.InterpretRequest, question string) ai.Prompt {
	session := req.Session
	pt := req.IsPortuguese
	tmpl := templateFor(session.Spread.ID)

	var system strings.Builder
	system.WriteString("You are an experienced, warm and grounded tarot reader. ")
	system.WriteString("You interpret cards from the Rider-Waite-Smith tradition, honour reversals, ")
	system.WriteString("and never make medical, legal or financial promises.\n")
	system.WriteString(tmpl.focus)
	system.WriteString("\nRespond with JSON only, no markdown, matching this schema:\n")
	system.WriteString(tmpl.schema)
	if pt {
		system.WriteString("\nWrite every string value in Brazilian Portuguese.")
	} else {
		system.WriteString("\nWrite every string value in English.")
	}

	spreadName := session.Spread.Name
	if spread, ok := tarot.SpreadByID(session.Spread.ID); ok {
		spreadName = spread.Name
		if pt {
			spreadName = spread.NamePT
		}
	}
	if spreadName == "" {
		spreadName = session.Spread.ID
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Spread: %s\n", spreadName)
	if question != "" {
		fmt.Fprintf(&user, "Question: %s\n", question)
	} else {
		user.WriteString("Question: (none, give a general reading)\n")
	}
	user.WriteString("Cards:\n")
	positions := positionNames(session, pt)
	for i, card := range session.Cards {
		name := card.Name
		if pt && card.NamePT != "" {
			name = card.NamePT
		}
		orientation := "upright"
		if session.Reversed(i) {
			orientation = "reversed"
		}
		fmt.Fprintf(&user, "%d. %s: %s (%s)\n", i+1, positions[i], name, orientation)
	}

	return ai.Prompt{
		System:      system.String(),
		User:        user.String(),
		JSON:        true,
		Temperature: 0.7,
		MaxTokens:   2048,
	}
}
