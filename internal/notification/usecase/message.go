package usecase

import (
	"fmt"
	"strings"
	"time"

	"tarot-backend/internal/daily"
	tarot "tarot-backend/internal/tarot/domain"
	"tarot-backend/pkg/fcm"
)

// dailyMessage is what one subscriber receives on one date
type dailyMessage struct {
	Card   tarot.Card
	Sign   *daily.Sign
	Date   time.Time
	Locale string
}

func (m dailyMessage) pt() bool {
	return m.Locale == "pt"
}

func (m dailyMessage) title() string {
	switch {
	case m.Sign != nil && m.pt():
		return fmt.Sprintf("🔮 Carta do dia para %s", m.Sign.NamePT)
	case m.Sign != nil:
		return fmt.Sprintf("🔮 %s card of the day", m.Sign.Name)
	case m.pt():
		return "🔮 Sua carta do dia"
	default:
		return "🔮 Your card of the day"
	}
}

func (m dailyMessage) dateLabel() string {
	if m.pt() {
		return m.Date.Format("02/01/2006")
	}
	return m.Date.Format(daily.DateLayout)
}

func cardLink(appURL, cardID string) string {
	if appURL == "" {
		return ""
	}
	return strings.TrimRight(appURL, "/") + "/cards/" + cardID
}

// text is the WhatsApp body
func (m dailyMessage) text(appURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n*%s*", m.title(), m.dateLabel(), m.Card.LocalizedName(m.pt()))
	if link := cardLink(appURL, m.Card.ID); link != "" {
		if m.pt() {
			fmt.Fprintf(&b, "\n\nLeia o significado: %s", link)
		} else {
			fmt.Fprintf(&b, "\n\nRead the meaning: %s", link)
		}
	}
	return b.String()
}

func (m dailyMessage) push(appURL string) fcm.NotificationData {
	data := map[string]string{
		"type":    "daily_card",
		"card_id": m.Card.ID,
		"date":    m.Date.Format(daily.DateLayout),
	}
	if m.Sign != nil {
		data["sign"] = m.Sign.ID
	}
	return fcm.NotificationData{
		Title:       m.title(),
		Body:        m.Card.LocalizedName(m.pt()),
		ImageURL:    m.Card.Image,
		Data:        data,
		ClickAction: cardLink(appURL, m.Card.ID),
	}
}
