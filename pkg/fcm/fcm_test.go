package fcm

import (
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
)

func TestNewMulticastMessage(t *testing.T) {
	msg := newMulticastMessage([]string{"a", "b"}, NotificationData{
		Title:       "Your card of the day",
		Body:        "The Star",
		Data:        map[string]string{"card_id": "the-star"},
		ClickAction: "https://tarot.example/cards/the-star",
	})

	assert.Equal(t, []string{"a", "b"}, msg.Tokens)
	assert.Equal(t, "The Star", msg.Notification.Body)
	assert.Equal(t, "the-star", msg.Data["card_id"])
	assert.Equal(t, "Your card of the day", msg.Webpush.Notification.Title)
	assert.Equal(t, "https://tarot.example/cards/the-star", msg.Webpush.FCMOptions.Link)

	noLink := newMulticastMessage([]string{"a"}, NotificationData{Title: "t"})
	assert.Nil(t, noLink.Webpush.FCMOptions)
}

func TestFailedTokens(t *testing.T) {
	tokens := []string{"ok", "bad", "gone"}
	responses := []*messaging.SendResponse{
		{Success: true, MessageID: "m1"},
		{Success: false, Error: errors.New("invalid registration")},
		nil,
	}
	assert.Equal(t, []string{"bad", "gone"}, failedTokens(tokens, responses))
	assert.Empty(t, failedTokens(tokens, responses[:1]))
}

func TestShortToken(t *testing.T) {
	assert.Equal(t, "abc", shortToken("abc"))
	assert.Equal(t, "0123456789abcdefghij...", shortToken("0123456789abcdefghijklmnop"))
}
