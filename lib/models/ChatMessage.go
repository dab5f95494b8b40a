package models

import (
	"time"

	"github.com/ether/etherpad-go-client/lib/api"
)

// ChatMessage is a message of a pad's chat. Timestamp is in seconds.
type ChatMessage struct {
	client     *api.Client
	PadID      string
	Text       string
	AuthorID   string
	AuthorName string
	Timestamp  *int64
}

func newChatMessage(client *api.Client, padID string, data api.ChatMessageData) *ChatMessage {
	msg := &ChatMessage{
		client: client,
		PadID:  padID,
		Text:   data.Text,
	}
	if data.AuthorID != nil {
		msg.AuthorID = *data.AuthorID
	}
	if data.DisplayName != nil {
		msg.AuthorName = *data.DisplayName
	}
	if data.Time != nil {
		seconds := *data.Time / 1000
		msg.Timestamp = &seconds
	}
	return msg
}

// Time reports false when the server sent no timestamp.
func (m *ChatMessage) Time() (time.Time, bool) {
	if m.Timestamp == nil {
		return time.Time{}, false
	}
	return time.Unix(*m.Timestamp, 0), true
}

func (m *ChatMessage) Pad() *Pad {
	if m.PadID == "" {
		return nil
	}
	return newPad(m.client, m.PadID, nil, nil)
}

func (m *ChatMessage) Author() *Author {
	if m.AuthorID == "" {
		return nil
	}
	return newAuthor(m.client, m.AuthorID, "")
}

func (m *ChatMessage) String() string {
	return m.Text
}
