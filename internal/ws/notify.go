package ws

import (
	"encoding/json"
	"time"

	"skill-exchange/internal/domain/chat"
)

const EventNewMessage = "new_message"

type MessageEvent struct {
	Type    string         `json:"type"`
	ChatID  int64          `json:"chat_id"`
	Message MessagePayload `json:"message"`
}

type MessagePayload struct {
	ID         int64  `json:"id"`
	ChatID     int64  `json:"chat_id"`
	SenderID   int64  `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	IsRead     bool   `json:"is_read"`
}

// PublishMessage pushes a stored chat message to the chat's subscribers.
func (h *Hub) PublishMessage(chatID int64, m chat.Message) {
	if h == nil {
		return
	}
	b, err := json.Marshal(MessageEvent{
		Type:   EventNewMessage,
		ChatID: chatID,
		Message: MessagePayload{
			ID:         m.ID,
			ChatID:     m.ChatID,
			SenderID:   m.SenderID,
			SenderName: m.SenderName,
			Content:    m.Content,
			Timestamp:  m.Timestamp.UTC().Format(time.RFC3339),
			IsRead:     m.IsRead,
		},
	})
	if err != nil {
		return
	}
	h.Publish(chatID, b)
}
