package dto

import (
	"time"

	"skill-exchange/internal/domain/chat"
)

type ChatResponse struct {
	ID        int64  `json:"id"`
	User1ID   int64  `json:"user1_id"`
	User2ID   int64  `json:"user2_id"`
	CreatedAt string `json:"created_at"`
}

type ChatSummaryResponse struct {
	ChatResponse
	User1Name            string  `json:"user1_name"`
	User2Name            string  `json:"user2_name"`
	User1Avatar          *string `json:"user1_avatar"`
	User2Avatar          *string `json:"user2_avatar"`
	UnreadCount          int     `json:"unread_count"`
	IsRatedByCurrentUser bool    `json:"is_rated_by_current_user"`
}

type MessageResponse struct {
	ID         int64  `json:"id"`
	ChatID     int64  `json:"chat_id"`
	SenderID   int64  `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	IsRead     bool   `json:"is_read"`
}

type CreateChatRequest struct {
	User1ID int64 `json:"user1_id"`
	User2ID int64 `json:"user2_id"`
}

type SendMessageRequest struct {
	SenderID int64  `json:"sender_id"`
	Content  string `json:"content"`
}

type MarkReadRequest struct {
	UserID int64 `json:"user_id"`
}

func NewChatResponse(c chat.Chat) ChatResponse {
	return ChatResponse{
		ID:        c.ID,
		User1ID:   c.User1ID,
		User2ID:   c.User2ID,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func NewChatSummaryResponses(in []chat.Summary) []ChatSummaryResponse {
	out := make([]ChatSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, ChatSummaryResponse{
			ChatResponse:         NewChatResponse(s.Chat),
			User1Name:            s.User1Name,
			User2Name:            s.User2Name,
			User1Avatar:          s.User1Avatar,
			User2Avatar:          s.User2Avatar,
			UnreadCount:          s.UnreadCount,
			IsRatedByCurrentUser: s.IsRatedByCurrentUser,
		})
	}
	return out
}

func NewMessageResponse(m chat.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		ChatID:     m.ChatID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Content:    m.Content,
		Timestamp:  formatTime(m.Timestamp),
		IsRead:     m.IsRead,
	}
}

func NewMessageResponses(in []chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(in))
	for _, m := range in {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
