package chat

import "time"

type Chat struct {
	ID        int64
	User1ID   int64
	User2ID   int64
	CreatedAt time.Time
}

func (c Chat) HasParticipant(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Summary is a chat as seen by one of its participants.
type Summary struct {
	Chat
	User1Name            string
	User2Name            string
	User1Avatar          *string
	User2Avatar          *string
	UnreadCount          int
	IsRatedByCurrentUser bool
}

type Message struct {
	ID         int64
	ChatID     int64
	SenderID   int64
	SenderName string
	Content    string
	Timestamp  time.Time
	IsRead     bool
}
