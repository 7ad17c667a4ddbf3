package chat

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("chat not found")
	// ErrExists is returned by Create when the unordered pair already has a chat.
	ErrExists = errors.New("chat already exists for this pair")
)

type Repository interface {
	Create(ctx context.Context, user1ID, user2ID int64) (Chat, error)
	GetByID(ctx context.Context, id int64) (Chat, error)
	FindByPair(ctx context.Context, userA, userB int64) (Chat, error)
	ListSummaries(ctx context.Context, userID int64) ([]Summary, error)
	Delete(ctx context.Context, id int64) error
}

type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)
	ListByChat(ctx context.Context, chatID int64) ([]Message, error)
	MarkRead(ctx context.Context, chatID, readerID int64) (int64, error)
}
