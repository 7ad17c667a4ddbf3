package chat

import (
	"context"
	"errors"
	"strings"

	"skill-exchange/internal/domain/chat"
	"skill-exchange/internal/domain/user"

	"go.uber.org/zap"
)

var (
	ErrChatNotFound = errors.New("chat not found")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Notifier receives every stored message for live delivery.
type Notifier interface {
	PublishMessage(chatID int64, m chat.Message)
}

type Service struct {
	users    user.Repository
	chats    chat.Repository
	messages chat.MessageRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewService(users user.Repository, chats chat.Repository, messages chat.MessageRepository, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, chats: chats, messages: messages, notifier: notifier, logger: logger}
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]chat.Summary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	out, err := s.chats.ListSummaries(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Open returns the chat between the two users, creating it when absent.
// created reports whether a new chat was stored.
func (s *Service) Open(ctx context.Context, actorID, user1ID, user2ID int64) (c chat.Chat, created bool, err error) {
	if user1ID <= 0 || user2ID <= 0 || user1ID == user2ID {
		return chat.Chat{}, false, ErrInvalidInput
	}
	if actorID != user1ID && actorID != user2ID {
		return chat.Chat{}, false, ErrForbidden
	}
	if err := s.requireUser(ctx, user1ID); err != nil {
		return chat.Chat{}, false, err
	}
	if err := s.requireUser(ctx, user2ID); err != nil {
		return chat.Chat{}, false, err
	}

	existing, err := s.chats.FindByPair(ctx, user1ID, user2ID)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, chat.ErrNotFound):
		return chat.Chat{}, false, ErrInternal
	}

	c, err = s.chats.Create(ctx, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, chat.ErrExists) {
			existing, err := s.chats.FindByPair(ctx, user1ID, user2ID)
			if err != nil {
				return chat.Chat{}, false, ErrInternal
			}
			return existing, false, nil
		}
		return chat.Chat{}, false, ErrInternal
	}
	return c, true, nil
}

// Messages lists a chat's history for one of its participants.
func (s *Service) Messages(ctx context.Context, actorID, chatID int64) ([]chat.Message, error) {
	c, err := s.getChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(actorID) {
		return nil, ErrForbidden
	}
	out, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *Service) Send(ctx context.Context, actorID, chatID, senderID int64, content string) (chat.Message, error) {
	content = strings.TrimSpace(content)
	if senderID <= 0 || content == "" {
		return chat.Message{}, ErrInvalidInput
	}
	if actorID != senderID {
		return chat.Message{}, ErrForbidden
	}

	c, err := s.getChat(ctx, chatID)
	if err != nil {
		return chat.Message{}, err
	}
	if err := s.requireUser(ctx, senderID); err != nil {
		return chat.Message{}, err
	}
	if !c.HasParticipant(senderID) {
		return chat.Message{}, ErrForbidden
	}

	m, err := s.messages.Create(ctx, chat.Message{ChatID: chatID, SenderID: senderID, Content: content})
	if err != nil {
		return chat.Message{}, ErrInternal
	}

	if s.notifier != nil {
		s.notifier.PublishMessage(chatID, m)
	}
	return m, nil
}

// MarkRead marks the other participant's messages as read by readerID.
func (s *Service) MarkRead(ctx context.Context, actorID, chatID, readerID int64) (int64, error) {
	if readerID <= 0 {
		return 0, ErrInvalidInput
	}
	if actorID != readerID {
		return 0, ErrForbidden
	}
	c, err := s.getChat(ctx, chatID)
	if err != nil {
		return 0, err
	}
	if !c.HasParticipant(readerID) {
		return 0, ErrForbidden
	}

	n, err := s.messages.MarkRead(ctx, chatID, readerID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, actorID, chatID int64) error {
	c, err := s.getChat(ctx, chatID)
	if err != nil {
		return err
	}
	if !c.HasParticipant(actorID) {
		return ErrForbidden
	}
	if err := s.chats.Delete(ctx, chatID); err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return ErrChatNotFound
		}
		return ErrInternal
	}
	s.logger.Info("chat deleted", zap.Int64("chat_id", chatID), zap.Int64("by", actorID))
	return nil
}

func (s *Service) getChat(ctx context.Context, chatID int64) (chat.Chat, error) {
	c, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return chat.Chat{}, ErrChatNotFound
		}
		return chat.Chat{}, ErrInternal
	}
	return c, nil
}

func (s *Service) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	return nil
}
