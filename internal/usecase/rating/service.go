package rating

import (
	"context"
	"errors"

	"skill-exchange/internal/domain/chat"
	"skill-exchange/internal/domain/rating"
	"skill-exchange/internal/domain/user"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrChatNotFound = errors.New("chat not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrAlreadyRated = errors.New("already rated")
	ErrInternal     = errors.New("internal error")
)

type CreateInput struct {
	RaterID int64
	RatedID int64
	ChatID  int64
	Value   int
	Comment *string
}

type Service struct {
	users   user.Repository
	chats   chat.Repository
	ratings rating.Repository
}

func NewService(users user.Repository, chats chat.Repository, ratings rating.Repository) *Service {
	return &Service{users: users, chats: chats, ratings: ratings}
}

// Create records one rating per rater per chat. Both users must take part
// in the chat.
func (s *Service) Create(ctx context.Context, actorID int64, in CreateInput) (rating.Rating, error) {
	if in.RaterID <= 0 || in.RatedID <= 0 || in.ChatID <= 0 || in.RaterID == in.RatedID {
		return rating.Rating{}, ErrInvalidInput
	}
	if in.Value < rating.MinValue || in.Value > rating.MaxValue {
		return rating.Rating{}, ErrInvalidInput
	}
	if actorID != in.RaterID {
		return rating.Rating{}, ErrForbidden
	}

	for _, id := range []int64{in.RaterID, in.RatedID} {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return rating.Rating{}, ErrUserNotFound
			}
			return rating.Rating{}, ErrInternal
		}
	}

	c, err := s.chats.GetByID(ctx, in.ChatID)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			return rating.Rating{}, ErrChatNotFound
		}
		return rating.Rating{}, ErrInternal
	}
	if !c.HasParticipant(in.RaterID) || !c.HasParticipant(in.RatedID) {
		return rating.Rating{}, ErrForbidden
	}

	out, err := s.ratings.Create(ctx, rating.Rating{
		RaterID: in.RaterID,
		RatedID: in.RatedID,
		ChatID:  in.ChatID,
		Value:   in.Value,
		Comment: in.Comment,
	})
	if err != nil {
		if errors.Is(err, rating.ErrAlreadyRated) {
			return rating.Rating{}, ErrAlreadyRated
		}
		return rating.Rating{}, ErrInternal
	}
	return out, nil
}
