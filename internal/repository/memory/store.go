// Package memory is an in-process implementation of the domain repositories,
// used by use-case and handler tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"skill-exchange/internal/domain/chat"
	"skill-exchange/internal/domain/rating"
	"skill-exchange/internal/domain/user"
)

type Store struct {
	mu sync.Mutex

	// Err, when set, is returned by every repository call.
	Err error

	nextID   int64
	users    map[int64]user.User
	chats    map[int64]chat.Chat
	messages []chat.Message
	ratings  []rating.Rating
}

func NewStore() *Store {
	return &Store{
		users: map[int64]user.User{},
		chats: map[int64]chat.Chat{},
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Chats() *ChatRepository       { return &ChatRepository{s: s} }
func (s *Store) Messages() *MessageRepository { return &MessageRepository{s: s} }
func (s *Store) Ratings() *RatingRepository   { return &RatingRepository{s: s} }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.User{}, user.ErrEmailTaken
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now().UTC()
	r.s.users[u.ID] = u
	return r.s.withRating(u), nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return r.s.withRating(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return r.s.withRating(u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, user.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *UserRepository) Update(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return user.User{}, r.s.Err
	}
	existing, ok := r.s.users[u.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.Email = existing.Email
	u.PasswordHash = existing.PasswordHash
	u.CreatedAt = existing.CreatedAt
	r.s.users[u.ID] = u
	return r.s.withRating(u), nil
}

func (r *UserRepository) ListExcluding(_ context.Context, id int64) ([]user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]user.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if u.ID != id {
			out = append(out, r.s.withRating(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) withRating(u user.User) user.User {
	sum, n := 0, 0
	for _, r := range s.ratings {
		if r.RatedID == u.ID {
			sum += r.Value
			n++
		}
	}
	u.AverageRating = 0
	if n > 0 {
		u.AverageRating = float64(sum) / float64(n)
	}
	return u
}

type ChatRepository struct{ s *Store }

func (r *ChatRepository) Create(_ context.Context, user1ID, user2ID int64) (chat.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return chat.Chat{}, r.s.Err
	}
	if _, ok := r.s.findPair(user1ID, user2ID); ok {
		return chat.Chat{}, chat.ErrExists
	}
	c := chat.Chat{ID: r.s.id(), User1ID: user1ID, User2ID: user2ID, CreatedAt: time.Now().UTC()}
	r.s.chats[c.ID] = c
	return c, nil
}

func (r *ChatRepository) GetByID(_ context.Context, id int64) (chat.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return chat.Chat{}, r.s.Err
	}
	c, ok := r.s.chats[id]
	if !ok {
		return chat.Chat{}, chat.ErrNotFound
	}
	return c, nil
}

func (r *ChatRepository) FindByPair(_ context.Context, userA, userB int64) (chat.Chat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return chat.Chat{}, r.s.Err
	}
	c, ok := r.s.findPair(userA, userB)
	if !ok {
		return chat.Chat{}, chat.ErrNotFound
	}
	return c, nil
}

func (s *Store) findPair(a, b int64) (chat.Chat, bool) {
	for _, c := range s.chats {
		if c.HasParticipant(a) && c.HasParticipant(b) {
			return c, true
		}
	}
	return chat.Chat{}, false
}

func (r *ChatRepository) ListSummaries(_ context.Context, userID int64) ([]chat.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]chat.Summary, 0)
	for _, c := range r.s.chats {
		if !c.HasParticipant(userID) {
			continue
		}
		u1, u2 := r.s.users[c.User1ID], r.s.users[c.User2ID]
		sum := chat.Summary{
			Chat:        c,
			User1Name:   u1.Name,
			User2Name:   u2.Name,
			User1Avatar: u1.ImageURL,
			User2Avatar: u2.ImageURL,
		}
		for _, m := range r.s.messages {
			if m.ChatID == c.ID && m.SenderID != userID && !m.IsRead {
				sum.UnreadCount++
			}
		}
		for _, rt := range r.s.ratings {
			if rt.ChatID == c.ID && rt.RaterID == userID {
				sum.IsRatedByCurrentUser = true
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *ChatRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.chats[id]; !ok {
		return chat.ErrNotFound
	}
	delete(r.s.chats, id)
	kept := r.s.messages[:0]
	for _, m := range r.s.messages {
		if m.ChatID != id {
			kept = append(kept, m)
		}
	}
	r.s.messages = kept
	keptRatings := r.s.ratings[:0]
	for _, rt := range r.s.ratings {
		if rt.ChatID != id {
			keptRatings = append(keptRatings, rt)
		}
	}
	r.s.ratings = keptRatings
	return nil
}

type MessageRepository struct{ s *Store }

func (r *MessageRepository) Create(_ context.Context, m chat.Message) (chat.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return chat.Message{}, r.s.Err
	}
	m.ID = r.s.id()
	m.SenderName = r.s.users[m.SenderID].Name
	m.Timestamp = time.Now().UTC()
	m.IsRead = false
	r.s.messages = append(r.s.messages, m)
	return m, nil
}

func (r *MessageRepository) ListByChat(_ context.Context, chatID int64) ([]chat.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]chat.Message, 0)
	for _, m := range r.s.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MessageRepository) MarkRead(_ context.Context, chatID, readerID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	for i := range r.s.messages {
		m := &r.s.messages[i]
		if m.ChatID == chatID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

type RatingRepository struct{ s *Store }

func (r *RatingRepository) Create(_ context.Context, in rating.Rating) (rating.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return rating.Rating{}, r.s.Err
	}
	for _, existing := range r.s.ratings {
		if existing.RaterID == in.RaterID && existing.ChatID == in.ChatID {
			return rating.Rating{}, rating.ErrAlreadyRated
		}
	}
	in.ID = r.s.id()
	in.RaterName = r.s.users[in.RaterID].Name
	in.Timestamp = time.Now().UTC()
	r.s.ratings = append(r.s.ratings, in)
	return in, nil
}
