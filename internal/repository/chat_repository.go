package repository

import (
	"context"

	"skill-exchange/internal/database"
	dbpostgres "skill-exchange/internal/database/postgres"
	"skill-exchange/internal/domain/chat"
)

type PostgresChatRepository struct {
	db database.DB
}

func NewPostgresChatRepository(db database.DB) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, user1ID, user2ID int64) (chat.Chat, error) {
	c := chat.Chat{User1ID: user1ID, User2ID: user2ID}
	row := r.db.QueryRow(ctx,
		`INSERT INTO chats (user1_id, user2_id) VALUES ($1, $2) RETURNING id, created_at`,
		user1ID, user2ID,
	)
	if err := row.Scan(&c.ID, &c.CreatedAt); err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return chat.Chat{}, chat.ErrExists
		}
		return chat.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id int64) (chat.Chat, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user1_id, user2_id, created_at FROM chats WHERE id = $1`,
		id,
	)
	return scanChat(row)
}

func (r *PostgresChatRepository) FindByPair(ctx context.Context, userA, userB int64) (chat.Chat, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user1_id, user2_id, created_at
		 FROM chats
		 WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
		 LIMIT 1`,
		userA, userB,
	)
	return scanChat(row)
}

func (r *PostgresChatRepository) ListSummaries(ctx context.Context, userID int64) ([]chat.Summary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.user1_id, c.user2_id, c.created_at,
		        u1.name, u2.name, u1.image_url, u2.image_url,
		        (SELECT COUNT(*) FROM messages m
		          WHERE m.chat_id = c.id AND m.sender_id <> $1 AND NOT m.is_read),
		        EXISTS(SELECT 1 FROM ratings r WHERE r.chat_id = c.id AND r.rater_id = $1)
		 FROM chats c
		 JOIN users u1 ON u1.id = c.user1_id
		 JOIN users u2 ON u2.id = c.user2_id
		 WHERE c.user1_id = $1 OR c.user2_id = $1
		 ORDER BY c.created_at DESC, c.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Summary, 0)
	for rows.Next() {
		var s chat.Summary
		if err := rows.Scan(
			&s.ID, &s.User1ID, &s.User2ID, &s.CreatedAt,
			&s.User1Name, &s.User2Name, &s.User1Avatar, &s.User2Avatar,
			&s.UnreadCount, &s.IsRatedByCurrentUser,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresChatRepository) Delete(ctx context.Context, id int64) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return chat.ErrNotFound
	}
	return nil
}

func scanChat(row database.Row) (chat.Chat, error) {
	var c chat.Chat
	if err := row.Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt); err != nil {
		if dbpostgres.IsNoRows(err) {
			return chat.Chat{}, chat.ErrNotFound
		}
		return chat.Chat{}, err
	}
	return c, nil
}
