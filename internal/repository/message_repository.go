package repository

import (
	"context"

	"skill-exchange/internal/database"
	"skill-exchange/internal/domain/chat"
)

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	row := r.db.QueryRow(ctx,
		`WITH ins AS (
			INSERT INTO messages (chat_id, sender_id, content)
			VALUES ($1, $2, $3)
			RETURNING id, chat_id, sender_id, content, timestamp, is_read
		 )
		 SELECT ins.id, ins.chat_id, ins.sender_id, u.name, ins.content, ins.timestamp, ins.is_read
		 FROM ins JOIN users u ON u.id = ins.sender_id`,
		m.ChatID, m.SenderID, m.Content,
	)

	var out chat.Message
	if err := row.Scan(&out.ID, &out.ChatID, &out.SenderID, &out.SenderName, &out.Content, &out.Timestamp, &out.IsRead); err != nil {
		return chat.Message{}, err
	}
	return out, nil
}

func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID int64) ([]chat.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.chat_id, m.sender_id, u.name, m.content, m.timestamp, m.is_read
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.chat_id = $1
		 ORDER BY m.timestamp ASC, m.id ASC`,
		chatID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.SenderName, &m.Content, &m.Timestamp, &m.IsRead); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags every unread message in the chat not sent by readerID.
func (r *PostgresMessageRepository) MarkRead(ctx context.Context, chatID, readerID int64) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE messages SET is_read = true
		 WHERE chat_id = $1 AND sender_id <> $2 AND NOT is_read`,
		chatID, readerID,
	)
}
