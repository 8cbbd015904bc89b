package repository

import (
	"context"
	"database/sql"
	"time"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
)

type postgresMessageRepository struct {
	db *sql.DB
}

func NewPostgresMessageRepository(db *sql.DB) repository.MessageRepository {
	return &postgresMessageRepository{db: db}
}

func (r *postgresMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	message.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		message.ConversationID, message.SenderID, message.Content, message.CreatedAt,
	).Scan(&message.ID)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}
	return nil
}

func (r *postgresMessageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]*entity.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, conversation_id, sender_id, content, created_at FROM messages WHERE conversation_id = $1 ORDER BY created_at, id",
		conversationID)
	if err != nil {
		return nil, errors.Internal("Failed to list messages", err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, errors.Internal("Failed to scan message", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate messages", err)
	}
	return messages, nil
}
