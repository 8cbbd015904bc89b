package repository

import (
	"context"
	"database/sql"
	"time"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
)

type postgresConversationRepository struct {
	db *sql.DB
}

func NewPostgresConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &postgresConversationRepository{db: db}
}

const conversationColumns = "id, product_id, buyer_id, seller_id, COALESCE(last_message, ''), last_message_time, created_at"

func scanConversation(row *sql.Row) (*entity.Conversation, error) {
	var c entity.Conversation
	err := row.Scan(&c.ID, &c.ProductID, &c.BuyerID, &c.SellerID,
		&c.LastMessage, &c.LastMessageTime, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Conversation", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get conversation", err)
	}
	return &c, nil
}

func (r *postgresConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	conversation.CreatedAt = time.Now()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO conversations (product_id, buyer_id, seller_id, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		conversation.ProductID, conversation.BuyerID, conversation.SellerID, conversation.CreatedAt,
	).Scan(&conversation.ID)
	if err != nil {
		return errors.Internal("Failed to create conversation", err)
	}
	return nil
}

func (r *postgresConversationRepository) GetByID(ctx context.Context, id int64) (*entity.Conversation, error) {
	return scanConversation(r.db.QueryRowContext(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE id = $1", id))
}

func (r *postgresConversationRepository) GetByParticipants(ctx context.Context, productID, buyerID, sellerID int64) (*entity.Conversation, error) {
	return scanConversation(r.db.QueryRowContext(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE product_id = $1 AND buyer_id = $2 AND seller_id = $3",
		productID, buyerID, sellerID))
}

func (r *postgresConversationRepository) ListByUserID(ctx context.Context, userID int64) ([]*entity.Conversation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+conversationColumns+" FROM conversations WHERE buyer_id = $1 OR seller_id = $1 ORDER BY last_message_time DESC NULLS LAST, created_at DESC",
		userID)
	if err != nil {
		return nil, errors.Internal("Failed to list conversations", err)
	}
	defer rows.Close()

	var conversations []*entity.Conversation
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.ProductID, &c.BuyerID, &c.SellerID,
			&c.LastMessage, &c.LastMessageTime, &c.CreatedAt); err != nil {
			return nil, errors.Internal("Failed to scan conversation", err)
		}
		conversations = append(conversations, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("Failed to iterate conversations", err)
	}
	return conversations, nil
}

func (r *postgresConversationRepository) UpdateLastMessage(ctx context.Context, id int64, content string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE conversations SET last_message = $1, last_message_time = $2 WHERE id = $3",
		content, at, id)
	if err != nil {
		return errors.Internal("Failed to update conversation last message", err)
	}
	return nil
}
