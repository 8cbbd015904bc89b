package repository

import (
	"context"

	"upcyclehub/internal/domain/entity"
)

// MessageRepository is the durable append/read store for chat messages.
// Create assigns the message its ID and creation timestamp.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	ListByConversation(ctx context.Context, conversationID int64) ([]*entity.Message, error)
}
