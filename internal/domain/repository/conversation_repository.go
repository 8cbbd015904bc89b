package repository

import (
	"context"
	"time"

	"upcyclehub/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id int64) (*entity.Conversation, error)
	GetByParticipants(ctx context.Context, productID, buyerID, sellerID int64) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID int64) ([]*entity.Conversation, error)
	UpdateLastMessage(ctx context.Context, id int64, content string, at time.Time) error
}
