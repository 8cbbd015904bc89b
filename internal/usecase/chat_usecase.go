package usecase

import (
	"context"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
	"upcyclehub/pkg/logger"
)

type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	productRepo      repository.ProductRepository
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	productRepo repository.ProductRepository,
) *ChatUseCase {
	return &ChatUseCase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		productRepo:      productRepo,
	}
}

type OpenConversationInput struct {
	ProductID int64
	BuyerID   int64
	SellerID  int64
}

// OpenConversation returns the existing conversation for the given
// product and participant pair, creating it if none exists. The second
// return value reports whether a new conversation was created.
func (uc *ChatUseCase) OpenConversation(ctx context.Context, userID int64, input OpenConversationInput) (*entity.Conversation, bool, error) {
	if userID != input.BuyerID && userID != input.SellerID {
		return nil, false, errors.Forbidden("You are not a participant of this conversation", nil)
	}
	if input.BuyerID == input.SellerID {
		return nil, false, errors.BadRequest("Buyer and seller must be different users", nil)
	}

	if _, err := uc.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, false, err
	}

	conversation, err := uc.conversationRepo.GetByParticipants(ctx, input.ProductID, input.BuyerID, input.SellerID)
	if err == nil {
		return conversation, false, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, false, err
	}

	conversation = &entity.Conversation{
		ProductID: input.ProductID,
		BuyerID:   input.BuyerID,
		SellerID:  input.SellerID,
	}
	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, false, err
	}
	return conversation, true, nil
}

// ListConversations returns every conversation the user participates in.
func (uc *ChatUseCase) ListConversations(ctx context.Context, userID int64) ([]*entity.Conversation, error) {
	return uc.conversationRepo.ListByUserID(ctx, userID)
}

// GetConversationMessages returns the conversation's messages in
// chronological order. Only a participant may read them.
func (uc *ChatUseCase) GetConversationMessages(ctx context.Context, userID, conversationID int64) ([]*entity.Message, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this conversation", nil)
	}
	return uc.messageRepo.ListByConversation(ctx, conversationID)
}

// SendChatMessage validates the conversation, persists the message and
// returns it along with the recipient's identity. Validation runs before
// the append, so a chat referencing a nonexistent conversation writes
// nothing.
func (uc *ChatUseCase) SendChatMessage(ctx context.Context, senderID, conversationID int64, content string) (*entity.Message, int64, error) {
	if content == "" {
		return nil, 0, errors.BadRequest("content must not be empty", nil)
	}

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, 0, errors.Forbidden("You are not a participant of this conversation", nil)
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, 0, err
	}

	// Preview bookkeeping only; a failure here must not fail the send.
	if err := uc.conversationRepo.UpdateLastMessage(ctx, conversationID, content, message.CreatedAt); err != nil {
		logger.Warn("chat: failed to update last message for conversation %d: %v", conversationID, err)
	}

	return message, conversation.Recipient(senderID), nil
}
