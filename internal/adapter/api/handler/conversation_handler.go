package handler

import (
	"github.com/labstack/echo/v4"

	"upcyclehub/internal/usecase"
	"upcyclehub/pkg/response"
)

type ConversationHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewConversationHandler(chatUseCase *usecase.ChatUseCase) *ConversationHandler {
	return &ConversationHandler{
		chatUseCase: chatUseCase,
	}
}

type openConversationRequest struct {
	ProductID int64 `json:"productId" validate:"required,min=1"`
	BuyerID   int64 `json:"buyerId" validate:"required,min=1"`
	SellerID  int64 `json:"sellerId" validate:"required,min=1"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListConversations returns the authenticated user's conversations.
func (h *ConversationHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(int64)

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

// OpenConversation returns the conversation for a product and participant
// pair, creating it on first contact.
func (h *ConversationHandler) OpenConversation(c echo.Context) error {
	var req openConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	conversation, created, err := h.chatUseCase.OpenConversation(c.Request().Context(), userID, usecase.OpenConversationInput{
		ProductID: req.ProductID,
		BuyerID:   req.BuyerID,
		SellerID:  req.SellerID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if created {
		return response.Created(c, conversation)
	}
	return response.Success(c, conversation)
}

// GetMessages returns the conversation's message history in chronological
// order. Offline recipients catch up through this endpoint.
func (h *ConversationHandler) GetMessages(c echo.Context) error {
	conversationID, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	messages, err := h.chatUseCase.GetConversationMessages(c.Request().Context(), userID, conversationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// SendMessage appends a message over HTTP. Unlike the socket path this
// does not push a live frame to the recipient; clients that want live
// delivery use the websocket.
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	conversationID, err := pathID(c, "id")
	if err != nil {
		return response.Error(c, err)
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(int64)

	message, _, err := h.chatUseCase.SendChatMessage(c.Request().Context(), userID, conversationID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
