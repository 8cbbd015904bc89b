package websocket

import (
	"context"
	"errors"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/infrastructure/ratelimit"
	apperrors "upcyclehub/pkg/errors"
	"upcyclehub/pkg/logger"
)

// ChatService is the slice of the chat use case the router needs: validate
// the conversation, persist the message, and name the recipient.
type ChatService interface {
	SendChatMessage(ctx context.Context, senderID, conversationID int64, content string) (*entity.Message, int64, error)
}

// ChatRouter decodes inbound events, enforces authenticate-before-chat,
// persists chat messages and fans them out to the other participant.
//
// Every failure is answered with an error frame on the originating
// connection only; nothing here ever terminates a connection or leaks an
// error to other connections.
type ChatRouter struct {
	registry *Registry
	chat     ChatService
	limiter  *ratelimit.Limiter
}

func NewChatRouter(registry *Registry, chat ChatService, limiter *ratelimit.Limiter) *ChatRouter {
	return &ChatRouter{
		registry: registry,
		chat:     chat,
		limiter:  limiter,
	}
}

// Registry exposes the router's connection registry for handlers that
// report liveness.
func (r *ChatRouter) Registry() *Registry {
	return r.registry
}

// HandleFrame processes one inbound frame from client. It is called from
// the client's read pump, so frames from a single connection are handled
// strictly in order.
func (r *ChatRouter) HandleFrame(client *Client, data []byte) {
	event, err := ParseEvent(data)
	if err != nil {
		client.sendError(errorMessage(err))
		return
	}

	switch event := event.(type) {
	case *AuthEvent:
		r.handleAuth(client, event)
	case *ChatEvent:
		r.handleChat(client, event)
	}
}

// HandleDisconnect runs registry cleanup when client's transport closes.
// Safe to call for pending or already-removed clients.
func (r *ChatRouter) HandleDisconnect(client *Client) {
	if userID, authed := client.Identity(); authed {
		logger.Info("websocket: user %d disconnected", userID)
	}
	r.registry.Unregister(client)
	client.Close()
}

func (r *ChatRouter) handleAuth(client *Client, event *AuthEvent) {
	if !client.bind(event.UserID) {
		// Identity is immutable once set; a second auth is out of sequence.
		client.sendError("Already authenticated")
		return
	}
	r.registry.Register(event.UserID, client)
	logger.Info("websocket: user %d connected", event.UserID)
}

func (r *ChatRouter) handleChat(client *Client, event *ChatEvent) {
	senderID, authed := client.Identity()
	if !authed {
		client.sendError("Authentication required")
		return
	}

	if r.limiter != nil {
		if allowed, _ := r.limiter.Allow(senderID, ratelimit.ActionChatMessage); !allowed {
			client.sendError("Too many messages, slow down")
			return
		}
	}

	message, recipientID, err := r.chat.SendChatMessage(context.Background(), senderID, event.ConversationID, event.Content)
	if err != nil {
		logger.Warn("websocket: chat from user %d in conversation %d failed: %v", senderID, event.ConversationID, err)
		client.sendError(errorMessage(err))
		return
	}

	// Best-effort live delivery to the recipient, then the persistence
	// acknowledgment back to the sender regardless of recipient presence.
	r.registry.SendToUser(recipientID, encodeMessageFrame(EventTypeMessage, message))
	client.Enqueue(encodeMessageFrame(EventTypeMessageSent, message))
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Invalid message format"
}
