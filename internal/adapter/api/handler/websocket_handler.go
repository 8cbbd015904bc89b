package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "upcyclehub/internal/infrastructure/websocket"
	"upcyclehub/pkg/errors"
)

type WebSocketHandler struct {
	chatRouter *ws.ChatRouter
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict in production
	},
}

func NewWebSocketHandler(chatRouter *ws.ChatRouter) *WebSocketHandler {
	return &WebSocketHandler{
		chatRouter: chatRouter,
	}
}

// HandleWebSocket upgrades the connection and starts its pumps. The
// connection starts out pending: it is bound to an identity by its first
// auth event, not by HTTP middleware.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(conn)
	go client.WritePump()
	go client.ReadPump(h.chatRouter)

	return nil
}
