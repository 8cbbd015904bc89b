package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upcyclehub/internal/adapter/api"
	"upcyclehub/internal/adapter/api/handler"
	apimiddleware "upcyclehub/internal/adapter/api/middleware"
	"upcyclehub/internal/adapter/api/router"
	"upcyclehub/internal/adapter/repository"
	"upcyclehub/internal/infrastructure/ratelimit"
	ws "upcyclehub/internal/infrastructure/websocket"
	"upcyclehub/internal/usecase"
)

const testSecret = "test-secret"

type testApp struct {
	server   *httptest.Server
	store    *repository.MemoryStore
	registry *ws.Registry
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := repository.NewMemoryStore()

	authUseCase := usecase.NewAuthUseCase(store.Users(), testSecret, 3600)
	productUseCase := usecase.NewProductUseCase(store.Products())
	chatUseCase := usecase.NewChatUseCase(store.Conversations(), store.Messages(), store.Products())

	registry := ws.NewRegistry()
	chatRouter := ws.NewChatRouter(registry, chatUseCase, ratelimit.NewLimiter())

	e := echo.New()
	e.Use(echomiddleware.Recover())
	e.Validator = api.NewValidator()

	router.Setup(e, router.Handlers{
		Auth:         handler.NewAuthHandler(authUseCase),
		Product:      handler.NewProductHandler(productUseCase),
		Conversation: handler.NewConversationHandler(chatUseCase),
		WebSocket:    handler.NewWebSocketHandler(chatRouter),
		Health:       handler.NewHealthHandler(registry),
	}, apimiddleware.NewAuthMiddleware(testSecret))

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return &testApp{server: server, store: store, registry: registry}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *testApp) request(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(encoded)
	} else {
		payload = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, a.server.URL+path, payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// signup registers and logs in a user, returning its ID and bearer token.
func (a *testApp) signup(t *testing.T, username string) (int64, string) {
	t.Helper()

	status, _ := a.request(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
		"fullName": username + " test",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := a.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)

	var login struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	return login.User.ID, login.Token
}

func (a *testApp) createProduct(t *testing.T, token, title string) int64 {
	t.Helper()

	status, env := a.request(t, http.MethodPost, "/api/products", token, map[string]any{
		"title":       title,
		"description": "gently used",
		"price":       4200,
		"category":    "furniture",
		"condition":   "good",
		"location":    "Porto",
	})
	require.Equal(t, http.StatusCreated, status)

	var product struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))
	return product.ID
}

func (a *testApp) openConversation(t *testing.T, token string, productID, buyerID, sellerID int64) int64 {
	t.Helper()

	status, env := a.request(t, http.MethodPost, "/api/conversations", token, map[string]any{
		"productId": productID,
		"buyerId":   buyerID,
		"sellerId":  sellerID,
	})
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, status)

	var conversation struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &conversation))
	return conversation.ID
}

// dial opens a websocket connection to the app.
func (a *testApp) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(a.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type wsFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    *struct {
		ID             int64  `json:"id"`
		ConversationID int64  `json:"conversationId"`
		SenderID       int64  `json:"senderId"`
		Content        string `json:"content"`
	} `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var f wsFrame
	require.NoError(t, json.Unmarshal(payload, &f))
	return f
}

func (a *testApp) authSocket(t *testing.T, conn *websocket.Conn, userID int64, wantOnline int) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "auth", "userId": userID}))
	require.Eventually(t, func() bool {
		return a.registry.Online() >= wantOnline
	}, 2*time.Second, 10*time.Millisecond, "socket for user %d never registered", userID)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.server.Client().Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Online int    `json:"online"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Zero(t, body.Online)
}

func TestLiveChatBetweenTwoUsers(t *testing.T) {
	app := newTestApp(t)

	buyerID, buyerToken := app.signup(t, "buyer")
	sellerID, sellerToken := app.signup(t, "seller")
	productID := app.createProduct(t, sellerToken, "Reclaimed oak table")
	conversationID := app.openConversation(t, buyerToken, productID, buyerID, sellerID)

	buyerConn := app.dial(t)
	sellerConn := app.dial(t)
	app.authSocket(t, buyerConn, buyerID, 1)
	app.authSocket(t, sellerConn, sellerID, 2)

	require.NoError(t, buyerConn.WriteJSON(map[string]any{
		"type":           "chat",
		"conversationId": conversationID,
		"content":        "is this still available?",
	}))

	delivered := readFrame(t, sellerConn)
	assert.Equal(t, "message", delivered.Type)
	require.NotNil(t, delivered.Data)
	assert.Equal(t, conversationID, delivered.Data.ConversationID)
	assert.Equal(t, buyerID, delivered.Data.SenderID)
	assert.Equal(t, "is this still available?", delivered.Data.Content)

	ack := readFrame(t, buyerConn)
	assert.Equal(t, "message_sent", ack.Type)
	require.NotNil(t, ack.Data)
	assert.Equal(t, delivered.Data.ID, ack.Data.ID)

	// The exchange is durable and visible over HTTP.
	status, env := app.request(t, http.MethodGet, fmt.Sprintf("/api/conversations/%d/messages", conversationID), sellerToken, nil)
	require.Equal(t, http.StatusOK, status)

	var messages []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "is this still available?", messages[0].Content)
}

func TestChatToOfflineRecipientIsPersisted(t *testing.T) {
	app := newTestApp(t)

	buyerID, buyerToken := app.signup(t, "buyer")
	sellerID, sellerToken := app.signup(t, "seller")
	productID := app.createProduct(t, sellerToken, "Vintage lamp")
	conversationID := app.openConversation(t, buyerToken, productID, buyerID, sellerID)

	buyerConn := app.dial(t)
	app.authSocket(t, buyerConn, buyerID, 1)

	require.NoError(t, buyerConn.WriteJSON(map[string]any{
		"type":           "chat",
		"conversationId": conversationID,
		"content":        "hello, anyone there?",
	}))

	ack := readFrame(t, buyerConn)
	assert.Equal(t, "message_sent", ack.Type)

	// The offline seller catches up through message history.
	status, env := app.request(t, http.MethodGet, fmt.Sprintf("/api/conversations/%d/messages", conversationID), sellerToken, nil)
	require.Equal(t, http.StatusOK, status)

	var messages []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "hello, anyone there?", messages[0].Content)
}

func TestChatToUnknownConversationWritesNothing(t *testing.T) {
	app := newTestApp(t)

	buyerID, _ := app.signup(t, "buyer")

	conn := app.dial(t)
	app.authSocket(t, conn, buyerID, 1)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":           "chat",
		"conversationId": 999,
		"content":        "hello?",
	}))

	f := readFrame(t, conn)
	assert.Equal(t, "error", f.Type)
	assert.Equal(t, "Conversation not found", f.Message)

	messages, err := app.store.Messages().ListByConversation(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestChatRequiresAuthentication(t *testing.T) {
	app := newTestApp(t)

	conn := app.dial(t)
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":           "chat",
		"conversationId": 1,
		"content":        "hi",
	}))

	f := readFrame(t, conn)
	assert.Equal(t, "error", f.Type)
	assert.Equal(t, "Authentication required", f.Message)
}

func TestReconnectSupersedesOldSocket(t *testing.T) {
	app := newTestApp(t)

	buyerID, buyerToken := app.signup(t, "buyer")
	sellerID, sellerToken := app.signup(t, "seller")
	productID := app.createProduct(t, sellerToken, "Bike frame")
	conversationID := app.openConversation(t, buyerToken, productID, buyerID, sellerID)

	buyerConn := app.dial(t)
	staleConn := app.dial(t)
	app.authSocket(t, buyerConn, buyerID, 1)
	app.authSocket(t, staleConn, sellerID, 2)

	freshConn := app.dial(t)
	require.NoError(t, freshConn.WriteJSON(map[string]any{"type": "auth", "userId": sellerID}))

	// The superseded connection is closed by the server.
	staleConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := staleConn.ReadMessage()
	require.Error(t, err)

	require.NoError(t, buyerConn.WriteJSON(map[string]any{
		"type":           "chat",
		"conversationId": conversationID,
		"content":        "still interested",
	}))

	delivered := readFrame(t, freshConn)
	assert.Equal(t, "message", delivered.Type)
	require.NotNil(t, delivered.Data)
	assert.Equal(t, "still interested", delivered.Data.Content)
}

func TestMalformedFramesAreAnsweredNotFatal(t *testing.T) {
	app := newTestApp(t)

	buyerID, buyerToken := app.signup(t, "buyer")
	sellerID, sellerToken := app.signup(t, "seller")
	productID := app.createProduct(t, sellerToken, "Record player")
	conversationID := app.openConversation(t, buyerToken, productID, buyerID, sellerID)

	conn := app.dial(t)
	app.authSocket(t, conn, buyerID, 1)

	for _, payload := range []string{
		`not json`,
		`{"type":"typing"}`,
		`{"type":"chat","content":"no conversation"}`,
	} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(payload)))
		f := readFrame(t, conn)
		assert.Equal(t, "error", f.Type, "payload %q", payload)
	}

	// The connection is still usable afterwards.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":           "chat",
		"conversationId": conversationID,
		"content":        "still here",
	}))
	f := readFrame(t, conn)
	assert.Equal(t, "message_sent", f.Type)
}

func TestConversationEndpointsEnforceMembership(t *testing.T) {
	app := newTestApp(t)

	buyerID, buyerToken := app.signup(t, "buyer")
	sellerID, sellerToken := app.signup(t, "seller")
	_, strangerToken := app.signup(t, "stranger")
	productID := app.createProduct(t, sellerToken, "Ceramic pots")
	conversationID := app.openConversation(t, buyerToken, productID, buyerID, sellerID)

	path := fmt.Sprintf("/api/conversations/%d/messages", conversationID)

	status, env := app.request(t, http.MethodGet, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	status, _ = app.request(t, http.MethodPost, path, strangerToken, map[string]any{"content": "hi"})
	assert.Equal(t, http.StatusForbidden, status)

	// Requests without a token never reach the handler.
	status, _ = app.request(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOpenConversationIsIdempotent(t *testing.T) {
	app := newTestApp(t)

	buyerID, buyerToken := app.signup(t, "buyer")
	sellerID, sellerToken := app.signup(t, "seller")
	productID := app.createProduct(t, sellerToken, "Wool rug")

	body := map[string]any{"productId": productID, "buyerId": buyerID, "sellerId": sellerID}

	status, env := app.request(t, http.MethodPost, "/api/conversations", buyerToken, body)
	require.Equal(t, http.StatusCreated, status)
	var first struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &first))

	status, env = app.request(t, http.MethodPost, "/api/conversations", sellerToken, body)
	require.Equal(t, http.StatusOK, status)
	var second struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, first.ID, second.ID)
}
