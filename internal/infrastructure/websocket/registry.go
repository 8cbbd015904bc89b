package websocket

import (
	"sync"

	"upcyclehub/pkg/logger"
)

// Registry is the process-local map from user identity to the single live
// connection used for message routing. It holds no persistent state: after
// a restart every user must re-authenticate their socket.
//
// The registry is shared by one read pump per connection, so all access is
// mutex-guarded.
type Registry struct {
	mu      sync.RWMutex
	clients map[int64]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[int64]*Client),
	}
}

// Register binds userID to client, replacing any previous binding. The
// superseded connection is explicitly closed so duplicate logins cannot
// leak orphaned sockets; last registered wins for routing.
func (r *Registry) Register(userID int64, client *Client) {
	r.mu.Lock()
	prev := r.clients[userID]
	r.clients[userID] = client
	r.mu.Unlock()

	if prev != nil && prev != client {
		logger.Info("websocket: user %d reconnected, closing superseded connection", userID)
		prev.Close()
	}
}

// Unregister removes the registry entry for client, but only if the entry
// still points at it: a connection that was replaced by a newer login must
// not evict its replacement when it finally closes. Idempotent; a pending
// (never-authenticated) client is a no-op.
func (r *Registry) Unregister(client *Client) {
	userID, authed := client.Identity()
	if !authed {
		return
	}

	r.mu.Lock()
	if current, ok := r.clients[userID]; ok && current == client {
		delete(r.clients, userID)
	}
	r.mu.Unlock()
}

// Lookup returns the live connection for userID, if any.
func (r *Registry) Lookup(userID int64) (*Client, bool) {
	r.mu.RLock()
	client, ok := r.clients[userID]
	r.mu.RUnlock()
	return client, ok
}

// SendToUser delivers a frame to userID's live connection. Delivery is
// best-effort: it reports false when the user is offline.
func (r *Registry) SendToUser(userID int64, payload []byte) bool {
	client, ok := r.Lookup(userID)
	if !ok {
		return false
	}
	return client.Enqueue(payload)
}

// Online returns the number of authenticated connections.
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
