package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoundClient(userID int64) *Client {
	c := NewClient(nil)
	c.bind(userID)
	return c
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewRegistry()
	client := newBoundClient(1)

	registry.Register(1, client)

	got, ok := registry.Lookup(1)
	require.True(t, ok)
	assert.Same(t, client, got)
	assert.Equal(t, 1, registry.Online())

	_, ok = registry.Lookup(2)
	assert.False(t, ok)
}

func TestRegistryReplacementClosesSuperseded(t *testing.T) {
	registry := NewRegistry()
	first := newBoundClient(1)
	second := newBoundClient(1)

	registry.Register(1, first)
	registry.Register(1, second)

	got, ok := registry.Lookup(1)
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, registry.Online())

	// The superseded connection no longer accepts frames.
	assert.False(t, first.Enqueue([]byte("x")))
	assert.True(t, second.Enqueue([]byte("x")))
}

func TestRegistryUnregisterOnlyRemovesOwnEntry(t *testing.T) {
	registry := NewRegistry()
	first := newBoundClient(1)
	second := newBoundClient(1)

	registry.Register(1, first)
	registry.Register(1, second)

	// The replaced connection closes late; it must not evict its
	// replacement.
	registry.Unregister(first)

	got, ok := registry.Lookup(1)
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	client := newBoundClient(1)
	other := newBoundClient(2)

	registry.Register(1, client)
	registry.Register(2, other)

	registry.Unregister(client)
	registry.Unregister(client) // second close of the same connection

	pending := NewClient(nil)
	registry.Unregister(pending) // never authenticated

	_, ok := registry.Lookup(1)
	assert.False(t, ok)

	got, ok := registry.Lookup(2)
	require.True(t, ok)
	assert.Same(t, other, got)
}

func TestRegistrySendToUserOffline(t *testing.T) {
	registry := NewRegistry()
	assert.False(t, registry.SendToUser(99, []byte("x")))
}
