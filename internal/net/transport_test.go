package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) (*SignalClient, <-chan Message) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	msgs := make(chan Message, 8)
	go func() {
		_ = c.Listen(func(m Message) { msgs <- m })
		close(msgs)
	}()
	return c, msgs
}

func receive(t *testing.T, msgs <-chan Message) Message {
	t.Helper()
	select {
	case m, ok := <-msgs:
		require.True(t, ok, "connection closed")
		return m
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func waitPeers(t *testing.T, hub *Hub, room string, want ...string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(want, hub.Peers(room))
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHubAnnouncesJoinAndLeave(t *testing.T) {
	hub, url := startHub(t)

	alice, aliceMsgs := dial(t, url)
	require.NoError(t, alice.Join("room-1", "alice"))
	waitPeers(t, hub, "room-1", "alice")

	bob, _ := dial(t, url)
	require.NoError(t, bob.Join("room-1", "bob"))
	assert.Equal(t, Message{Type: UserConnected, Room: "room-1", Peer: "bob"}, receive(t, aliceMsgs))

	require.NoError(t, bob.Leave("room-1", "bob"))
	assert.Equal(t, Message{Type: UserDisconnected, Room: "room-1", Peer: "bob"}, receive(t, aliceMsgs))
	waitPeers(t, hub, "room-1", "alice")
}

func TestHubAnnouncesDroppedConnection(t *testing.T) {
	hub, url := startHub(t)

	alice, aliceMsgs := dial(t, url)
	require.NoError(t, alice.Join("r", "alice"))
	waitPeers(t, hub, "r", "alice")

	bob, _ := dial(t, url)
	require.NoError(t, bob.Join("r", "bob"))
	require.Equal(t, UserConnected, receive(t, aliceMsgs).Type)

	require.NoError(t, bob.Close())
	assert.Equal(t, Message{Type: UserDisconnected, Room: "r", Peer: "bob"}, receive(t, aliceMsgs))
}

func TestHubKeepsRoomsApart(t *testing.T) {
	hub, url := startHub(t)

	alice, aliceMsgs := dial(t, url)
	require.NoError(t, alice.Join("a", "alice"))
	waitPeers(t, hub, "a", "alice")

	bob, _ := dial(t, url)
	require.NoError(t, bob.Join("b", "bob"))
	waitPeers(t, hub, "b", "bob")

	carol, _ := dial(t, url)
	require.NoError(t, carol.Join("a", "carol"))
	assert.Equal(t, "carol", receive(t, aliceMsgs).Peer)
}

func TestHubIgnoresIncompleteJoin(t *testing.T) {
	hub, url := startHub(t)
	c, _ := dial(t, url)
	require.NoError(t, c.Join("", "nobody"))
	require.NoError(t, c.Join("r", "somebody"))
	waitPeers(t, hub, "r", "somebody")
	assert.Empty(t, hub.Peers(""))
}

func TestListenReturnsNilAfterClose(t *testing.T) {
	_, url := startHub(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, url)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- c.Listen(func(Message) {}) }()
	require.NoError(t, c.Close())

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Listen did not return")
	}
}

func TestShareLink(t *testing.T) {
	link := ShareLink("192.168.1.4", 3030)
	assert.Equal(t, "matrixboard://192.168.1.4:3030", link)

	addr, ok := ParseShareLink(link + "/")
	require.True(t, ok)
	assert.Equal(t, "192.168.1.4:3030", addr)
	assert.Equal(t, "ws://192.168.1.4:3030/ws", SignalURL(addr))

	_, ok = ParseShareLink("http://x")
	assert.False(t, ok)
	_, ok = ParseShareLink(CustomURLScheme)
	assert.False(t, ok)
}
