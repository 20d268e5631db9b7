package net

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// SignalClient is one peer's connection to a Hub.
type SignalClient struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed atomic.Bool
}

// Dial connects to the hub at url, e.g. the result of SignalURL.
func Dial(ctx context.Context, url string) (*SignalClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	log.Printf("[SIGNAL] connected to %s", url)
	return &SignalClient{conn: conn}, nil
}

func (c *SignalClient) Join(room, peer string) error {
	return c.send(Message{Type: JoinRoom, Room: room, Peer: peer})
}

func (c *SignalClient) Leave(room, peer string) error {
	return c.send(Message{Type: LeaveRoom, Room: room, Peer: peer})
}

func (c *SignalClient) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

// Listen reads messages and hands each to handle until the connection
// ends. It returns nil after Close.
func (c *SignalClient) Listen(handle func(Message)) error {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if c.closed.Load() || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("signaling connection lost: %w", err)
		}
		handle(msg)
	}
}

func (c *SignalClient) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.mu.Lock()
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mu.Unlock()
	return c.conn.Close()
}
