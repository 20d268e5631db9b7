package net

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Path is where the hub accepts websocket connections.
const Path = "/ws"

type MessageType string

const (
	JoinRoom         MessageType = "join-room"
	LeaveRoom        MessageType = "leave-room"
	UserConnected    MessageType = "user-connected"
	UserDisconnected MessageType = "user-disconnected"
)

// Message is one JSON text frame of the room protocol.
type Message struct {
	Type MessageType `json:"type"`
	Room string      `json:"room,omitempty"`
	Peer string      `json:"peer"`
}

// member is a connection to the hub. Writes are serialized per connection.
type member struct {
	conn *websocket.Conn
	mu   sync.Mutex
	room string
	peer string
}

func (m *member) send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return m.conn.WriteJSON(msg)
}

// Hub is run by the HOST. It groups connections into rooms and tells every
// member of a room when a peer joins or leaves it.
type Hub struct {
	rooms    map[string]map[*member]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*member]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients are other desktops on the LAN, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Peers lists the peer IDs currently in room.
func (h *Hub) Peers(room string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var peers []string
	for m := range h.rooms[room] {
		peers = append(peers, m.peer)
	}
	slices.Sort(peers)
	return peers
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HOST] websocket upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	m := &member{conn: conn}
	log.Printf("[HOST] signaling client connected from %s", r.RemoteAddr)

	defer conn.Close()
	defer h.leave(m)

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("[HOST] client %s disconnected: %v", r.RemoteAddr, err)
			return
		}
		log.Printf("[HOST] received '%s' from %s", msg.Type, r.RemoteAddr)
		switch msg.Type {
		case JoinRoom:
			if msg.Room == "" || msg.Peer == "" {
				continue
			}
			h.leave(m)
			h.join(m, msg.Room, msg.Peer)
		case LeaveRoom:
			h.leave(m)
		}
	}
}

func (h *Hub) join(m *member, room, peer string) {
	h.mu.Lock()
	m.room, m.peer = room, peer
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*member]bool)
	}
	h.rooms[room][m] = true
	others := h.others(m)
	h.mu.Unlock()

	log.Printf("[HOST] %s joined room %s", peer, room)
	broadcast(others, Message{Type: UserConnected, Room: room, Peer: peer})
}

func (h *Hub) leave(m *member) {
	h.mu.Lock()
	room, peer := m.room, m.peer
	if room == "" {
		h.mu.Unlock()
		return
	}
	others := h.others(m)
	delete(h.rooms[room], m)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
	m.room, m.peer = "", ""
	h.mu.Unlock()

	log.Printf("[HOST] %s left room %s", peer, room)
	broadcast(others, Message{Type: UserDisconnected, Room: room, Peer: peer})
}

// others must be called with h.mu held.
func (h *Hub) others(m *member) []*member {
	var out []*member
	for o := range h.rooms[m.room] {
		if o != m {
			out = append(out, o)
		}
	}
	return out
}

func broadcast(members []*member, msg Message) {
	for _, m := range members {
		if err := m.send(msg); err != nil {
			log.Printf("[HOST] error sending to %s: %v", m.peer, err)
		}
	}
}

// Serve runs the hub on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[HOST] signaling hub listening on %s%s", addr, Path)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("signaling hub: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// SignalURL is the websocket address of a hub reachable at host:port.
func SignalURL(address string) string {
	return "ws://" + address + Path
}
