// Package call tracks presence in a video-call room: who this peer is,
// which room it joined, and which remote peers are in it.
package call

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"

	"MatrixBoard/internal/net"
)

var (
	ErrNotReady  = errors.New("room id and peer id are required to join a room")
	ErrNotJoined = errors.New("not in a room")
)

// Signaler carries room membership to the other peers.
// *net.SignalClient is the production implementation.
type Signaler interface {
	Join(room, peer string) error
	Leave(room, peer string) error
}

// Session is one peer's membership in a call room.
type Session struct {
	peerID   string
	signaler Signaler
	room     string
	peers    []string
	mu       sync.RWMutex

	// OnNotice reports user-facing messages such as peers joining.
	OnNotice func(string)
	// OnPeersChanged fires with the new roster after every change.
	OnPeersChanged func([]string)
}

// NewSession creates a session with a fresh peer ID.
func NewSession(s Signaler) *Session {
	return &Session{peerID: uuid.NewString(), signaler: s}
}

func (s *Session) PeerID() string {
	return s.peerID
}

// SetSignaler swaps the transport, for example once a late connection to
// the hub succeeds.
func (s *Session) SetSignaler(sig Signaler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signaler = sig
}

func (s *Session) Room() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room
}

// Peers returns the remote peers in the room, in the order they arrived.
func (s *Session) Peers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.peers)
}

// Join enters room, leaving any room joined before.
func (s *Session) Join(room string) error {
	s.mu.Lock()
	sig := s.signaler
	if room == "" || s.peerID == "" || sig == nil {
		s.mu.Unlock()
		return ErrNotReady
	}
	prev := s.room
	s.mu.Unlock()

	if prev != "" && prev != room {
		if err := s.Leave(); err != nil {
			return err
		}
	}
	if err := sig.Join(room, s.peerID); err != nil {
		return fmt.Errorf("join room %s: %w", room, err)
	}

	s.mu.Lock()
	s.room = room
	s.mu.Unlock()
	log.Printf("[CALL] %s joined room %s", s.peerID, room)
	s.notice(fmt.Sprintf("Joined room: %s", room))
	return nil
}

// Leave exits the current room and forgets its roster.
func (s *Session) Leave() error {
	s.mu.Lock()
	room, sig := s.room, s.signaler
	if room == "" {
		s.mu.Unlock()
		return ErrNotJoined
	}
	s.room = ""
	s.peers = nil
	s.mu.Unlock()

	s.peersChanged()
	if sig != nil {
		if err := sig.Leave(room, s.peerID); err != nil {
			return fmt.Errorf("leave room %s: %w", room, err)
		}
	}
	log.Printf("[CALL] %s left room %s", s.peerID, room)
	s.notice(fmt.Sprintf("Left room: %s", room))
	return nil
}

// HandleMessage applies a roster event received from the hub. Events for
// other rooms and about this peer are ignored.
func (s *Session) HandleMessage(msg net.Message) {
	s.mu.Lock()
	if s.room == "" || (msg.Room != "" && msg.Room != s.room) || msg.Peer == "" || msg.Peer == s.peerID {
		s.mu.Unlock()
		return
	}
	var note string
	switch msg.Type {
	case net.UserConnected:
		if slices.Contains(s.peers, msg.Peer) {
			s.mu.Unlock()
			return
		}
		s.peers = append(s.peers, msg.Peer)
		note = fmt.Sprintf("User %s joined the call.", msg.Peer)
	case net.UserDisconnected:
		i := slices.Index(s.peers, msg.Peer)
		if i < 0 {
			s.mu.Unlock()
			return
		}
		s.peers = slices.Delete(s.peers, i, i+1)
		note = fmt.Sprintf("User %s left the call.", msg.Peer)
	default:
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	log.Printf("[CALL] %s", note)
	s.peersChanged()
	s.notice(note)
}

func (s *Session) notice(msg string) {
	if s.OnNotice != nil {
		s.OnNotice(msg)
	}
}

func (s *Session) peersChanged() {
	if s.OnPeersChanged != nil {
		s.OnPeersChanged(s.Peers())
	}
}
