// Package server tracks the game sessions of a multi-user host. Each session
// runs its own game; the server only publishes their summaries, keeps the
// leaderboard and tells sessions when the host goes down.
package server

//go:generate go tool mockgen -destination=./mocks/server_mock.go -package=mocks . GameServer,Session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/loop"
	"github.com/tomz197/vrarcade/internal/loop/config"
)

// Session is the read side of a running game.
type Session interface {
	ID() string
	Snapshot() loop.Snapshot
}

var _ Session = (*loop.Game)(nil)

// GameServer is the interface clients use to communicate with the session registry.
type GameServer interface {
	RegisterClient(username string, s Session) *ClientHandle
	UnregisterClient(clientID int)
	GetSnapshot() *WorldSnapshot
}

// Server holds every connected session and the leaderboard.
type Server struct {
	snapshot     atomic.Pointer[WorldSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	hallOfFame   []TopScoreEntry // best runs of sessions that already left
	topScore     int             // highest score announced so far
	mu           sync.RWMutex
	log          *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	Session  Session
	EventsCh chan ClientEvent // Events sent to client (shutdown, records)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Score int // For high score events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventNewHighScore
)

// NewServer creates an empty registry. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		log:          logger,
	}
	s.snapshot.Store(&WorldSnapshot{})
	return s
}

// Run refreshes the published snapshot until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh()
		}
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	n := len(s.clients)
	s.mu.RUnlock()
	s.log.Info("notified sessions of shutdown", "sessions", n)

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Connected() == 0 {
				return
			}
		}
	}
}

// RegisterClient adds a session under the given display name and returns its handle.
func (s *Server) RegisterClient(username string, session Session) *ClientHandle {
	username = truncateName(username)

	s.mu.Lock()
	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		Session:  session,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	s.mu.Unlock()

	s.log.Info("session registered", "client", handle.ID, "user", username, "session", session.ID())
	return handle
}

// UnregisterClient removes a client and keeps its best run on the leaderboard.
// It is a no-op for unknown ids.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	handle, ok := s.clients[clientID]
	if ok {
		if best := handle.Session.Snapshot().Best; best > 0 {
			s.hallOfFame = insertTopScore(s.hallOfFame, TopScoreEntry{
				Username: handle.Username,
				Score:    best,
				clientID: handle.ID,
			}, config.LeaderboardSize)
		}
		close(handle.EventsCh)
		delete(s.clients, clientID)
	}
	s.mu.Unlock()

	if ok {
		s.log.Info("session unregistered", "client", clientID)
	}
}

// Connected returns the number of registered clients.
func (s *Server) Connected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// GetSnapshot returns the last published snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// Refresh reads every session's summary, rebuilds the leaderboard and
// publishes a new snapshot. Sessions that set a new record are told so.
func (s *Server) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &WorldSnapshot{
		Sessions: make([]SessionSummary, 0, len(s.clients)),
		Players:  len(s.clients),
		At:       time.Now(),
	}
	top := append([]TopScoreEntry(nil), s.hallOfFame...)

	for _, handle := range s.clients {
		hs := handle.Session.Snapshot()
		snap.Sessions = append(snap.Sessions, SessionSummary{
			ClientID: handle.ID,
			Username: handle.Username,
			Snapshot: hs,
		})
		if hs.State == loop.StatePlaying {
			snap.Playing++
		}

		best := max(hs.Best, hs.Score)
		if best > 0 {
			top = insertTopScore(top, TopScoreEntry{Username: handle.Username, Score: best, clientID: handle.ID}, config.LeaderboardSize)
		}
		if best > s.topScore {
			s.topScore = best
			select {
			case handle.EventsCh <- ClientEvent{Type: EventNewHighScore, Score: best}:
			default:
			}
		}
	}

	sortSessions(snap.Sessions)
	snap.TopScores = top
	s.snapshot.Store(snap)
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > config.MaxUsernameLength {
		return string(r[:config.MaxUsernameLength])
	}
	return name
}
