package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/vrarcade/internal/scene"
)

// State is the phase of a game session.
type State int

const (
	StateLoading  State = iota // Assets are still loading
	StateReady                 // Menu shown, waiting for start
	StatePlaying               // Active gameplay
	StateGameOver              // Player died, menu shown again
)

var stateNames = [...]string{"loading", "ready", "playing", "game-over"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText lets snapshots carry the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a name produced by String.
func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", b)
}

// Snapshot is an immutable summary of a session, safe to share across goroutines.
type Snapshot struct {
	Session   string    `json:"session"`
	State     State     `json:"state"`
	Score     int       `json:"score"`
	Best      int       `json:"best"`
	Health    int       `json:"health"`
	MaxHealth int       `json:"maxHealth"`
	Enemies   int       `json:"enemies"`
	Shots     int       `json:"shots"`
	Fired     int       `json:"fired"` // player shots this run
	Hostile   int       `json:"hostile"`
	TimeScale float64   `json:"timeScale"`
	At        time.Time `json:"at"`
}

// Frame is everything a Surface needs to draw one tick. It is reused between
// ticks, so surfaces must not keep it after Render returns.
type Frame struct {
	Lines []scene.Line // wireframe in normalized device coordinates
	HUD   Snapshot
	Alert string // set once loading failed
}

// Surface is the host's drawable.
type Surface interface {
	// Render draws one frame. It is called exactly once per tick.
	Render(f *Frame) error
	// SetSize is called from the tick after a resize was applied.
	SetSize(width, height int)
	// Alert shows a blocking, user-facing error.
	Alert(msg string)
}

// Scorer is the score collaborator of a session.
type Scorer interface {
	Restart()
	StartCounting()
	StopCounting()
	Add(points int)
	Value() int
	Best() int
}
