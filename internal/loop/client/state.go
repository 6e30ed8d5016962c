package client

import (
	"time"

	"github.com/tomz197/vrarcade/internal/draw"
	"github.com/tomz197/vrarcade/internal/input"
	"github.com/tomz197/vrarcade/internal/loop"
)

// ClientState holds the host-side state of one terminal session. Gameplay
// state lives in the loop.Game; this only covers what the terminal adds.
type ClientState struct {
	Input         input.Input
	HUD           loop.Snapshot     // Last summary handed to Render
	Alert         string            // Blocking error, set by the game
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shuttingDown  bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	highScore     int     // Record announced by the server
	highScoreTime float64 // Seconds the record banner stays up
	isInactive    bool    // Whether the client is in inactive warning state
	wasInactive   bool
	prevState     loop.State
	prevShutdown  bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:   true,
		prevState: loop.StateLoading,
	}
}
