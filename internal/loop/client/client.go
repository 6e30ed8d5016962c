// Package client hosts one game session on an ANSI terminal: it paces frames,
// turns key presses into controller events and draws the game's wireframe.
package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/vrarcade/internal/asset"
	"github.com/tomz197/vrarcade/internal/draw"
	"github.com/tomz197/vrarcade/internal/input"
	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/loop"
	"github.com/tomz197/vrarcade/internal/loop/config"
	"github.com/tomz197/vrarcade/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer // nil when playing locally
	handle       *server.ClientHandle
	game         *loop.Game
	events       *input.Queue
	translator   *input.Translator
	state        *ClientState
	canvas       *draw.Canvas
	screen       *draw.Screen // one frame of canvas cells and HUD text
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger

	// last size handed to the game, applied through SetSize on its next tick
	reqWidth, reqHeight int
	reqCol, reqRow      int
}

var _ loop.Surface = (*Client)(nil)

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Server       server.GameServer // optional session registry
	Logger       *log.Logger
	Rand         *rand.Rand
}

// NewClient creates a client and its game session. Assets are delivered
// separately through UseAssets or Game().AssetsLoaded.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(renderWidth), float64(renderHeight*2))
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		server:       opts.Server,
		events:       &input.Queue{},
		translator:   input.NewTranslator(),
		state:        state,
		canvas:       canvas,
		screen:       draw.NewScreen(w),
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
	}
	c.screen.SetOffset(offsetCol, offsetRow)
	c.game = loop.NewGame(loop.Options{
		Surface: c,
		Events:  c.events,
		Logger:  logger,
		Rand:    opts.Rand,
	})
	c.log = logger.With("session", c.game.ID())
	c.requestSize(renderWidth, renderHeight, offsetCol, offsetRow)

	if c.server != nil {
		c.handle = c.server.RegisterClient(opts.Username, c.game)
	}
	return c
}

// Game returns the session driven by this client.
func (c *Client) Game() *loop.Game {
	return c.game
}

// UseAssets hands the store's result to the game once its load finishes.
// It returns immediately; the wait is abandoned when ctx is done.
func (c *Client) UseAssets(ctx context.Context, store *asset.Store) {
	go func() {
		select {
		case <-store.Done():
			c.game.AssetsLoaded(store, store.Err())
		case <-ctx.Done():
		}
	}()
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	if err := c.screen.Open(); err != nil {
		c.unregister()
		return err
	}
	defer c.screen.Close()

	c.translator.Connect(c.events)
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		c.updateTimers()

		if err := c.game.Tick(); err != nil {
			if !errors.Is(err, asset.ErrAssetsUnavailable) {
				c.unregister()
				return err
			}
			// the alert stays on screen until the user leaves
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.unregister()
	return nil
}

func (c *Client) unregister() {
	if c.server != nil && c.handle != nil {
		c.server.UnregisterClient(c.handle.ID)
		c.handle = nil
	}
}

// processInput reads keys and turns them into game events.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive user", "user", c.username)
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	c.translator.Translate(c.state.Input, c.state.delta, c.events)
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventNewHighScore:
				c.state.highScore = event.Score
				c.state.highScoreTime = config.HighScoreBannerSeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// The new size reaches the canvas through SetSize on the game's next tick.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	if renderWidth == c.reqWidth && renderHeight == c.reqHeight && offsetCol == c.reqCol && offsetRow == c.reqRow {
		return
	}
	c.requestSize(renderWidth, renderHeight, offsetCol, offsetRow)
}

func (c *Client) requestSize(width, height, col, row int) {
	c.reqWidth, c.reqHeight, c.reqCol, c.reqRow = width, height, col, row
	// half-blocks give two sub-pixels per row
	c.game.Resize(width, height*2)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// updateTimers counts down the shutdown notice and the record banner.
func (c *Client) updateTimers() {
	dt := c.state.delta.Seconds()
	if c.state.highScoreTime > 0 {
		c.state.highScoreTime = max(c.state.highScoreTime-dt, 0)
	}
	if c.state.shuttingDown {
		c.state.shutdownTimer -= dt
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
	}
}

// SetSize applies a terminal size the game accepted. height is in sub-pixels.
func (c *Client) SetSize(width, height int) {
	rows := max(height/2, 1)
	c.screen.Clear()
	c.canvas.Resize(width, rows)
	c.canvas.SetLogicalSize(float64(width), float64(rows*2))
	c.canvas.SetOffset(c.reqCol, c.reqRow)
	c.screen.SetOffset(c.reqCol, c.reqRow)
}

// Alert shows msg on a cleared screen. The game stops rendering afterwards.
func (c *Client) Alert(msg string) {
	c.state.Alert = msg
	c.screen.Clear()
	c.canvas.ForceRedraw()
	c.drawAlert(msg)
	if err := c.screen.Present(); err != nil {
		c.log.Warn("alert not delivered", "err", err)
	}
}
