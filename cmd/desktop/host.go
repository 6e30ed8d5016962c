package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/vrarcade/internal/asset"
	"github.com/tomz197/vrarcade/internal/input"
	"github.com/tomz197/vrarcade/internal/loop"
	"github.com/tomz197/vrarcade/internal/scene"
)

var (
	background = color.RGBA{10, 10, 20, 255}
	hudColor   = color.RGBA{220, 220, 220, 255}
	alertColor = color.RGBA{255, 80, 80, 255}
)

const lineHeight = 16

// host drives one game session from ebiten's frame callbacks and draws its
// wireframe with vector lines. Update and Draw run on the same goroutine.
type host struct {
	game       *loop.Game
	events     *input.Queue
	translator *input.Translator
	face       text.Face
	log        *log.Logger

	lastUpdate time.Time
	connected  bool

	// last frame handed to Render
	lines []scene.Line
	hud   loop.Snapshot
	alert string

	width, height       int // applied by the game
	reqWidth, reqHeight int
}

var (
	_ loop.Surface = (*host)(nil)
	_ ebiten.Game  = (*host)(nil)
)

func newHost(opts loop.Options, logger *log.Logger) *host {
	h := &host{
		events:     &input.Queue{},
		translator: input.NewTranslator(),
		face:       text.NewGoXFace(basicfont.Face7x13),
		log:        logger,
	}
	opts.Surface = h
	opts.Events = h.events
	opts.Logger = logger
	h.game = loop.NewGame(opts)
	return h
}

// Update advances the game by one tick.
func (h *host) Update() error {
	now := time.Now()
	if !h.connected {
		h.translator.Connect(h.events)
		h.connected = true
		h.lastUpdate = now
	}
	dt := now.Sub(h.lastUpdate)
	h.lastUpdate = now

	in := readKeys()
	if in.Quit {
		return ebiten.Termination
	}
	h.translator.Translate(in, dt, h.events)

	if err := h.game.Tick(); err != nil && !errors.Is(err, asset.ErrAssetsUnavailable) {
		return err
	}
	return nil
}

// readKeys samples the keyboard. Unlike a terminal, ebiten reports real key
// releases, so held triggers end exactly when the key goes up.
func readKeys() input.Input {
	pressed := ebiten.IsKeyPressed
	in := input.Input{
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Left:    pressed(ebiten.KeyArrowLeft) || pressed(ebiten.KeyA),
		Right:   pressed(ebiten.KeyArrowRight) || pressed(ebiten.KeyD),
		Up:      pressed(ebiten.KeyArrowUp) || pressed(ebiten.KeyW),
		Down:    pressed(ebiten.KeyArrowDown) || pressed(ebiten.KeyS),
		Fire:    pressed(ebiten.KeySpace),
		AltFire: pressed(ebiten.KeyF),
		Enter:   inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Gaze:    pressed(ebiten.KeyG),
		Number:  -1,
	}
	switch {
	case pressed(ebiten.Key1):
		in.Number = 1
	case pressed(ebiten.Key2):
		in.Number = 2
	}
	return in
}

// Render keeps a copy of the frame for Draw.
func (h *host) Render(f *loop.Frame) error {
	h.lines = append(h.lines[:0], f.Lines...)
	h.hud = f.HUD
	return nil
}

// SetSize records the size the game projected for.
func (h *host) SetSize(width, height int) {
	h.width, h.height = width, height
}

// Alert shows msg instead of the game.
func (h *host) Alert(msg string) {
	h.log.Error("game stopped", "alert", msg)
	h.alert = msg
	h.lines = h.lines[:0]
}

// Draw paints the last rendered frame.
func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if h.alert != "" {
		h.drawText(screen, 20, 20, alertColor, h.alert, "Press Q to quit")
		return
	}

	w, ht := float32(h.width), float32(h.height)
	if w == 0 || ht == 0 {
		b := screen.Bounds()
		w, ht = float32(b.Dx()), float32(b.Dy())
	}
	for _, l := range h.lines {
		x0, y0 := toPixels(l.X0, l.Y0, w, ht)
		x1, y1 := toPixels(l.X1, l.Y1, w, ht)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, l.Color, true)
	}

	h.drawHUD(screen)
}

// toPixels maps normalized device coordinates to window pixels.
func toPixels(x, y float64, w, h float32) (float32, float32) {
	return (float32(x) + 1) / 2 * w, (1 - float32(y)) / 2 * h
}

func (h *host) drawHUD(screen *ebiten.Image) {
	hud := h.hud
	switch hud.State {
	case loop.StateLoading:
		h.drawText(screen, 20, 20, hudColor, "Loading assets...")
	case loop.StateReady:
		h.drawText(screen, 20, 20, hudColor,
			"ROBOT ARCADE",
			"",
			"Arrows / WASD  look",
			"Space / F      fire hands",
			"1 / 2          toggle hands",
			"G              gaze pointer",
			"",
			"Press ENTER to start")
	case loop.StatePlaying:
		b := screen.Bounds()
		h.drawText(screen, 20, 20, hudColor,
			fmt.Sprintf("Score: %d   Best: %d", hud.Score, hud.Best),
			fmt.Sprintf("HP: %d/%d", hud.Health, hud.MaxHealth),
			fmt.Sprintf("Robots: %d   Shots: %d", hud.Enemies, hud.Shots))
		cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
		vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, hudColor, false)
		vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, hudColor, false)
	case loop.StateGameOver:
		h.drawText(screen, 20, 20, hudColor,
			"GAME OVER",
			fmt.Sprintf("Score: %d", hud.Score),
			fmt.Sprintf("Best:  %d", hud.Best),
			fmt.Sprintf("Shots: %d", hud.Fired),
			"",
			"Press ENTER to restart")
	}
}

func (h *host) drawText(screen *ebiten.Image, x, y float64, clr color.Color, lines ...string) {
	for i, s := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i*lineHeight))
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, s, h.face, op)
	}
}

// Layout asks the game for the window size; it takes effect on the next tick.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.reqWidth || outsideHeight != h.reqHeight {
		h.reqWidth, h.reqHeight = outsideWidth, outsideHeight
		h.game.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
