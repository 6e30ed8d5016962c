package client

import (
	"bufio"
	"bytes"
	"context"
	"image/color"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/vrarcade/internal/asset"
	"github.com/tomz197/vrarcade/internal/audio"
	"github.com/tomz197/vrarcade/internal/draw"
	"github.com/tomz197/vrarcade/internal/loop"
	"github.com/tomz197/vrarcade/internal/loop/config"
	"github.com/tomz197/vrarcade/internal/loop/server"
	"github.com/tomz197/vrarcade/internal/loop/server/mocks"
	"github.com/tomz197/vrarcade/internal/scene"
)

// syncBuffer lets the test read what the client wrote from another goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func newTestClient(t *testing.T, keys string, opts ClientOptions) (*Client, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(80, 24)
	}
	return NewClient(bufio.NewReader(strings.NewReader(keys)), out, opts), out
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name             string
		w, h             int
		rw, rh, col, row int
	}{
		{"fits", 80, 24, 80, 24, 0, 0},
		{"too wide", config.MaxTermWidth + 40, 24, config.MaxTermWidth, 24, 20, 0},
		{"too tall", 80, config.MaxTermHeight + 11, 80, config.MaxTermHeight, 0, 5},
		{"zero", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rw, rh, col, row := clampTermSize(tt.w, tt.h)
			if rw != tt.rw || rh != tt.rh || col != tt.col || row != tt.row {
				t.Fatalf("clampTermSize(%d, %d) = %d %d %d %d", tt.w, tt.h, rw, rh, col, row)
			}
		})
	}
}

func TestRenderDrawsLinesAndHUD(t *testing.T) {
	c, out := newTestClient(t, "", ClientOptions{})
	out.Reset()

	frame := &loop.Frame{
		Lines: []scene.Line{{X0: -0.5, Y0: 0, X1: 0.5, Y1: 0, Color: scene.ColorProjectile}},
		HUD:   loop.Snapshot{State: loop.StatePlaying, Score: 42, Best: 100, Health: 3, MaxHealth: 5, Enemies: 2},
	}
	if err := c.Render(frame); err != nil {
		t.Fatal(err)
	}

	s := out.String()
	for _, want := range []string{"Score: 42", "Best: 100", "Robots: 2", "HP [", draw.FgRGB(scene.ColorProjectile)} {
		if !strings.Contains(s, want) {
			t.Errorf("frame output missing %q", want)
		}
	}
	if c.state.HUD.Score != 42 {
		t.Errorf("HUD not kept, score = %d", c.state.HUD.Score)
	}

	got, ok := c.canvas.Pixel(40, 24)
	if !ok || got != (color.RGBA{0x00, 0xad, 0xff, 0xff}) {
		t.Errorf("center pixel = %v, %v", got, ok)
	}
}

func TestRenderScreensByState(t *testing.T) {
	tests := []struct {
		state loop.State
		want  string
	}{
		{loop.StateLoading, "Loading assets"},
		{loop.StateReady, "Controls"},
		{loop.StateGameOver, "Best:  7"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			c, out := newTestClient(t, "", ClientOptions{})
			if err := c.Render(&loop.Frame{HUD: loop.Snapshot{State: tt.state, Best: 7}}); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("%s screen missing %q", tt.state, tt.want)
			}
		})
	}
}

func TestResizeReachesCanvasOnTick(t *testing.T) {
	w, h := 80, 24
	c, _ := newTestClient(t, "", ClientOptions{TermSizeFunc: func() (int, int, error) { return w, h, nil }})
	if err := c.game.Tick(); err != nil {
		t.Fatal(err)
	}

	w, h = 100, 30
	c.updateScreen()
	if c.canvas.TerminalWidth() != 80 {
		t.Fatal("canvas resized before the game's tick")
	}
	if err := c.game.Tick(); err != nil {
		t.Fatal(err)
	}
	if c.canvas.TerminalWidth() != 100 || c.canvas.TerminalHeight() != 30 {
		t.Fatalf("canvas = %dx%d, want 100x30", c.canvas.TerminalWidth(), c.canvas.TerminalHeight())
	}
	if c.canvas.LogicalHeight() != 60 {
		t.Errorf("logical height = %v, want 60", c.canvas.LogicalHeight())
	}
	if a := c.game.Camera().Aspect(); a != 100.0/60.0 {
		t.Errorf("camera aspect = %v", a)
	}
}

func TestAlertShowsMessage(t *testing.T) {
	c, out := newTestClient(t, "", ClientOptions{})
	c.game.AssetsLoaded(nil, context.Canceled)
	out.Reset()

	if err := c.game.Tick(); err == nil {
		t.Fatal("Tick succeeded after a failed load")
	}
	if !strings.Contains(out.String(), loop.AlertLoadFailed) {
		t.Fatalf("alert not drawn: %q", out.String())
	}
	if c.state.Alert != loop.AlertLoadFailed {
		t.Errorf("alert state = %q", c.state.Alert)
	}
}

func TestHealthBar(t *testing.T) {
	c, _ := newTestClient(t, "", ClientOptions{})
	full := c.healthBar(5, 5)
	if strings.Count(full, string(draw.BlockFull)) != healthBarWidth {
		t.Errorf("full bar = %q", full)
	}
	empty := c.healthBar(0, 5)
	if strings.ContainsRune(empty, draw.BlockFull) || !strings.Contains(empty, draw.ColorRed) {
		t.Errorf("empty bar = %q", empty)
	}
}

func TestRunQuitsAndUnregisters(t *testing.T) {
	ctrl := gomock.NewController(t)
	gs := mocks.NewMockGameServer(ctrl)
	handle := &server.ClientHandle{ID: 7, Username: "zoe", EventsCh: make(chan server.ClientEvent, 1)}
	gs.EXPECT().RegisterClient("zoe", gomock.Any()).Return(handle)
	gs.EXPECT().GetSnapshot().Return(&server.WorldSnapshot{}).AnyTimes()
	gs.EXPECT().UnregisterClient(7).Times(1)

	c, _ := newTestClient(t, "q", ClientOptions{Server: gs, Username: "zoe"})

	done := make(chan error, 1)
	go func() { done <- c.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}

func TestShutdownEventShowsNotice(t *testing.T) {
	ctrl := gomock.NewController(t)
	gs := mocks.NewMockGameServer(ctrl)
	handle := &server.ClientHandle{ID: 1, EventsCh: make(chan server.ClientEvent, 2)}
	gs.EXPECT().RegisterClient(gomock.Any(), gomock.Any()).Return(handle)

	c, out := newTestClient(t, "", ClientOptions{Server: gs})
	handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	handle.EventsCh <- server.ClientEvent{Type: server.EventNewHighScore, Score: 900}
	c.processServerEvents()

	if !c.state.shuttingDown || c.state.shutdownTimer != config.ShutdownDisplaySeconds {
		t.Fatalf("shutdown not recorded: %+v", c.state)
	}
	if c.state.highScore != 900 {
		t.Errorf("high score = %d", c.state.highScore)
	}

	out.Reset()
	if err := c.Render(&loop.Frame{HUD: loop.Snapshot{State: loop.StatePlaying}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "SERVER SHUTTING DOWN") {
		t.Fatal("shutdown notice missing")
	}

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds+1) * time.Second
	c.updateTimers()
	if c.state.Running {
		t.Error("client kept running past the shutdown notice")
	}

	close(handle.EventsCh)
	c.state.Running = true
	c.processServerEvents()
	if c.state.Running {
		t.Error("closed event channel did not stop the client")
	}
}

func TestLoadsDefaultAssets(t *testing.T) {
	c, _ := newTestClient(t, "", ClientOptions{})
	store := asset.NewDefaultStore(asset.DefaultFS(), &audio.Silent{}, asset.Options{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.UseAssets(ctx, store)
	if err := store.Load(ctx); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for c.game.State() != loop.StateReady {
		if time.Now().After(deadline) {
			t.Fatal("game never became ready")
		}
		if err := c.game.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
