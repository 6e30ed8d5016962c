package main

import (
	"context"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/vrarcade/internal/asset"
	"github.com/tomz197/vrarcade/internal/audio"
	"github.com/tomz197/vrarcade/internal/config"
	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/loop"
)

const (
	windowWidth  = 960
	windowHeight = 540
)

func main() {
	settings := config.Load()
	logger := logging.New(os.Stderr, settings.LogLevel)

	backend := openAudio(settings, logger)
	if dev, ok := backend.(*audio.Device); ok {
		defer dev.Close()
	}

	seed := uint64(settings.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	h := newHost(loop.Options{Rand: rand.New(rand.NewPCG(seed, seed>>1))}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := asset.NewDefaultStore(asset.FS(settings.AssetsDir), backend, asset.Options{Logger: logger},
		func(s *asset.Store, err error) {
			h.game.AssetsLoaded(s, err)
		})
	go func() {
		if err := store.Load(ctx); err != nil {
			logger.Error("asset load failed", "err", err)
		}
	}()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Robot Arcade")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(h); err != nil {
		logger.Fatal("game error", "err", err)
	}
}

// openAudio opens the speaker when enabled, falling back to silence.
func openAudio(settings config.Settings, logger *log.Logger) audio.Backend {
	if !settings.Audio {
		return &audio.Silent{}
	}
	dev, err := audio.OpenDevice(audio.DefaultSampleRate)
	if err != nil {
		logger.Warn("no audio device, playing silently", "err", err)
		return &audio.Silent{}
	}
	return dev
}
