package main

import (
	"bufio"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/vrarcade/internal/asset"
	"github.com/tomz197/vrarcade/internal/audio"
	"github.com/tomz197/vrarcade/internal/config"
	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/loop/client"
)

func main() {
	settings := config.Load()

	// stdout belongs to the canvas, so logs only go to LOG_FILE
	logger := logging.Discard()
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = logging.New(f, settings.LogLevel)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	backend := openAudio(settings, logger)
	if dev, ok := backend.(*audio.Device); ok {
		defer dev.Close()
	}

	seed := uint64(settings.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	c := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Logger:   logger,
		Rand:     rand.New(rand.NewPCG(seed, seed>>1)),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := asset.NewDefaultStore(asset.FS(settings.AssetsDir), backend, asset.Options{Logger: logger}, nil)
	c.UseAssets(ctx, store)
	go func() {
		// failures reach the game through UseAssets and end up as an alert
		if err := store.Load(ctx); err != nil {
			logger.Error("asset load failed", "err", err)
		}
	}()

	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
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
