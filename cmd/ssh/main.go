package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/vrarcade/internal/asset"
	"github.com/tomz197/vrarcade/internal/audio"
	"github.com/tomz197/vrarcade/internal/config"
	"github.com/tomz197/vrarcade/internal/draw"
	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/loop/client"
	"github.com/tomz197/vrarcade/internal/loop/server"
	"github.com/tomz197/vrarcade/internal/spectate"
)

func main() {
	settings := config.Load()
	logger := logging.New(os.Stderr, settings.LogLevel)
	log.SetDefault(logger)

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", settings.SSHHost, "port", settings.SSHPort,
		"hostKeyPath", settings.SSHHostKeyPath, "workingDir", workingDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One store for every session. Sessions have no speaker, so sounds are silent.
	store := asset.NewDefaultStore(asset.FS(settings.AssetsDir), &audio.Silent{}, asset.Options{Logger: logger}, nil)
	if err := store.Load(ctx); err != nil {
		// sessions still connect and show the load failure alert
		logger.Error("asset load failed", "err", err)
	}

	gameServer := server.NewServer(logger)
	hub, err := spectate.NewHub(gameServer, spectate.Options{
		SSHHost: settings.DisplayHost,
		SSHPort: settings.SSHPort,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to build spectator page", "err", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSHHost, settings.SSHPort)),
		wish.WithMiddleware(
			gameMiddleware(gameServer, store, logger),
			activeterm.Middleware(),
			wishlogging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if settings.SSHHostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSHHostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		gameServer.Run(gctx)
		return nil
	})
	if settings.WebAddr != "" {
		g.Go(func() error {
			return spectate.Serve(gctx, settings.WebAddr, hub.Handler(), logger)
		})
	}
	g.Go(func() error {
		logger.Info("starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})

	select {
	case <-ctx.Done():
	case <-gctx.Done():
	}
	logger.Info("shutting down server")

	// Notify players and wait for them to disconnect
	logger.Info("notifying connected players about shutdown", "players", gameServer.Connected())
	gameServer.Shutdown(settings.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("ssh shutdown error", "err", err)
	}
	cancelRun()

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", "err", err)
	}
	logger.Info("server stopped")
}

// gameMiddleware handles SSH sessions and runs one game client per session.
func gameMiddleware(gameServer *server.Server, store *asset.Store, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLog := logger.With("user", sess.User())
			sessLog.Info("new game session", "terminal", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			seed := uint64(time.Now().UnixNano())
			c := client.NewClient(bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				Server:       gameServer,
				Logger:       sessLog,
				Rand:         rand.New(rand.NewPCG(seed, seed>>1)),
			})
			c.UseAssets(sess.Context(), store)

			if err := c.Run(); err != nil {
				sessLog.Error("game error", "err", err)
			}

			sessLog.Info("session ended")
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
