// Package spectate serves the landing page and a websocket feed of the live
// sessions of an SSH host.
package spectate

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/loop/config"
	"github.com/tomz197/vrarcade/internal/loop/server"
)

//go:embed index.html
var pageTemplate string

var page = template.Must(template.New("index").Parse(pageTemplate))

// ErrNoFeed is reported by /ws when the hub has no session source.
var ErrNoFeed = errors.New("spectate: no live feed on this host")

// Source publishes the registry snapshot the feed streams.
type Source interface {
	GetSnapshot() *server.WorldSnapshot
}

var _ Source = (*server.Server)(nil)

// Options configures a Hub.
type Options struct {
	SSHHost  string
	SSHPort  string
	Interval time.Duration // zero uses config.SpectatorInterval
	Logger   *log.Logger
}

// Hub renders the landing page and streams snapshots to websocket viewers.
type Hub struct {
	source   Source
	page     []byte
	interval time.Duration
	log      *log.Logger
	viewers  atomic.Int64
}

// NewHub creates a hub. A nil source serves the landing page only.
func NewHub(source Source, opts Options) (*Hub, error) {
	if opts.Interval <= 0 {
		opts.Interval = config.SpectatorInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, opts); err != nil {
		return nil, err
	}
	return &Hub{
		source:   source,
		page:     buf.Bytes(),
		interval: opts.Interval,
		log:      opts.Logger,
	}, nil
}

// Viewers returns the number of open websocket feeds.
func (h *Hub) Viewers() int {
	return int(h.viewers.Load())
}

// Handler routes /, /healthz and /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.serveIndex)
	mux.HandleFunc("GET /healthz", h.serveHealth)
	mux.HandleFunc("GET /ws", h.serveFeed)
	return mux
}

func (h *Hub) serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(h.page)
}

type health struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
	Viewers int    `json:"viewers"`
}

func (h *Hub) serveHealth(w http.ResponseWriter, _ *http.Request) {
	resp := health{Status: "ok", Viewers: h.Viewers()}
	if h.source != nil {
		resp.Players = h.source.GetSnapshot().Players
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// serveFeed writes the current snapshot every interval until the viewer leaves.
func (h *Hub) serveFeed(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		http.Error(w, ErrNoFeed.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // cross-origin viewers allowed
	})
	if err != nil {
		h.log.Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow()

	h.viewers.Add(1)
	defer h.viewers.Add(-1)

	// viewers never send; CloseRead answers pings and notices the close
	ctx := conn.CloseRead(r.Context())
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.send(ctx, conn); err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				h.log.Debug("spectator feed ended", "err", err)
			}
			return
		}
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}

func (h *Hub) send(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wsjson.Write(ctx, conn, h.source.GetSnapshot())
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
