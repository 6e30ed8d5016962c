package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/tomz197/vrarcade/internal/loop"
	"github.com/tomz197/vrarcade/internal/loop/server"
)

type staticSource struct {
	snap *server.WorldSnapshot
}

func (s staticSource) GetSnapshot() *server.WorldSnapshot { return s.snap }

func newTestServer(t *testing.T, src Source) (*Hub, *httptest.Server) {
	t.Helper()
	hub, err := NewHub(src, Options{SSHHost: "arcade.example", SSHPort: "2222", Interval: 10 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(hub.Handler())
	t.Cleanup(ts.Close)
	return hub, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestIndexShowsSSHHint(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "ssh -t -p 2222 arcade.example") {
		t.Fatalf("landing page missing the ssh hint")
	}

	resp, _ = get(t, ts.URL+"/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, staticSource{&server.WorldSnapshot{Players: 3}})
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h health
	if err := json.Unmarshal([]byte(body), &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Players != 3 {
		t.Fatalf("health = %+v", h)
	}
}

func TestFeedWithoutSource(t *testing.T) {
	_, ts := newTestServer(t, nil)
	resp, _ := get(t, ts.URL+"/ws")
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestFeedStreamsSnapshots(t *testing.T) {
	src := staticSource{&server.WorldSnapshot{
		Players: 1,
		Playing: 1,
		Sessions: []server.SessionSummary{{
			ClientID: 1,
			Username: "ada",
			Snapshot: loop.Snapshot{State: loop.StatePlaying, Score: 310},
		}},
		TopScores: []server.TopScoreEntry{{Username: "ada", Score: 310}},
	}}
	hub, ts := newTestServer(t, src)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.CloseNow()

	for i := range 3 {
		var got server.WorldSnapshot
		if err := wsjson.Read(ctx, conn, &got); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if len(got.Sessions) != 1 || got.Sessions[0].Snapshot.Score != 310 || got.Sessions[0].Snapshot.State != loop.StatePlaying {
			t.Fatalf("snapshot = %+v", got)
		}
		if len(got.TopScores) != 1 || got.TopScores[0].Username != "ada" {
			t.Fatalf("top scores = %+v", got.TopScores)
		}
	}
	if hub.Viewers() != 1 {
		t.Errorf("viewers = %d, want 1", hub.Viewers())
	}

	conn.Close(websocket.StatusNormalClosure, "")
	deadline := time.Now().Add(2 * time.Second)
	for hub.Viewers() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("viewer count not released after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	hub, err := NewHub(nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", hub.Handler(), nil) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
