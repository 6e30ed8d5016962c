package object

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/physics"
	"github.com/tomz197/vrarcade/internal/scene"
)

var head = mgl64.Vec3{0, 1.6, 0}

func newTestSpawner(opts SpawnerOptions) (*scene.Graph, *EnemySpawner) {
	g := scene.NewGraph()
	opts.Bounds = testRoom
	opts.Mesh = scene.RobotMesh("robot", scene.ColorEnemy)
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(7, 11))
	}
	return g, NewEnemySpawner(g, g.Root(), opts)
}

func tick(s *EnemySpawner, ctx UpdateContext, d time.Duration, n int) {
	ctx.Delta = d
	for range n {
		s.Update(ctx)
	}
}

func TestSpawnerIdleUntilStarted(t *testing.T) {
	_, s := newTestSpawner(SpawnerOptions{})
	tick(s, UpdateContext{PlayerPosition: head}, 100*time.Millisecond, 100)
	if s.Live() != 0 {
		t.Fatalf("stopped spawner produced %d enemies", s.Live())
	}
}

func TestSpawnerWaves(t *testing.T) {
	g, s := newTestSpawner(SpawnerOptions{WaveSize: 3, Interval: 1, MaxEnemies: 5})
	s.Start()
	ctx := UpdateContext{PlayerPosition: head, Bounds: testRoom}

	tick(s, ctx, 100*time.Millisecond, 11) // past the first delay
	if s.Live() != 3 {
		t.Fatalf("live after first wave = %d, want 3", s.Live())
	}
	if got := g.Count(scene.KindEnemy); got != 3 {
		t.Fatalf("visible enemies = %d, want 3", got)
	}

	tick(s, ctx, 100*time.Millisecond, 20)
	if s.Live() != 5 {
		t.Fatalf("pool should cap live enemies at 5, got %d", s.Live())
	}

	for _, e := range s.Enemies() {
		if !e.Active {
			continue
		}
		if !testRoom.Contains(e.Position) {
			t.Errorf("enemy spawned outside the room at %v", e.Position)
		}
	}
}

func TestSpawnerLargeDeltaDoesNotSpin(t *testing.T) {
	_, s := newTestSpawner(SpawnerOptions{MaxEnemies: 2})
	s.Start()
	// A huge step must not loop forever on a full pool.
	tick(s, UpdateContext{PlayerPosition: head}, time.Hour, 1)
	if s.Live() != 2 {
		t.Fatalf("live = %d, want 2", s.Live())
	}
}

func TestSpawnerClear(t *testing.T) {
	g, s := newTestSpawner(SpawnerOptions{FirstDelay: 0.01})
	s.Start()
	ctx := UpdateContext{PlayerPosition: head, Bounds: testRoom}
	tick(s, ctx, 50*time.Millisecond, 2)
	s.Shots().ShootFrom(mgl64.QuatIdent(), head.Add(mgl64.Vec3{0, 0, -1}))
	if s.Live() == 0 || s.Shots().InFlight() == 0 {
		t.Fatal("expected enemies and a hostile shot before clearing")
	}

	s.Stop()
	s.Clear()
	if s.Active() {
		t.Error("spawner still active after Stop")
	}
	if s.Live() != 0 {
		t.Errorf("live after clear = %d", s.Live())
	}
	if s.Shots().InFlight() != 0 {
		t.Errorf("hostile shots after clear = %d", s.Shots().InFlight())
	}
	if got := g.Count(scene.KindEnemy); got != 0 {
		t.Errorf("visible enemies after clear = %d", got)
	}

	found := false
	s.Nearby(head, 10, func(*Enemy) bool {
		found = true
		return true
	})
	if found {
		t.Error("cleared spawner still reports nearby enemies")
	}
}

func TestSpawnerNearby(t *testing.T) {
	_, s := newTestSpawner(SpawnerOptions{WaveSize: 1, FirstDelay: 0.01})
	s.Start()
	tick(s, UpdateContext{PlayerPosition: head, Bounds: testRoom}, 50*time.Millisecond, 1)

	var live *Enemy
	for _, e := range s.Enemies() {
		if e.Active {
			live = e
		}
	}
	if live == nil {
		t.Fatal("no enemy spawned")
	}

	var got *Enemy
	s.Nearby(live.Position, ProjectileRadius, func(e *Enemy) bool {
		got = e
		return true
	})
	if got != live {
		t.Fatalf("Nearby(%v) = %v, want the live enemy", live.Position, got)
	}
}

func TestEnemiesApproachAndShoot(t *testing.T) {
	_, s := newTestSpawner(SpawnerOptions{WaveSize: 2, MaxEnemies: 2, FirstDelay: 0.01})
	player := NewPlayer(100)
	player.Position = head
	hooks := &recordingHooks{}
	ctx := UpdateContext{PlayerPosition: head, Player: player, Hooks: hooks, Bounds: testRoom}

	s.Start()
	tick(s, ctx, 50*time.Millisecond, 400)

	for _, e := range s.Enemies() {
		if !e.Active {
			continue
		}
		d := physics.Distance(
			mgl64.Vec3{e.Position[0], 0, e.Position[2]},
			mgl64.Vec3{head[0], 0, head[2]},
		)
		if d < EnemyStandoff-1e-6 {
			t.Errorf("enemy closer than the standoff distance: %v", d)
		}
	}
	if hooks.playerHits == 0 {
		t.Fatal("robots never hit a standing player in 20 seconds")
	}
	if player.Health != 100-hooks.playerHits {
		t.Errorf("health = %d after %d hits", player.Health, hooks.playerHits)
	}
}

func TestEnemiesHoldFireAtDeadPlayer(t *testing.T) {
	_, s := newTestSpawner(SpawnerOptions{FirstDelay: 0.01})
	player := NewPlayer(1)
	player.Hit(1)
	ctx := UpdateContext{PlayerPosition: head, Player: player, Bounds: testRoom}

	s.Start()
	tick(s, ctx, 50*time.Millisecond, 200)
	if s.Shots().InFlight() != 0 {
		t.Fatalf("robots fired at a dead player: %d shots", s.Shots().InFlight())
	}
}
