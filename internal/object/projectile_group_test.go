package object

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"pgregory.net/rapid"

	"github.com/tomz197/vrarcade/internal/physics"
	"github.com/tomz197/vrarcade/internal/scene"
)

var testRoom = physics.Box{Min: mgl64.Vec3{-3, 0, -3}, Max: mgl64.Vec3{3, 6, 3}}

func newTestGroup(n int) (*scene.Graph, *ProjectileGroup) {
	g := scene.NewGraph()
	opts := PlayerProjectiles(scene.ConeMesh("shot", 0.03, 0.1, 4, scene.ColorProjectile))
	opts.Spread = 0
	return g, NewProjectileGroup(g, g.Root(), n, opts)
}

func TestShootFromFillsPool(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(t, "n")
		_, pg := newTestGroup(n)

		for i := range n {
			pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{float64(i), 1, 0})
		}
		if got := pg.InFlight(); got != n {
			t.Fatalf("in flight = %d, want %d", got, n)
		}
		if got := pg.Cursor(); got != 0 {
			t.Fatalf("cursor = %d, want 0", got)
		}
	})
}

func TestShootFromDropsOnBusySlot(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(t, "n")
		_, pg := newTestGroup(n)
		for range n {
			pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1, 0})
		}
		before := *pg.At(0)

		pg.ShootFrom(mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0}), mgl64.Vec3{2, 2, 2})

		if got := *pg.At(0); got != before {
			t.Fatalf("slot 0 changed: %+v -> %+v", before, got)
		}
		if got := pg.InFlight(); got != n {
			t.Fatalf("in flight = %d, want %d", got, n)
		}
		if want := 1 % n; pg.Cursor() != want {
			t.Fatalf("cursor = %d, want %d", pg.Cursor(), want)
		}
	})
}

func TestPoolOfThree(t *testing.T) {
	_, pg := newTestGroup(3)
	a := mgl64.Vec3{0, 1, 0}
	b := mgl64.Vec3{0.5, 1, 0}
	c := mgl64.Vec3{-0.5, 1, 0}
	d := mgl64.Vec3{0, 2, 0}

	pg.ShootFrom(mgl64.QuatIdent(), a)
	pg.ShootFrom(mgl64.QuatIdent(), b)
	pg.ShootFrom(mgl64.QuatIdent(), c)

	for i, want := range []mgl64.Vec3{a, b, c} {
		p := pg.At(i)
		if p.Free {
			t.Fatalf("slot %d should be in flight", i)
		}
		if p.Position != want {
			t.Errorf("slot %d position = %v, want %v", i, p.Position, want)
		}
	}
	if pg.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", pg.Cursor())
	}

	pg.ShootFrom(mgl64.QuatIdent(), d)
	if pg.At(0).Position != a {
		t.Errorf("shot D replaced slot 0: %v", pg.At(0).Position)
	}
	if pg.InFlight() != 3 {
		t.Errorf("in flight = %d, want 3", pg.InFlight())
	}
	if pg.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", pg.Cursor())
	}
}

func TestVelocityFollowsOrientation(t *testing.T) {
	_, pg := newTestGroup(1)
	// Quarter turn about +Y maps -Z onto -X.
	pg.ShootFrom(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}), mgl64.Vec3{0, 1, 0})

	v := pg.At(0).Velocity
	want := mgl64.Vec3{-ProjectileSpeed, 0, 0}
	if !near(v, want) {
		t.Errorf("velocity = %v, want %v", v, want)
	}
}

func TestSpreadStaysSmall(t *testing.T) {
	g := scene.NewGraph()
	opts := PlayerProjectiles(nil)
	opts.Rand = rand.New(rand.NewPCG(1, 2))
	pg := NewProjectileGroup(g, g.Root(), 100, opts)
	for range 100 {
		pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{})
	}
	pg.Each(func(p *Projectile) {
		dir := p.Velocity.Normalize()
		if dir.Dot(scene.Forward) < math.Cos(3*ProjectileSpread) {
			t.Errorf("direction %v strays too far from forward", dir)
		}
		if math.Abs(p.Velocity.Len()-ProjectileSpeed) > 1e-9 {
			t.Errorf("speed = %v, want %v", p.Velocity.Len(), ProjectileSpeed)
		}
	})
}

func TestFreeFlipsOncePerFlight(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		_, pg := newTestGroup(n)
		ctx := UpdateContext{Bounds: testRoom}

		shots := 0
		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for range steps {
			if rapid.Bool().Draw(t, "shoot") {
				slot := pg.At(pg.Cursor())
				wasFree := slot.Free
				pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1, 0})
				if wasFree {
					shots++
				}
			}
			ms := rapid.IntRange(0, 400).Draw(t, "ms")
			ctx.Delta = time.Duration(ms) * time.Millisecond
			pg.Update(ctx)

			if rapid.IntRange(0, 20).Draw(t, "clear") == 0 {
				pg.Clear()
			}
		}

		flights := 0
		for i := range pg.Len() {
			p := pg.At(i)
			flights += p.flights
			if !p.Free {
				// still in its current flight
				flights++
			}
		}
		if flights != shots {
			t.Fatalf("flights = %d, shots fired = %d", flights, shots)
		}
		if pg.Fired() != shots {
			t.Fatalf("Fired() = %d, shots fired = %d", pg.Fired(), shots)
		}

		pg.Clear()
		pg.Clear()
		total := 0
		for i := range pg.Len() {
			total += pg.At(i).flights
		}
		if total != shots {
			t.Fatalf("releasing twice changed the flight count: %d, want %d", total, shots)
		}
	})
}

func TestProjectileExpires(t *testing.T) {
	tests := []struct {
		name  string
		delta time.Duration
		ticks int
	}{
		// 0.6s at 6m/s covers 3.6m, past the 2.92m budget.
		{"range", 100 * time.Millisecond, 6},
		{"single big step", 600 * time.Millisecond, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, pg := newTestGroup(1)
			pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1.6, 0})
			ctx := UpdateContext{Delta: tt.delta}
			for range tt.ticks {
				pg.Update(ctx)
			}
			if !pg.At(0).Free {
				t.Fatalf("projectile still in flight at %v", pg.At(0).Position)
			}
			if pg.At(0).flights != 1 {
				t.Fatalf("flights = %d, want 1", pg.At(0).flights)
			}
		})
	}
}

func TestProjectileLeavesRoom(t *testing.T) {
	_, pg := newTestGroup(1)
	// Start near the front wall so the room ends the flight before the range does.
	pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1, -2.9})
	pg.Update(UpdateContext{Delta: 50 * time.Millisecond, Bounds: testRoom})
	if !pg.At(0).Free {
		t.Fatalf("projectile at %v should have left the room", pg.At(0).Position)
	}
}

func TestZeroDeltaKeepsProjectile(t *testing.T) {
	_, pg := newTestGroup(1)
	pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1, 0})
	pg.Update(UpdateContext{Bounds: testRoom})
	p := pg.At(0)
	if p.Free || p.Position != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("zero delta moved or freed the projectile: %+v", p)
	}
}

func TestDisplacementLinearInDelta(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ms := rapid.IntRange(1, 100).Draw(t, "ms")
		dt := time.Duration(ms) * time.Millisecond

		displacement := func(delta time.Duration) float64 {
			_, pg := newTestGroup(1)
			pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1, 0})
			pg.Update(UpdateContext{Delta: delta})
			return pg.At(0).Position.Sub(mgl64.Vec3{0, 1, 0}).Len()
		}

		once := displacement(dt)
		twice := displacement(2 * dt)
		if math.Abs(twice-2*once) > 1e-9 {
			t.Fatalf("displacement %v at 2x delta, want %v", twice, 2*once)
		}
	})
}

type recordingHooks struct {
	enemyHits  int
	destroyed  int
	playerHits int
	lastAt     mgl64.Vec3
}

func (h *recordingHooks) EnemyHit(_ *Enemy, at mgl64.Vec3, destroyed bool) {
	h.enemyHits++
	if destroyed {
		h.destroyed++
	}
	h.lastAt = at
}

func (h *recordingHooks) PlayerHit(at mgl64.Vec3, _ int) {
	h.playerHits++
	h.lastAt = at
}

type fixedTargets []*Enemy

func (ft fixedTargets) Nearby(_ mgl64.Vec3, _ float64, fn func(*Enemy) bool) {
	for _, e := range ft {
		if e.Active && fn(e) {
			return
		}
	}
}

func TestFriendlyShotHitsEnemy(t *testing.T) {
	g, pg := newTestGroup(2)
	e := &Enemy{graph: g, node: g.Add(g.Root(), scene.Node{Kind: scene.KindEnemy})}
	e.spawn(mgl64.Vec3{0, 1, -1}, UpdateContext{Rand: rand.New(rand.NewPCG(1, 1))})

	hooks := &recordingHooks{}
	ctx := UpdateContext{Delta: 50 * time.Millisecond, Targets: fixedTargets{e}, Hooks: hooks, Bounds: testRoom}

	for shot := 1; shot <= EnemyHealth; shot++ {
		pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1, 0})
		for range 20 {
			pg.Update(ctx)
		}
		if hooks.enemyHits != shot {
			t.Fatalf("after shot %d: enemy hits = %d", shot, hooks.enemyHits)
		}
		if pg.InFlight() != 0 {
			t.Fatalf("projectile should be recycled after the hit")
		}
	}
	if hooks.destroyed != 1 || e.Active {
		t.Fatalf("enemy should be destroyed by the last hit: destroyed=%d active=%v", hooks.destroyed, e.Active)
	}
	if g.Visible(e.node) {
		t.Error("destroyed enemy should be hidden")
	}
}

func TestHostileShotHitsPlayer(t *testing.T) {
	g := scene.NewGraph()
	opts := HostileProjectiles(nil)
	opts.Spread = 0
	pg := NewProjectileGroup(g, g.Root(), 1, opts)

	player := NewPlayer(2)
	player.Position = mgl64.Vec3{0, 1.6, 0}
	hooks := &recordingHooks{}
	ctx := UpdateContext{Delta: 50 * time.Millisecond, Player: player, Hooks: hooks, Bounds: testRoom}

	// Robot at z=-2 shooting toward +Z.
	pg.ShootFrom(mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0}), mgl64.Vec3{0, 1.6, -2})
	for range 40 {
		pg.Update(ctx)
	}
	if hooks.playerHits != 1 {
		t.Fatalf("player hits = %d, want 1", hooks.playerHits)
	}
	if player.Health != 1 {
		t.Errorf("health = %d, want 1", player.Health)
	}
	if !pg.At(0).Free {
		t.Error("hostile projectile should be recycled after hitting")
	}
}

func TestHostileShotIgnoresDeadPlayer(t *testing.T) {
	g := scene.NewGraph()
	opts := HostileProjectiles(nil)
	opts.Spread = 0
	pg := NewProjectileGroup(g, g.Root(), 1, opts)

	player := NewPlayer(1)
	player.Hit(1)
	hooks := &recordingHooks{}
	pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 0, 0.05})
	pg.Update(UpdateContext{Delta: time.Millisecond, Player: player, Hooks: hooks})
	if hooks.playerHits != 0 {
		t.Fatal("dead player should not be hit")
	}
}

func TestClearHidesEverything(t *testing.T) {
	g, pg := newTestGroup(4)
	for range 4 {
		pg.ShootFrom(mgl64.QuatIdent(), mgl64.Vec3{0, 1, 0})
	}
	if got := g.Count(scene.KindProjectile); got != 4 {
		t.Fatalf("visible projectiles = %d, want 4", got)
	}
	pg.Clear()
	if pg.InFlight() != 0 {
		t.Fatalf("in flight after clear = %d", pg.InFlight())
	}
	if got := g.Count(scene.KindProjectile); got != 0 {
		t.Fatalf("visible projectiles after clear = %d", got)
	}
}

// near compares vectors with an absolute tolerance; mgl64's relative
// comparisons reject rounding noise on zero components.
func near(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}
