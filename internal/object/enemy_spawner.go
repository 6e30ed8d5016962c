package object

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/physics"
	"github.com/tomz197/vrarcade/internal/scene"
)

// Spawner defaults. Waves come faster the longer a run lasts.
const (
	SpawnerMaxEnemies    = 12
	SpawnerInterval      = 4.0 // seconds between waves at the start of a run
	SpawnerMinInterval   = 1.2
	SpawnerIntervalDecay = 0.95 // interval multiplier applied after every wave
	SpawnerWaveSize      = 2
	SpawnerShotPool      = 20
	SpawnerFirstDelay    = 1.0
	SpawnerMinRadius     = 2.2 // distance from the player
	SpawnerMaxRadius     = 2.8
	SpawnerHover         = 1.4
)

// SpawnerOptions configures an EnemySpawner. Zero fields take the defaults above.
type SpawnerOptions struct {
	MaxEnemies    int
	Interval      float64
	MinInterval   float64
	IntervalDecay float64
	WaveSize      int
	ShotPool      int
	FirstDelay    float64
	MinRadius     float64
	MaxRadius     float64
	Hover         float64

	Mesh     *scene.Mesh
	ShotMesh *scene.Mesh
	Bounds   physics.Box
	Rand     *rand.Rand
}

func (o SpawnerOptions) withDefaults() SpawnerOptions {
	if o.MaxEnemies <= 0 {
		o.MaxEnemies = SpawnerMaxEnemies
	}
	if o.Interval <= 0 {
		o.Interval = SpawnerInterval
	}
	if o.MinInterval <= 0 {
		o.MinInterval = SpawnerMinInterval
	}
	if o.IntervalDecay <= 0 || o.IntervalDecay > 1 {
		o.IntervalDecay = SpawnerIntervalDecay
	}
	if o.WaveSize <= 0 {
		o.WaveSize = SpawnerWaveSize
	}
	if o.ShotPool <= 0 {
		o.ShotPool = SpawnerShotPool
	}
	if o.FirstDelay <= 0 {
		o.FirstDelay = SpawnerFirstDelay
	}
	if o.MinRadius <= 0 {
		o.MinRadius = SpawnerMinRadius
	}
	if o.MaxRadius < o.MinRadius {
		o.MaxRadius = math.Max(SpawnerMaxRadius, o.MinRadius)
	}
	if o.Hover <= 0 {
		o.Hover = SpawnerHover
	}
	return o
}

// EnemySpawner owns the robot pool and the robots' shared projectile pool.
// While started it spawns waves on a shrinking interval.
type EnemySpawner struct {
	opts     SpawnerOptions
	enemies  []*Enemy
	shots    *ProjectileGroup
	grid     *physics.SpatialGrid
	graph    *scene.Graph
	node     scene.Handle
	active   bool
	timer    float64 // seconds until the next wave
	interval float64
	waves    int
}

var _ Targets = (*EnemySpawner)(nil)

// NewEnemySpawner allocates the robot pool under parent. It starts stopped.
func NewEnemySpawner(g *scene.Graph, parent scene.Handle, opts SpawnerOptions) *EnemySpawner {
	opts = opts.withDefaults()
	group := g.Add(parent, scene.Node{Kind: scene.KindGroup, Name: "enemies", Visible: true})

	s := &EnemySpawner{
		opts:    opts,
		enemies: make([]*Enemy, opts.MaxEnemies),
		graph:   g,
		node:    group,
	}
	for i := range s.enemies {
		s.enemies[i] = &Enemy{
			graph: g,
			node:  g.Add(group, scene.Node{Kind: scene.KindEnemy, Mesh: opts.Mesh}),
		}
	}

	shotOpts := HostileProjectiles(opts.ShotMesh)
	shotOpts.Rand = opts.Rand
	s.shots = NewProjectileGroup(g, parent, opts.ShotPool, shotOpts)

	bounds := opts.Bounds
	if bounds == (physics.Box{}) {
		bounds = physics.Box{Min: mgl64.Vec3{-10, 0, -10}, Max: mgl64.Vec3{10, 10, 10}}
	}
	// A robot and a shot interact within their summed radii.
	s.grid = physics.NewSpatialGrid(bounds, 2*(EnemyRadius+ProjectileRadius))
	return s
}

// Start begins spawning waves. The first wave comes after FirstDelay.
func (s *EnemySpawner) Start() {
	s.active = true
	s.timer = s.opts.FirstDelay
	s.interval = s.opts.Interval
	s.waves = 0
}

// Stop halts spawning. Live robots keep moving until Clear.
func (s *EnemySpawner) Stop() {
	s.active = false
}

// Active reports whether the spawner is producing waves.
func (s *EnemySpawner) Active() bool {
	return s.active
}

// Clear releases every robot and every hostile shot.
func (s *EnemySpawner) Clear() {
	for _, e := range s.enemies {
		e.Release()
	}
	s.shots.Clear()
	s.grid.Clear()
}

// Live counts active robots.
func (s *EnemySpawner) Live() int {
	n := 0
	for _, e := range s.enemies {
		if e.Active {
			n++
		}
	}
	return n
}

// Waves returns how many waves were spawned since Start.
func (s *EnemySpawner) Waves() int {
	return s.waves
}

// Enemies returns the whole pool, active or not.
func (s *EnemySpawner) Enemies() []*Enemy {
	return s.enemies
}

// Shots returns the robots' projectile pool.
func (s *EnemySpawner) Shots() *ProjectileGroup {
	return s.shots
}

// Nearby calls fn for live robots in the grid cells around pos.
func (s *EnemySpawner) Nearby(pos mgl64.Vec3, _ float64, fn func(e *Enemy) bool) {
	s.grid.QueryAround(pos[0], pos[2], func(i int) bool {
		e := s.enemies[i]
		if !e.Active {
			return false
		}
		return fn(e)
	})
}

// Update spawns due waves, moves live robots and their shots, and rebuilds
// the collision grid for the player's projectiles.
func (s *EnemySpawner) Update(ctx UpdateContext) {
	dt := ctx.Delta.Seconds()

	if s.active && dt > 0 {
		s.timer -= dt
		for s.timer <= 0 {
			s.spawnWave(ctx)
			s.interval = math.Max(s.opts.MinInterval, s.interval*s.opts.IntervalDecay)
			s.timer += s.interval
		}
	}

	s.grid.Clear()
	for i, e := range s.enemies {
		if !e.Active {
			continue
		}
		e.Update(ctx, s.shots)
		s.grid.Insert(e.Position[0], e.Position[2], i)
	}

	s.shots.Update(ctx)
}

func (s *EnemySpawner) spawnWave(ctx UpdateContext) {
	s.waves++
	for range s.opts.WaveSize {
		e := s.freeEnemy()
		if e == nil {
			return
		}
		e.spawn(s.spawnPoint(ctx), ctx)
	}
}

func (s *EnemySpawner) freeEnemy() *Enemy {
	for _, e := range s.enemies {
		if !e.Active {
			return e
		}
	}
	return nil
}

// spawnPoint picks a point on a ring around the player, kept inside the room.
func (s *EnemySpawner) spawnPoint(ctx UpdateContext) mgl64.Vec3 {
	angle := s.rand(ctx) * 2 * math.Pi
	r := s.opts.MinRadius + s.rand(ctx)*(s.opts.MaxRadius-s.opts.MinRadius)
	p := mgl64.Vec3{
		ctx.PlayerPosition[0] + r*math.Sin(angle),
		s.opts.Hover,
		ctx.PlayerPosition[2] + r*math.Cos(angle),
	}
	if s.opts.Bounds != (physics.Box{}) {
		p = s.opts.Bounds.Shrink(EnemyRadius).Clamp(p)
	}
	return p
}

func (s *EnemySpawner) rand(ctx UpdateContext) float64 {
	if s.opts.Rand != nil {
		return s.opts.Rand.Float64()
	}
	return ctx.randFloat()
}
