// Package loop runs a game session: the state machine, the per-frame tick and
// the render call into the host's surface.
package loop

//go:generate go tool mockgen -destination=./mocks/loop_mock.go -package=mocks . Surface,Scorer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/tomz197/vrarcade/internal/asset"
	"github.com/tomz197/vrarcade/internal/input"
	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/loop/config"
	"github.com/tomz197/vrarcade/internal/object"
	"github.com/tomz197/vrarcade/internal/physics"
	"github.com/tomz197/vrarcade/internal/scene"
	"github.com/tomz197/vrarcade/internal/score"
)

// ErrNotReady is returned by Start before the assets are in or during a run.
var ErrNotReady = errors.New("loop: game cannot start now")

// AlertLoadFailed is shown when the assets cannot back a session.
const AlertLoadFailed = "Failed to load the game assets, please refresh."

// muzzleOffset moves a shot's origin to the tip of the weapon.
const muzzleOffset = 0.15

// Assets is what a session needs from a finished asset load.
type Assets interface {
	Meshes() *asset.Meshes
	Sounds() asset.Sounds
	Preflight() error
}

var _ Assets = (*asset.Store)(nil)

// Options configures a Game.
type Options struct {
	Surface Surface
	Score   Scorer       // nil uses a fresh score.Board
	Events  *input.Queue // nil means no input
	Logger  *log.Logger
	Rand    *rand.Rand       // nil uses the global source
	Now     func() time.Time // nil uses time.Now
	Session string           // empty generates a random id
}

type loadResult struct {
	assets Assets
	err    error
}

// Game owns one session's scene, pools and state. Tick must be called from a
// single goroutine; Resize, AssetsLoaded, Snapshot and the input queue are
// safe from any goroutine.
type Game struct {
	id      string
	log     *log.Logger
	surface Surface
	score   Scorer
	events  *input.Queue
	clock   *Clock
	rand    *rand.Rand

	state     State
	timeScale float64
	fatal     error
	died      bool
	firedBase int // shots.Fired() when the run started

	loaded     chan loadResult
	pendingDim atomic.Uint64
	width      int
	height     int

	graph       *scene.Graph
	camera      *scene.Camera
	rig         scene.Handle
	bounds      physics.Box
	player      *object.Player
	controllers []*object.Controller

	// built once the assets are in
	shots   *object.ProjectileGroup
	spawner *object.EnemySpawner
	impacts *object.ImpactGroup
	sounds  asset.Sounds

	frame    Frame
	inbox    []input.Event
	snapshot atomic.Pointer[Snapshot]
}

// NewGame creates a session in the Loading state. Hand it to the asset store
// through AssetsLoaded.
func NewGame(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Session == "" {
		opts.Session = uuid.NewString()
	}
	if opts.Score == nil {
		opts.Score = score.NewBoard()
	}

	g := &Game{
		id:        opts.Session,
		log:       opts.Logger.With("session", opts.Session),
		surface:   opts.Surface,
		score:     opts.Score,
		events:    opts.Events,
		clock:     NewClock(opts.Now, config.MaxFrameDelta),
		rand:      opts.Rand,
		state:     StateLoading,
		timeScale: config.TimeScaleSlow,
		loaded:    make(chan loadResult, 1),
		graph:     scene.NewGraph(),
		camera:    scene.NewCamera(config.CameraFovY, 1, config.CameraNear, config.CameraFar),
		bounds:    physics.Box{Min: config.RoomMin, Max: config.RoomMax},
		player:    object.NewPlayer(config.PlayerHealth),
	}

	root := g.graph.Root()
	g.graph.Add(root, scene.Node{Kind: scene.KindLight, Name: "hemisphere", Position: mgl64.Vec3{0, 1, 0}, Visible: true})
	g.graph.Add(root, scene.Node{Kind: scene.KindLight, Name: "directional", Position: mgl64.Vec3{1, 1, 1}, Visible: true})
	g.rig = g.graph.Add(root, scene.Node{Kind: scene.KindGroup, Name: "head", Position: config.HeadPosition, Visible: true})

	offsets := []mgl64.Vec3{config.PrimaryHandOffset, config.SecondaryHandOffset}
	for i := range config.Controllers {
		c := object.NewController(g.graph, g.rig, i)
		c.SetPose(offsets[i%len(offsets)], mgl64.QuatIdent())
		g.controllers = append(g.controllers, c)
	}

	g.player.OnDeath(func() { g.died = true })
	g.player.Position = config.HeadPosition

	g.snapshot.Store(&Snapshot{Session: g.id, State: g.state, TimeScale: g.timeScale})
	return g
}

// ID returns the session id.
func (g *Game) ID() string {
	return g.id
}

// AssetsLoaded reports the outcome of the asset load. It can be used directly
// as the store's completion callback; the result is applied by the next Tick.
func (g *Game) AssetsLoaded(a Assets, err error) {
	select {
	case g.loaded <- loadResult{assets: a, err: err}:
	default:
		g.log.Warn("asset result dropped, one is already pending")
	}
}

// Resize records a new surface size. The next Tick applies it.
func (g *Game) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.pendingDim.Store(uint64(uint32(width))<<32 | uint64(uint32(height)))
}

// Snapshot returns the summary published by the last Tick.
func (g *Game) Snapshot() Snapshot {
	return *g.snapshot.Load()
}

// State returns the current phase. Only meaningful on the tick goroutine.
func (g *Game) State() State {
	return g.state
}

// TimeScale returns the multiplier applied to every frame delta.
func (g *Game) TimeScale() float64 {
	return g.timeScale
}

// SetTimeScale overrides the multiplier until the next state transition.
func (g *Game) SetTimeScale(m float64) {
	if m >= 0 {
		g.timeScale = m
	}
}

// Camera returns the viewer's camera.
func (g *Game) Camera() *scene.Camera {
	return g.camera
}

// Player returns the viewer's body.
func (g *Game) Player() *object.Player {
	return g.player
}

// Controller returns hand i, or nil.
func (g *Game) Controller(i int) *object.Controller {
	if i < 0 || i >= len(g.controllers) {
		return nil
	}
	return g.controllers[i]
}

// Projectiles returns the player's shot pool, nil while loading.
func (g *Game) Projectiles() *object.ProjectileGroup {
	return g.shots
}

// Spawner returns the enemy spawner, nil while loading.
func (g *Game) Spawner() *object.EnemySpawner {
	return g.spawner
}

// Start begins a run from the Ready or GameOver state.
func (g *Game) Start() error {
	if g.state != StateReady && g.state != StateGameOver {
		return fmt.Errorf("%w: state %s", ErrNotReady, g.state)
	}
	g.score.Restart()
	g.score.StartCounting()

	g.shots.Clear()
	g.firedBase = g.shots.Fired()
	g.spawner.Clear()
	g.impacts.Clear()
	g.player.Reset()
	g.died = false

	g.spawner.Start()
	g.timeScale = config.TimeScaleNormal
	g.state = StatePlaying
	g.log.Info("run started")
	return nil
}

// GameOver ends the current run: scoring stops, the world slows down and
// every enemy is removed before the next tick.
func (g *Game) GameOver() {
	if g.state != StatePlaying {
		return
	}
	g.score.StopCounting()
	g.state = StateGameOver
	g.timeScale = config.TimeScaleSlow
	g.spawner.Stop()
	g.spawner.Clear()
	g.log.Info("run over", "score", g.score.Value(), "best", g.score.Best())
}

// Tick advances the session by one frame and renders it. After a failed
// asset load it returns an error wrapping asset.ErrAssetsUnavailable.
func (g *Game) Tick() error {
	if g.fatal != nil {
		return g.fatal
	}
	g.applyResize()
	g.applyLoad()
	if g.fatal != nil {
		return g.fatal
	}
	g.handleInput()

	dt := time.Duration(float64(g.clock.Delta()) * g.timeScale)

	head := g.graph.WorldPosition(g.rig)
	g.camera.Position = head
	g.camera.Orientation = g.graph.WorldOrientation(g.rig)

	if g.spawner != nil {
		ctx := object.UpdateContext{
			Delta:          dt,
			PlayerPosition: head,
			Player:         g.player,
			Targets:        g.spawner,
			Hooks:          hooks{g},
			Bounds:         g.bounds,
			Rand:           g.rand,
		}
		if g.state == StatePlaying {
			g.fire(dt)
		}
		g.player.Update(ctx)
		g.spawner.Update(ctx)
		g.shots.Update(ctx)
		g.impacts.Update(ctx)

		if g.died {
			g.died = false
			g.GameOver()
		}
	}

	return g.render()
}

func (g *Game) applyResize() {
	v := g.pendingDim.Swap(0)
	if v == 0 {
		return
	}
	g.width, g.height = int(v>>32), int(uint32(v))
	g.camera.SetAspect(float64(g.width) / float64(g.height))
	if g.surface != nil {
		g.surface.SetSize(g.width, g.height)
	}
}

func (g *Game) applyLoad() {
	var res loadResult
	select {
	case res = <-g.loaded:
	default:
		return
	}
	if g.state != StateLoading {
		return
	}

	err := res.err
	if err == nil && res.assets == nil {
		err = errors.New("no assets")
	}
	if err == nil {
		err = res.assets.Preflight()
	}
	if err != nil {
		if !errors.Is(err, asset.ErrAssetsUnavailable) {
			err = fmt.Errorf("%w: %w", asset.ErrAssetsUnavailable, err)
		}
		g.fatal = err
		g.frame.Alert = AlertLoadFailed
		g.log.Error("asset load failed", "err", err)
		if g.surface != nil {
			g.surface.Alert(AlertLoadFailed)
		}
		return
	}

	g.build(res.assets)
	g.state = StateReady
	g.log.Info("assets ready")
}

// build places the room and allocates every pool.
func (g *Game) build(a Assets) {
	m := a.Meshes()
	root := g.graph.Root()
	g.graph.Add(root, scene.Node{Kind: scene.KindRoom, Name: "room", Mesh: m.Environment, Visible: true})

	for _, c := range g.controllers {
		c.AttachWeapon(m.Weapon)
	}

	shotOpts := object.PlayerProjectiles(m.Projectile)
	shotOpts.Rand = g.rand
	g.shots = object.NewProjectileGroup(g.graph, root, config.PlayerProjectilePool, shotOpts)

	g.spawner = object.NewEnemySpawner(g.graph, root, object.SpawnerOptions{
		MaxEnemies:    config.MaxEnemies,
		Interval:      config.SpawnInterval,
		MinInterval:   config.SpawnMinInterval,
		IntervalDecay: config.SpawnIntervalDecay,
		WaveSize:      config.WaveSize,
		ShotPool:      config.EnemyProjectilePool,
		FirstDelay:    config.SpawnFirstDelay,
		Mesh:          m.Enemy,
		ShotMesh:      m.Hostile,
		Bounds:        g.bounds,
		Rand:          g.rand,
	})
	g.impacts = object.NewImpactGroup(g.graph, root, config.ImpactPool, m.Impact)
	g.sounds = a.Sounds()
}

func (g *Game) handleInput() {
	if g.events == nil {
		return
	}
	g.inbox = g.events.Drain(g.inbox[:0])
	for _, e := range g.inbox {
		if e.Kind == input.Start {
			if err := g.Start(); err != nil {
				g.log.Debug("start ignored", "err", err)
			}
			continue
		}
		if e.Kind == input.Aim && e.Controller == input.Head {
			g.graph.SetOrientation(g.rig, e.Orientation)
			continue
		}

		c := g.Controller(e.Controller)
		if c == nil {
			g.log.Debug("event for unknown controller", "kind", e.Kind, "controller", e.Controller)
			continue
		}
		switch e.Kind {
		case input.SelectStart:
			c.SelectStart()
		case input.SelectEnd:
			c.SelectEnd()
		case input.Connected:
			mode, err := object.ParseTargetRayMode(e.Mode)
			if err != nil {
				g.log.Warn("controller connected", "controller", e.Controller, "err", err)
			}
			c.Connect(mode)
		case input.Disconnected:
			c.Disconnect()
		case input.Aim:
			c.Aim(e.Orientation)
		}
	}
}

// fire shoots from every hand that holds its trigger.
func (g *Game) fire(dt time.Duration) {
	for _, c := range g.controllers {
		if !c.Connected || !c.Selecting {
			continue
		}
		if !c.Ready(dt, config.FireInterval) {
			continue
		}
		pos, q := c.Pose()
		g.shots.ShootFrom(q, pos.Add(q.Rotate(scene.Forward).Mul(muzzleOffset)))
		if g.sounds.Shot != nil {
			g.sounds.Shot.Play()
		}
	}
}

func (g *Game) render() error {
	snap := g.publish()
	g.frame.Lines = scene.Project(g.frame.Lines[:0], g.graph, g.camera)
	g.frame.HUD = snap
	if g.surface == nil {
		return nil
	}
	return g.surface.Render(&g.frame)
}

func (g *Game) publish() Snapshot {
	snap := Snapshot{
		Session:   g.id,
		State:     g.state,
		Score:     g.score.Value(),
		Best:      g.score.Best(),
		Health:    g.player.Health,
		MaxHealth: g.player.MaxHealth,
		TimeScale: g.timeScale,
		At:        g.clock.now(),
	}
	if g.spawner != nil {
		snap.Enemies = g.spawner.Live()
		snap.Hostile = g.spawner.Shots().InFlight()
		snap.Shots = g.shots.InFlight()
		snap.Fired = g.shots.Fired() - g.firedBase
	}
	g.snapshot.Store(&snap)
	return snap
}

// hooks applies collision side effects for the session.
type hooks struct {
	g *Game
}

func (h hooks) EnemyHit(_ *object.Enemy, at mgl64.Vec3, destroyed bool) {
	points := config.ScoreEnemyHit
	if destroyed {
		points = config.ScoreEnemyDestroyed
	}
	// the run ended earlier in this tick; GameOver runs after the updates
	if !h.g.died {
		h.g.score.Add(points)
	}
	h.g.impacts.Spawn(at)
	if h.g.sounds.BotImpact != nil {
		h.g.sounds.BotImpact.Play()
	}
}

func (h hooks) PlayerHit(at mgl64.Vec3, damage int) {
	h.g.impacts.Spawn(at)
	h.g.log.Debug("player hit", "damage", damage, "health", h.g.player.Health)
}
