package object

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/physics"
	"github.com/tomz197/vrarcade/internal/scene"
)

// Player shot defaults. The range budget is the distance from the room's
// center to a wall, minus the projectile radius.
const (
	ProjectileSpeed    = 6.0   // meters per second
	ProjectileSpread   = 0.005 // max jitter per axis, before rotation
	ProjectileRadius   = 0.08
	ProjectileRange    = 3 - ProjectileRadius
	ProjectileLifetime = 2.0 // seconds
	ProjectileDamage   = 1
)

// Robot shot defaults. Slower, so they can be dodged.
const (
	HostileSpeed    = 2.5
	HostileSpread   = 0.02
	HostileRadius   = 0.1
	HostileRange    = 9.0
	HostileLifetime = 5.0
	HostileDamage   = 1
)

// ProjectileOptions configures every projectile of a group.
type ProjectileOptions struct {
	Speed    float64
	Spread   float64
	Radius   float64
	Range    float64
	Lifetime float64
	Damage   int
	Hostile  bool
	Mesh     *scene.Mesh
	Rand     *rand.Rand // jitter source, nil uses the global source
}

// PlayerProjectiles returns the options for shots fired by the player.
func PlayerProjectiles(mesh *scene.Mesh) ProjectileOptions {
	return ProjectileOptions{
		Speed:    ProjectileSpeed,
		Spread:   ProjectileSpread,
		Radius:   ProjectileRadius,
		Range:    ProjectileRange,
		Lifetime: ProjectileLifetime,
		Damage:   ProjectileDamage,
		Mesh:     mesh,
	}
}

// HostileProjectiles returns the options for shots fired by robots.
func HostileProjectiles(mesh *scene.Mesh) ProjectileOptions {
	return ProjectileOptions{
		Speed:    HostileSpeed,
		Spread:   HostileSpread,
		Radius:   HostileRadius,
		Range:    HostileRange,
		Lifetime: HostileLifetime,
		Damage:   HostileDamage,
		Hostile:  true,
		Mesh:     mesh,
	}
}

// Projectile is one pooled shot. Position and Velocity are only meaningful
// while the projectile is in flight (Free is false).
type Projectile struct {
	Free     bool
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Range    float64 // distance left to travel
	Lifetime float64 // seconds left to live
	Radius   float64
	Damage   int
	Hostile  bool

	graph   *scene.Graph
	node    scene.Handle
	flights int // completed flights
}

var _ Releasable = (*Projectile)(nil)

// spawn puts the projectile in flight from origin along orientation's forward axis.
func (p *Projectile) spawn(orientation mgl64.Quat, origin mgl64.Vec3, opts ProjectileOptions, jitter func() float64) {
	dir := scene.Forward
	if opts.Spread > 0 {
		dir = dir.Add(mgl64.Vec3{
			(jitter()*2 - 1) * opts.Spread,
			(jitter()*2 - 1) * opts.Spread,
			(jitter()*2 - 1) * opts.Spread,
		})
	}
	dir = orientation.Rotate(dir).Normalize()

	p.Free = false
	p.Position = origin
	p.Velocity = dir.Mul(opts.Speed)
	p.Range = opts.Range
	p.Lifetime = opts.Lifetime
	p.Radius = opts.Radius
	p.Damage = opts.Damage
	p.Hostile = opts.Hostile

	p.graph.SetPosition(p.node, origin)
	p.graph.SetOrientation(p.node, orientation)
	p.graph.SetVisible(p.node, true)
}

// Release returns the projectile to its pool. It is idempotent, so a shot
// is freed exactly once per flight.
func (p *Projectile) Release() {
	if p.Free {
		return
	}
	p.Free = true
	p.flights++
	p.graph.SetVisible(p.node, false)
}

// Update moves the projectile, tests it against its targets and frees it
// when it hits something or runs out of range, lifetime or room.
func (p *Projectile) Update(ctx UpdateContext) {
	if p.Free {
		return
	}
	dt := ctx.Delta.Seconds()
	if dt > 0 {
		step := p.Velocity.Mul(dt)
		p.Position = p.Position.Add(step)
		p.Range -= step.Len()
		p.Lifetime -= dt
	}

	if p.collide(ctx) {
		p.Release()
		return
	}
	if p.Range <= 0 || p.Lifetime <= 0 || ctx.outside(p.Position) {
		p.Release()
		return
	}
	p.graph.SetPosition(p.node, p.Position)
}

// collide applies hit side effects and reports whether the projectile hit anything.
func (p *Projectile) collide(ctx UpdateContext) bool {
	if p.Hostile {
		pl := ctx.Player
		if pl == nil || !pl.Alive() {
			return false
		}
		if !physics.SpheresOverlap(p.Position, p.Radius, pl.Position, pl.Radius) {
			return false
		}
		pl.Hit(p.Damage)
		ctx.hooks().PlayerHit(p.Position, p.Damage)
		return true
	}

	if ctx.Targets == nil {
		return false
	}
	var hit *Enemy
	ctx.Targets.Nearby(p.Position, p.Radius, func(e *Enemy) bool {
		if e.Active && physics.SpheresOverlap(p.Position, p.Radius, e.Position, e.Radius) {
			hit = e
			return true
		}
		return false
	})
	if hit == nil {
		return false
	}
	destroyed := hit.Hit(p.Damage)
	ctx.hooks().EnemyHit(hit, p.Position, destroyed)
	return true
}
