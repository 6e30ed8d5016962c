package object

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/scene"
)

// ProjectileGroup is a fixed pool of projectiles with a round-robin cursor.
//
// ShootFrom only fires when the slot under the cursor is free; a busy slot
// drops the shot. The cursor advances either way, so the pool size caps the
// number of shots in flight and acts as the fire-rate limiter.
type ProjectileGroup struct {
	projectiles []*Projectile
	pos         int
	opts        ProjectileOptions
	graph       *scene.Graph
	node        scene.Handle
}

// NewProjectileGroup allocates n projectiles (at least one) as hidden children
// of a new group node under parent.
func NewProjectileGroup(g *scene.Graph, parent scene.Handle, n int, opts ProjectileOptions) *ProjectileGroup {
	if n < 1 {
		n = 1
	}
	name := "projectiles"
	if opts.Hostile {
		name = "hostile-projectiles"
	}
	group := g.Add(parent, scene.Node{Kind: scene.KindGroup, Name: name, Visible: true})

	pg := &ProjectileGroup{
		projectiles: make([]*Projectile, n),
		opts:        opts,
		graph:       g,
		node:        group,
	}
	for i := range pg.projectiles {
		pg.projectiles[i] = &Projectile{
			Free:  true,
			graph: g,
			node: g.Add(group, scene.Node{
				Kind: scene.KindProjectile,
				Mesh: opts.Mesh,
			}),
		}
	}
	return pg
}

// ShootFrom fires the projectile under the cursor from origin along
// orientation, if that slot is free, and advances the cursor.
func (pg *ProjectileGroup) ShootFrom(orientation mgl64.Quat, origin mgl64.Vec3) {
	if p := pg.projectiles[pg.pos]; p.Free {
		p.spawn(orientation, origin, pg.opts, pg.jitter)
	}
	pg.pos++
	if pg.pos >= len(pg.projectiles) {
		pg.pos = 0
	}
}

func (pg *ProjectileGroup) jitter() float64 {
	if pg.opts.Rand == nil {
		return rand.Float64()
	}
	return pg.opts.Rand.Float64()
}

// Update advances every projectile in flight.
func (pg *ProjectileGroup) Update(ctx UpdateContext) {
	for _, p := range pg.projectiles {
		if !p.Free {
			p.Update(ctx)
		}
	}
}

// Clear frees every projectile. The cursor is left where it is.
func (pg *ProjectileGroup) Clear() {
	for _, p := range pg.projectiles {
		p.Release()
	}
}

// InFlight counts projectiles that are not free.
func (pg *ProjectileGroup) InFlight() int {
	n := 0
	for _, p := range pg.projectiles {
		if !p.Free {
			n++
		}
	}
	return n
}

// Fired counts every shot the pool has launched: completed flights plus the
// ones still in the air. Releasing a projectile never changes it.
func (pg *ProjectileGroup) Fired() int {
	n := 0
	for _, p := range pg.projectiles {
		n += p.flights
		if !p.Free {
			n++
		}
	}
	return n
}

// Cursor returns the slot the next ShootFrom will inspect.
func (pg *ProjectileGroup) Cursor() int {
	return pg.pos
}

// Len returns the pool size.
func (pg *ProjectileGroup) Len() int {
	return len(pg.projectiles)
}

// At returns the projectile in slot i.
func (pg *ProjectileGroup) At(i int) *Projectile {
	return pg.projectiles[i]
}

// Each calls fn for every projectile in flight.
func (pg *ProjectileGroup) Each(fn func(p *Projectile)) {
	for _, p := range pg.projectiles {
		if !p.Free {
			fn(p)
		}
	}
}
