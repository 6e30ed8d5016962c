// Package object holds the entities of the arena: pooled projectiles,
// enemies and their spawner, the player, hand controllers and impact flashes.
package object

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/physics"
)

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta          time.Duration // already scaled by the game's time multiplier
	PlayerPosition mgl64.Vec3    // world-space head position
	Player         *Player       // target of hostile projectiles
	Targets        Targets       // targets of player projectiles
	Hooks          Hooks
	Bounds         physics.Box // the room
	Rand           *rand.Rand
}

func (ctx UpdateContext) hooks() Hooks {
	if ctx.Hooks == nil {
		return NopHooks{}
	}
	return ctx.Hooks
}

func (ctx UpdateContext) randFloat() float64 {
	if ctx.Rand == nil {
		return rand.Float64()
	}
	return ctx.Rand.Float64()
}

// outside reports whether pos left the room. A zero Bounds means no walls.
func (ctx UpdateContext) outside(pos mgl64.Vec3) bool {
	if ctx.Bounds == (physics.Box{}) {
		return false
	}
	return !ctx.Bounds.Contains(pos)
}

// Targets finds enemies near a point for projectile collision.
type Targets interface {
	// Nearby calls fn for live enemies that may be within radius of pos.
	// Iteration stops when fn returns true.
	Nearby(pos mgl64.Vec3, radius float64, fn func(e *Enemy) bool)
}

// Hooks receives collision side effects. They run before the projectile is recycled.
type Hooks interface {
	EnemyHit(e *Enemy, at mgl64.Vec3, destroyed bool)
	PlayerHit(at mgl64.Vec3, damage int)
}

// NopHooks ignores every event.
type NopHooks struct{}

func (NopHooks) EnemyHit(*Enemy, mgl64.Vec3, bool) {}
func (NopHooks) PlayerHit(mgl64.Vec3, int)         {}

// Releasable is implemented by pooled entities that can be returned to their pool.
type Releasable interface {
	// Release hides the entity and marks its slot free. Releasing a free entity is a no-op.
	Release()
}
