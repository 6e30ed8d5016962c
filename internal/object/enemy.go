package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/physics"
	"github.com/tomz197/vrarcade/internal/scene"
)

// Robot tuning.
const (
	EnemyRadius       = 0.35
	EnemyHealth       = 2
	EnemySpeed        = 0.6 // meters per second
	EnemyStandoff     = 1.8 // robots stop approaching at this distance
	EnemyFireInterval = 2.5 // seconds between shots, +-25%
	EnemyFireRange    = 3.5
	EnemyBobAmplitude = 0.08
	EnemyBobSpeed     = 2.0 // radians per second
	EnemyPoints       = 100
)

var up = mgl64.Vec3{0, 1, 0}

// Enemy is one pooled robot. Inactive robots are hidden and ignored.
type Enemy struct {
	Active   bool
	Position mgl64.Vec3
	Radius   float64
	Health   int

	hover     float64 // bob center height
	phase     float64
	fireTimer float64

	graph *scene.Graph
	node  scene.Handle
}

var _ Releasable = (*Enemy)(nil)

func (e *Enemy) spawn(at mgl64.Vec3, ctx UpdateContext) {
	e.Active = true
	e.Position = at
	e.Radius = EnemyRadius
	e.Health = EnemyHealth
	e.hover = at[1]
	e.phase = ctx.randFloat() * 2 * math.Pi
	e.fireTimer = EnemyFireInterval * (0.5 + ctx.randFloat())
	e.face(ctx.PlayerPosition)

	e.graph.SetPosition(e.node, at)
	e.graph.SetVisible(e.node, true)
}

// Hit applies damage and reports whether it destroyed the robot.
func (e *Enemy) Hit(damage int) bool {
	if !e.Active {
		return false
	}
	e.Health -= damage
	if e.Health <= 0 {
		e.Release()
		return true
	}
	return false
}

// Release deactivates the robot.
func (e *Enemy) Release() {
	if !e.Active {
		return
	}
	e.Active = false
	e.Health = 0
	e.graph.SetVisible(e.node, false)
}

// Update walks the robot toward the player, bobs it and fires at the player
// through shots when its timer runs out.
func (e *Enemy) Update(ctx UpdateContext, shots *ProjectileGroup) {
	if !e.Active {
		return
	}
	dt := ctx.Delta.Seconds()

	toPlayer := ctx.PlayerPosition.Sub(e.Position)
	flat := mgl64.Vec3{toPlayer[0], 0, toPlayer[2]}
	dist := flat.Len()

	if dist > EnemyStandoff && dt > 0 {
		step := math.Min(EnemySpeed*dt, dist-EnemyStandoff)
		e.Position = e.Position.Add(flat.Mul(step / dist))
	}
	e.phase += EnemyBobSpeed * dt
	e.Position[1] = e.hover + EnemyBobAmplitude*math.Sin(e.phase)
	if ctx.Bounds != (physics.Box{}) {
		e.Position = ctx.Bounds.Shrink(e.Radius).Clamp(e.Position)
	}
	e.face(ctx.PlayerPosition)
	e.graph.SetPosition(e.node, e.Position)

	e.fireTimer -= dt
	if e.fireTimer <= 0 {
		e.fireTimer = EnemyFireInterval * (0.75 + 0.5*ctx.randFloat())
		if shots != nil && ctx.Player != nil && ctx.Player.Alive() && toPlayer.Len() <= EnemyFireRange {
			muzzle := e.Position.Add(e.forward().Mul(e.Radius + 0.05))
			aim := ctx.PlayerPosition.Sub(muzzle).Normalize()
			shots.ShootFrom(mgl64.QuatBetweenVectors(scene.Forward, aim), muzzle)
		}
	}
}

// face turns the robot about Y so its forward axis points at target.
func (e *Enemy) face(target mgl64.Vec3) {
	dx := target[0] - e.Position[0]
	dz := target[2] - e.Position[2]
	if dx == 0 && dz == 0 {
		return
	}
	e.graph.SetOrientation(e.node, mgl64.QuatRotate(math.Atan2(-dx, -dz), up))
}

func (e *Enemy) forward() mgl64.Vec3 {
	n := e.graph.Node(e.node)
	if n == nil {
		return scene.Forward
	}
	return n.Orientation.Rotate(scene.Forward)
}
