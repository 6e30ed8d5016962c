package object

import "github.com/go-gl/mathgl/mgl64"

// Player defaults.
const (
	PlayerRadius    = 0.3
	PlayerMaxHealth = 5
)

// Player is the viewer's body: a sphere around the head that robot shots
// can hit. It has no mesh.
type Player struct {
	Position  mgl64.Vec3
	Radius    float64
	Health    int
	MaxHealth int

	dead    bool
	onDeath func()
}

// NewPlayer creates a player with full health. maxHealth below 1 uses the default.
func NewPlayer(maxHealth int) *Player {
	if maxHealth < 1 {
		maxHealth = PlayerMaxHealth
	}
	return &Player{
		Radius:    PlayerRadius,
		Health:    maxHealth,
		MaxHealth: maxHealth,
	}
}

// OnDeath registers fn to run once when health reaches zero.
func (p *Player) OnDeath(fn func()) {
	p.onDeath = fn
}

// Update follows the head.
func (p *Player) Update(ctx UpdateContext) {
	p.Position = ctx.PlayerPosition
}

// Hit removes health. The death hook fires on the hit that empties it.
func (p *Player) Hit(damage int) {
	if p.dead || damage <= 0 {
		return
	}
	p.Health -= damage
	if p.Health > 0 {
		return
	}
	p.Health = 0
	p.dead = true
	if p.onDeath != nil {
		p.onDeath()
	}
}

// Alive reports whether the player still has health.
func (p *Player) Alive() bool {
	return !p.dead
}

// Reset restores full health for a new run.
func (p *Player) Reset() {
	p.Health = p.MaxHealth
	p.dead = false
}
