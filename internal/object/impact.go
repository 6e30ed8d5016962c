package object

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/scene"
)

// Impact flash tuning.
const (
	ImpactLifetime = 0.25 // seconds
	ImpactGrowth   = 3.0  // scale gained per second
	ImpactPool     = 16
)

// Impact is a short-lived flash where a shot landed.
type Impact struct {
	Active   bool
	Position mgl64.Vec3
	Lifetime float64 // seconds remaining

	graph *scene.Graph
	node  scene.Handle
}

var _ Releasable = (*Impact)(nil)

// Release hides the flash.
func (i *Impact) Release() {
	if !i.Active {
		return
	}
	i.Active = false
	i.graph.SetVisible(i.node, false)
}

// ImpactGroup is a round-robin pool of flashes. Unlike projectiles, a busy
// slot is overwritten: the oldest flash is the least interesting one.
type ImpactGroup struct {
	impacts []*Impact
	pos     int
}

// NewImpactGroup allocates n hidden flashes under parent.
func NewImpactGroup(g *scene.Graph, parent scene.Handle, n int, mesh *scene.Mesh) *ImpactGroup {
	if n < 1 {
		n = 1
	}
	group := g.Add(parent, scene.Node{Kind: scene.KindGroup, Name: "impacts", Visible: true})
	ig := &ImpactGroup{impacts: make([]*Impact, n)}
	for i := range ig.impacts {
		ig.impacts[i] = &Impact{
			graph: g,
			node:  g.Add(group, scene.Node{Kind: scene.KindImpact, Mesh: mesh}),
		}
	}
	return ig
}

// Spawn shows a flash at pos.
func (ig *ImpactGroup) Spawn(pos mgl64.Vec3) {
	i := ig.impacts[ig.pos]
	i.Active = true
	i.Position = pos
	i.Lifetime = ImpactLifetime
	i.graph.SetPosition(i.node, pos)
	i.graph.SetScale(i.node, 1)
	i.graph.SetVisible(i.node, true)

	ig.pos = (ig.pos + 1) % len(ig.impacts)
}

// Update grows live flashes and hides expired ones.
func (ig *ImpactGroup) Update(ctx UpdateContext) {
	dt := ctx.Delta.Seconds()
	for _, i := range ig.impacts {
		if !i.Active {
			continue
		}
		i.Lifetime -= dt
		if i.Lifetime <= 0 {
			i.Release()
			continue
		}
		i.graph.SetScale(i.node, 1+ImpactGrowth*(ImpactLifetime-i.Lifetime))
	}
}

// Clear hides every flash.
func (ig *ImpactGroup) Clear() {
	for _, i := range ig.impacts {
		i.Release()
	}
}

// Active counts visible flashes.
func (ig *ImpactGroup) Active() int {
	n := 0
	for _, i := range ig.impacts {
		if i.Active {
			n++
		}
	}
	return n
}
