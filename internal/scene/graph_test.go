package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestGraphAddDestroy(t *testing.T) {
	g := NewGraph()
	room := g.Add(g.Root(), Node{Kind: KindRoom, Name: "room", Visible: true})
	ctrl := g.Add(g.Root(), Node{Kind: KindController, Name: "controller-0", Visible: true})
	ptr := g.Add(ctrl, Node{Kind: KindPointer, Visible: true})

	if g.Len() != 4 {
		t.Fatalf("Len = %d, want 4", g.Len())
	}
	if g.Parent(ptr) != ctrl {
		t.Errorf("Parent(pointer) = %d, want %d", g.Parent(ptr), ctrl)
	}
	if kids := g.Children(g.Root()); len(kids) != 2 || kids[0] != room || kids[1] != ctrl {
		t.Errorf("root children = %v, want [%d %d]", kids, room, ctrl)
	}

	g.Destroy(ctrl)
	if g.Valid(ctrl) || g.Valid(ptr) {
		t.Error("Destroy must remove the whole subtree")
	}
	if g.Len() != 2 {
		t.Errorf("Len after destroy = %d, want 2", g.Len())
	}
	if kids := g.Children(g.Root()); len(kids) != 1 || kids[0] != room {
		t.Errorf("root children after destroy = %v", kids)
	}

	// freed slots are reused, live handles are untouched
	again := g.Add(g.Root(), Node{Kind: KindEnemy, Visible: true})
	if !g.Valid(room) || g.Node(room).Name != "room" {
		t.Error("reusing a slot clobbered a live node")
	}
	if g.Node(again).Kind != KindEnemy || g.Node(again).Scale != 1 {
		t.Errorf("reused node = %+v", g.Node(again))
	}

	g.Destroy(g.Root())
	if !g.Valid(g.Root()) {
		t.Error("root must survive Destroy")
	}
}

func TestGraphWorldTransform(t *testing.T) {
	g := NewGraph()
	room := g.Add(g.Root(), Node{Kind: KindRoom, Position: mgl64.Vec3{0, 3, 0}, Visible: true})
	child := g.Add(room, Node{
		Kind:        KindEnemy,
		Position:    mgl64.Vec3{1, 0, 0},
		Orientation: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}),
		Visible:     true,
	})
	grand := g.Add(child, Node{Kind: KindWeapon, Position: mgl64.Vec3{0, 0, -1}, Visible: true})

	if got := g.WorldPosition(child); !near(got, mgl64.Vec3{1, 3, 0}) {
		t.Errorf("WorldPosition(child) = %v, want [1 3 0]", got)
	}
	// -Z rotated a quarter turn about +Y points down -X
	if got := g.WorldPosition(grand); !near(got, mgl64.Vec3{0, 3, 0}) {
		t.Errorf("WorldPosition(grand) = %v, want [0 3 0]", got)
	}
	if got := g.WorldOrientation(grand).Rotate(Forward); !near(got, mgl64.Vec3{-1, 0, 0}) {
		t.Errorf("world forward = %v, want [-1 0 0]", got)
	}
}

func TestGraphVisibility(t *testing.T) {
	g := NewGraph()
	pool := g.Add(g.Root(), Node{Kind: KindGroup, Visible: true})
	a := g.Add(pool, Node{Kind: KindProjectile, Visible: true})
	g.Add(pool, Node{Kind: KindProjectile, Visible: false})

	if got := g.Count(KindProjectile); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}

	g.SetVisible(pool, false)
	if g.Visible(a) {
		t.Error("child of hidden group reported visible")
	}
	if got := g.Count(KindProjectile); got != 0 {
		t.Errorf("Count under hidden group = %d, want 0", got)
	}
}

// near compares vectors with an absolute tolerance; mgl64's relative
// comparisons reject rounding noise on zero components.
func near(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}
