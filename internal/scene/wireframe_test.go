package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProjectCenterLine(t *testing.T) {
	g := NewGraph()
	mesh := LineMesh("probe", mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 0, -6}, ColorPointer)
	g.Add(g.Root(), Node{Kind: KindPointer, Mesh: mesh, Visible: true})

	cam := NewCamera(50, 1, 0.1, 10)
	lines := Project(nil, g, cam)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	l := lines[0]
	if math.Abs(l.X0) > 1e-9 || math.Abs(l.Y0) > 1e-9 {
		t.Errorf("line straight ahead should project to the center, got (%v, %v)", l.X0, l.Y0)
	}
	if l.Color != ColorPointer {
		t.Errorf("color = %v, want mesh color", l.Color)
	}
}

func TestProjectClipsBehindCamera(t *testing.T) {
	g := NewGraph()
	behind := LineMesh("behind", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 2}, ColorPointer)
	g.Add(g.Root(), Node{Kind: KindPointer, Mesh: behind, Visible: true})

	cam := NewCamera(50, 1, 0.1, 10)
	if lines := Project(nil, g, cam); len(lines) != 0 {
		t.Errorf("segment behind the camera produced %d lines", len(lines))
	}

	// crossing the near plane keeps the front part only
	g2 := NewGraph()
	cross := LineMesh("cross", mgl64.Vec3{0.1, 0, 1}, mgl64.Vec3{0.1, 0, -2}, ColorPointer)
	g2.Add(g2.Root(), Node{Kind: KindPointer, Mesh: cross, Visible: true})
	lines := Project(nil, g2, cam)
	if len(lines) != 1 {
		t.Fatalf("crossing segment: got %d lines, want 1", len(lines))
	}
	for _, v := range []float64{lines[0].X0, lines[0].Y0, lines[0].X1, lines[0].Y1} {
		if v < -1-1e-9 || v > 1+1e-9 {
			t.Errorf("clipped coordinate %v outside viewport", v)
		}
	}
}

func TestCameraAspect(t *testing.T) {
	cam := NewCamera(50, 1, 0.1, 10)
	wide := cam.Projection()

	cam.SetAspect(2)
	if cam.Aspect() != 2 {
		t.Fatalf("Aspect = %v, want 2", cam.Aspect())
	}
	if got, was := cam.Projection().At(0, 0), wide.At(0, 0); math.Abs(got-was/2) > 1e-9 {
		t.Errorf("x scale = %v, want %v", got, was/2)
	}

	cam.SetAspect(0)
	if cam.Aspect() != 2 {
		t.Error("zero aspect must be ignored")
	}
}

func TestHiddenNodesAreNotProjected(t *testing.T) {
	g := NewGraph()
	mesh := LineMesh("probe", mgl64.Vec3{0, 0, -5}, mgl64.Vec3{0, 1, -5}, ColorPointer)
	h := g.Add(g.Root(), Node{Kind: KindProjectile, Mesh: mesh, Visible: true})
	g.SetVisible(h, false)

	if lines := Project(nil, g, NewCamera(50, 1, 0.1, 10)); len(lines) != 0 {
		t.Errorf("hidden node projected %d lines", len(lines))
	}
}
