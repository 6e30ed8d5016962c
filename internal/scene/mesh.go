package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Segment is a line segment in mesh-local space.
type Segment struct {
	A, B mgl64.Vec3
}

// Mesh is wireframe geometry shared by every node that references it.
type Mesh struct {
	Name     string
	Segments []Segment
	Color    color.RGBA
}

// Palette from the arena's materials.
var (
	ColorRoom       = color.RGBA{0xc7, 0x17, 0x17, 0xff}
	ColorProjectile = color.RGBA{0x00, 0xad, 0xff, 0xff}
	ColorHostile    = color.RGBA{0xfb, 0xff, 0x00, 0xff}
	ColorEnemy      = color.RGBA{0xd0, 0xd0, 0xd0, 0xff}
	ColorPointer    = color.RGBA{0x80, 0x80, 0x80, 0xff}
	ColorWeapon     = color.RGBA{0x60, 0x60, 0x60, 0xff}
	ColorImpact     = color.RGBA{0xff, 0x8c, 0x00, 0xff}
)

// BoxMesh builds a w*h*d box with each face subdivided into div cells.
// The box is centered on the origin.
func BoxMesh(name string, w, h, d float64, div int, c color.RGBA) *Mesh {
	if div < 1 {
		div = 1
	}
	m := &Mesh{Name: name, Color: c}
	hx, hy, hz := w/2, h/2, d/2

	for i := 0; i <= div; i++ {
		t := float64(i) / float64(div)
		x := -hx + t*w
		y := -hy + t*h
		z := -hz + t*d

		// floor and ceiling
		for _, fy := range []float64{-hy, hy} {
			m.add(mgl64.Vec3{x, fy, -hz}, mgl64.Vec3{x, fy, hz})
			m.add(mgl64.Vec3{-hx, fy, z}, mgl64.Vec3{hx, fy, z})
		}
		// left and right walls
		for _, fx := range []float64{-hx, hx} {
			m.add(mgl64.Vec3{fx, y, -hz}, mgl64.Vec3{fx, y, hz})
			m.add(mgl64.Vec3{fx, -hy, z}, mgl64.Vec3{fx, hy, z})
		}
		// front and back walls
		for _, fz := range []float64{-hz, hz} {
			m.add(mgl64.Vec3{-hx, y, fz}, mgl64.Vec3{hx, y, fz})
			m.add(mgl64.Vec3{x, -hy, fz}, mgl64.Vec3{x, hy, fz})
		}
	}
	return m
}

// ConeMesh builds a cone pointing down -Z (the forward axis) with the given
// base radius, height and number of sides.
func ConeMesh(name string, radius, height float64, sides int, c color.RGBA) *Mesh {
	if sides < 3 {
		sides = 3
	}
	m := &Mesh{Name: name, Color: c}
	tip := mgl64.Vec3{0, 0, -height / 2}
	base := make([]mgl64.Vec3, sides)
	for i := range sides {
		a := 2 * math.Pi * float64(i) / float64(sides)
		base[i] = mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), height / 2}
	}
	for i := range sides {
		m.add(base[i], base[(i+1)%sides])
		m.add(base[i], tip)
	}
	return m
}

// RingMesh builds a flat ring facing +Z, pushed out to z = -distance.
func RingMesh(name string, inner, outer, distance float64, segments int, c color.RGBA) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: name, Color: c}
	for _, r := range []float64{inner, outer} {
		for i := range segments {
			a0 := 2 * math.Pi * float64(i) / float64(segments)
			a1 := 2 * math.Pi * float64(i+1) / float64(segments)
			m.add(
				mgl64.Vec3{r * math.Cos(a0), r * math.Sin(a0), -distance},
				mgl64.Vec3{r * math.Cos(a1), r * math.Sin(a1), -distance},
			)
		}
	}
	return m
}

// LineMesh is a single segment, used for the tracked-pointer ray.
func LineMesh(name string, from, to mgl64.Vec3, c color.RGBA) *Mesh {
	m := &Mesh{Name: name, Color: c}
	m.add(from, to)
	return m
}

// RobotMesh is a boxy robot of roughly unit height centered on its torso.
func RobotMesh(name string, c color.RGBA) *Mesh {
	m := &Mesh{Name: name, Color: c}
	m.merge(BoxMesh("", 0.5, 0.6, 0.35, 1, c), mgl64.Vec3{0, 0, 0})
	m.merge(BoxMesh("", 0.3, 0.25, 0.3, 1, c), mgl64.Vec3{0, 0.45, 0})
	// eye slit
	m.add(mgl64.Vec3{-0.1, 0.47, -0.151}, mgl64.Vec3{0.1, 0.47, -0.151})
	// arms
	m.add(mgl64.Vec3{-0.25, 0.2, 0}, mgl64.Vec3{-0.4, -0.2, -0.15})
	m.add(mgl64.Vec3{0.25, 0.2, 0}, mgl64.Vec3{0.4, -0.2, -0.15})
	return m
}

// PistolMesh is a small gun: barrel along -Z plus a grip.
func PistolMesh(name string, c color.RGBA) *Mesh {
	m := &Mesh{Name: name, Color: c}
	m.merge(BoxMesh("", 0.04, 0.05, 0.2, 1, c), mgl64.Vec3{0, 0, -0.05})
	m.merge(BoxMesh("", 0.035, 0.1, 0.05, 1, c), mgl64.Vec3{0, -0.06, 0.03})
	return m
}

// BurstMesh is a star of short spokes, used for impact flashes.
func BurstMesh(name string, size float64, c color.RGBA) *Mesh {
	m := &Mesh{Name: name, Color: c}
	dirs := []mgl64.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
		{0.7, 0.7, 0}, {-0.7, 0.7, 0}, {0.7, -0.7, 0}, {-0.7, -0.7, 0},
	}
	for _, d := range dirs {
		m.add(d.Mul(size*0.3), d.Mul(size))
	}
	return m
}

func (m *Mesh) add(a, b mgl64.Vec3) {
	m.Segments = append(m.Segments, Segment{A: a, B: b})
}

func (m *Mesh) merge(other *Mesh, offset mgl64.Vec3) {
	for _, s := range other.Segments {
		m.add(s.A.Add(offset), s.B.Add(offset))
	}
}

// Scaled returns a copy of m with every vertex multiplied by s.
func (m *Mesh) Scaled(s float64) *Mesh {
	out := &Mesh{Name: m.Name, Color: m.Color, Segments: make([]Segment, len(m.Segments))}
	for i, seg := range m.Segments {
		out.Segments[i] = Segment{A: seg.A.Mul(s), B: seg.B.Mul(s)}
	}
	return out
}
