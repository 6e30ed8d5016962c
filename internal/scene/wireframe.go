package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Line is a projected segment in normalized device coordinates:
// x to the right, y up, both in [-1, 1].
type Line struct {
	X0, Y0, X1, Y1 float64
	Color          color.RGBA
}

// Project appends the visible wireframe of g, as seen by cam, to dst.
// Segments are clipped against the near plane and the viewport square.
func Project(dst []Line, g *Graph, cam *Camera) []Line {
	vp := cam.ViewProjection()
	g.Walk(func(_ Handle, n *Node, world mgl64.Mat4) {
		if n.Mesh == nil {
			return
		}
		mvp := vp.Mul4(world)
		for _, seg := range n.Mesh.Segments {
			a := mvp.Mul4x1(seg.A.Vec4(1))
			b := mvp.Mul4x1(seg.B.Vec4(1))
			a, b, ok := clipNear(a, b)
			if !ok {
				continue
			}
			x0, y0 := a[0]/a[3], a[1]/a[3]
			x1, y1 := b[0]/b[3], b[1]/b[3]
			x0, y0, x1, y1, ok = clipViewport(x0, y0, x1, y1)
			if !ok {
				continue
			}
			dst = append(dst, Line{X0: x0, Y0: y0, X1: x1, Y1: y1, Color: n.Mesh.Color})
		}
	})
	return dst
}

// clipNear keeps the part of a clip-space segment in front of the near plane (z >= -w).
func clipNear(a, b mgl64.Vec4) (mgl64.Vec4, mgl64.Vec4, bool) {
	da := a[2] + a[3]
	db := b[2] + b[3]
	if da < 0 && db < 0 {
		return a, b, false
	}
	if da < 0 {
		a = a.Add(b.Sub(a).Mul(da / (da - db)))
	} else if db < 0 {
		b = b.Add(a.Sub(b).Mul(db / (db - da)))
	}
	if a[3] <= 0 || b[3] <= 0 {
		return a, b, false
	}
	return a, b, true
}

// clipViewport is Liang-Barsky against the [-1, 1] square.
func clipViewport(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 + 1, 1 - x0, y0 + 1, 1 - y0}

	for i := range 4 {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
