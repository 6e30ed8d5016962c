// Package physics provides collision detection and distance utilities.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec3) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// PointInSphere checks if a point is within radius of a center.
func PointInSphere(p, center mgl64.Vec3, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// SpheresOverlap checks if two spheres overlap.
func SpheresOverlap(c1 mgl64.Vec3, r1 float64, c2 mgl64.Vec3, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) < minDist*minDist
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl64.Vec3
}

// Contains reports whether p lies inside the box (inclusive).
func (b Box) Contains(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Shrink returns the box inset by margin on every side.
func (b Box) Shrink(margin float64) Box {
	m := mgl64.Vec3{margin, margin, margin}
	return Box{Min: b.Min.Add(m), Max: b.Max.Sub(m)}
}

// Clamp returns p moved inside the box.
func (b Box) Clamp(p mgl64.Vec3) mgl64.Vec3 {
	for i := range 3 {
		p[i] = mgl64.Clamp(p[i], b.Min[i], b.Max[i])
	}
	return p
}
