package scene

import "github.com/go-gl/mathgl/mgl64"

// Forward is the direction a node with identity orientation faces.
var Forward = mgl64.Vec3{0, 0, -1}

// Camera is a perspective camera. It is not part of the graph; the game
// places it at the player's head every tick.
type Camera struct {
	FovY        float64 // vertical field of view in degrees
	Near, Far   float64
	Position    mgl64.Vec3
	Orientation mgl64.Quat

	aspect     float64
	projection mgl64.Mat4
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(fovY, aspect, near, far float64) *Camera {
	c := &Camera{
		FovY:        fovY,
		Near:        near,
		Far:         far,
		Orientation: mgl64.QuatIdent(),
	}
	c.SetAspect(aspect)
	return c
}

// Aspect returns the width/height ratio the projection was built for.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// SetAspect updates the aspect ratio and recomputes the projection matrix.
// Non-positive values are ignored.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Projection returns the current projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	inv := c.Orientation.Conjugate().Mat4()
	return inv.Mul4(mgl64.Translate3D(-c.Position[0], -c.Position[1], -c.Position[2]))
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.projection.Mul4(c.View())
}

// Direction returns the unit vector the camera looks along.
func (c *Camera) Direction() mgl64.Vec3 {
	return c.Orientation.Rotate(Forward)
}
