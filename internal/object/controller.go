package object

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/vrarcade/internal/scene"
)

// TargetRayMode tells how a controller aims.
type TargetRayMode int

const (
	RayNone TargetRayMode = iota
	RayTrackedPointer
	RayGaze
)

func (m TargetRayMode) String() string {
	switch m {
	case RayTrackedPointer:
		return "tracked-pointer"
	case RayGaze:
		return "gaze"
	default:
		return "none"
	}
}

// ParseTargetRayMode accepts the names produced by String.
func ParseTargetRayMode(s string) (TargetRayMode, error) {
	switch s {
	case "tracked-pointer":
		return RayTrackedPointer, nil
	case "gaze":
		return RayGaze, nil
	case "", "none":
		return RayNone, nil
	}
	return RayNone, fmt.Errorf("unknown target ray mode %q", s)
}

// Controller is one hand. The pointer visual exists only while connected.
type Controller struct {
	Index     int
	Selecting bool
	Connected bool
	Mode      TargetRayMode

	graph    *scene.Graph
	node     scene.Handle
	pointer  scene.Handle
	grip     scene.Handle
	cooldown time.Duration
}

// NewController adds an empty controller node under parent.
func NewController(g *scene.Graph, parent scene.Handle, index int) *Controller {
	return &Controller{
		Index: index,
		graph: g,
		node: g.Add(parent, scene.Node{
			Kind:    scene.KindController,
			Name:    fmt.Sprintf("controller-%d", index),
			Visible: true,
		}),
		pointer: scene.Nil,
		grip:    scene.Nil,
	}
}

// Node returns the controller's scene handle.
func (c *Controller) Node() scene.Handle {
	return c.node
}

// AttachWeapon hangs mesh from the controller grip. Calling it again swaps the mesh.
func (c *Controller) AttachWeapon(mesh *scene.Mesh) {
	if c.graph.Valid(c.grip) {
		c.graph.Node(c.grip).Mesh = mesh
		return
	}
	c.grip = c.graph.Add(c.node, scene.Node{Kind: scene.KindWeapon, Name: "weapon", Mesh: mesh, Visible: true})
}

// Connect builds the pointer visual for mode, replacing any previous one.
func (c *Controller) Connect(mode TargetRayMode) {
	c.removePointer()
	c.Connected = true
	c.Mode = mode

	var mesh *scene.Mesh
	switch mode {
	case RayTrackedPointer:
		mesh = scene.LineMesh("pointer", mgl64.Vec3{}, mgl64.Vec3{0, 0, -1}, scene.ColorPointer)
	case RayGaze:
		mesh = scene.RingMesh("gaze", 0.02, 0.04, 1, 32, scene.ColorPointer)
	default:
		return
	}
	c.pointer = c.graph.Add(c.node, scene.Node{Kind: scene.KindPointer, Name: mesh.Name, Mesh: mesh, Visible: true})
}

// Disconnect removes the pointer visual and stops firing.
func (c *Controller) Disconnect() {
	c.removePointer()
	c.Connected = false
	c.Selecting = false
	c.Mode = RayNone
}

func (c *Controller) removePointer() {
	if c.graph.Valid(c.pointer) {
		c.graph.Destroy(c.pointer)
	}
	c.pointer = scene.Nil
}

// HasPointer reports whether a pointer visual is attached.
func (c *Controller) HasPointer() bool {
	return c.graph.Valid(c.pointer)
}

// SelectStart begins firing.
func (c *Controller) SelectStart() {
	c.Selecting = true
}

// SelectEnd stops firing.
func (c *Controller) SelectEnd() {
	c.Selecting = false
}

// SetPose places the controller relative to its parent.
func (c *Controller) SetPose(position mgl64.Vec3, orientation mgl64.Quat) {
	c.graph.SetPosition(c.node, position)
	c.graph.SetOrientation(c.node, orientation)
}

// Aim turns the controller relative to its parent without moving it.
func (c *Controller) Aim(orientation mgl64.Quat) {
	c.graph.SetOrientation(c.node, orientation)
}

// Pose returns the controller's world position and orientation.
func (c *Controller) Pose() (mgl64.Vec3, mgl64.Quat) {
	return c.graph.WorldPosition(c.node), c.graph.WorldOrientation(c.node)
}

// Ready counts down the fire cooldown by dt and reports whether the
// controller may fire now. A positive answer restarts the cooldown.
func (c *Controller) Ready(dt, interval time.Duration) bool {
	c.cooldown -= dt
	if c.cooldown > 0 {
		return false
	}
	c.cooldown = interval
	return true
}
