// Package scene holds the scene graph: an arena of nodes addressed by stable
// integer handles, with explicit parent/child index lists.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind tags what a node represents.
type Kind int

const (
	KindGroup Kind = iota
	KindRoom
	KindLight
	KindController
	KindPointer
	KindWeapon
	KindProjectile
	KindEnemy
	KindImpact
)

var kindNames = [...]string{"group", "room", "light", "controller", "pointer", "weapon", "projectile", "enemy", "impact"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Handle addresses a node in a Graph. A handle stays valid until the node is destroyed.
type Handle int

// Nil is the zero value for "no node".
const Nil Handle = -1

// Node is one entity placed in the world. Transform fields are relative to the parent.
type Node struct {
	Kind        Kind
	Name        string
	Mesh        *Mesh
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       float64
	Visible     bool

	parent   Handle
	children []Handle
	alive    bool
}

// Graph is the arena owning every node. It is not safe for concurrent use;
// the game tick is its only writer.
type Graph struct {
	nodes []Node
	free  []Handle
	root  Handle
	live  int
}

// NewGraph creates a graph with an empty root group.
func NewGraph() *Graph {
	g := &Graph{}
	g.root = g.alloc(Node{Kind: KindGroup, Name: "scene", Visible: true})
	return g
}

// Root returns the root node handle.
func (g *Graph) Root() Handle {
	return g.root
}

// Len returns the number of live nodes, root included.
func (g *Graph) Len() int {
	return g.live
}

func (g *Graph) alloc(n Node) Handle {
	n.alive = true
	n.parent = Nil
	n.children = n.children[:0]
	if n.Scale == 0 {
		n.Scale = 1
	}
	if n.Orientation == (mgl64.Quat{}) {
		n.Orientation = mgl64.QuatIdent()
	}
	g.live++

	if last := len(g.free) - 1; last >= 0 {
		h := g.free[last]
		g.free = g.free[:last]
		n.children = g.nodes[h].children[:0]
		g.nodes[h] = n
		return h
	}
	g.nodes = append(g.nodes, n)
	return Handle(len(g.nodes) - 1)
}

// Valid reports whether h addresses a live node.
func (g *Graph) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(g.nodes) && g.nodes[h].alive
}

// Add creates a node under parent and returns its handle.
// An invalid parent attaches the node to the root.
func (g *Graph) Add(parent Handle, n Node) Handle {
	if !g.Valid(parent) {
		parent = g.root
	}
	h := g.alloc(n)
	g.nodes[h].parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, h)
	return h
}

// Node returns the node addressed by h, or nil if it is not live.
// The pointer is invalidated by the next Add.
func (g *Graph) Node(h Handle) *Node {
	if !g.Valid(h) {
		return nil
	}
	return &g.nodes[h]
}

// Parent returns the parent handle, or Nil for the root and dead handles.
func (g *Graph) Parent(h Handle) Handle {
	if !g.Valid(h) {
		return Nil
	}
	return g.nodes[h].parent
}

// Children returns the child handles of h in insertion order.
// The slice is owned by the graph.
func (g *Graph) Children(h Handle) []Handle {
	if !g.Valid(h) {
		return nil
	}
	return g.nodes[h].children
}

// Destroy removes h and its whole subtree from the graph. The root cannot be destroyed.
func (g *Graph) Destroy(h Handle) {
	if !g.Valid(h) || h == g.root {
		return
	}
	if p := g.nodes[h].parent; g.Valid(p) {
		g.nodes[p].children = removeHandle(g.nodes[p].children, h)
	}
	g.destroySubtree(h)
}

func (g *Graph) destroySubtree(h Handle) {
	for _, c := range g.nodes[h].children {
		g.destroySubtree(c)
	}
	n := &g.nodes[h]
	n.alive = false
	n.Mesh = nil
	n.children = n.children[:0]
	n.parent = Nil
	g.free = append(g.free, h)
	g.live--
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, c := range list {
		if c == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// SetPosition sets the local position of h.
func (g *Graph) SetPosition(h Handle, p mgl64.Vec3) {
	if g.Valid(h) {
		g.nodes[h].Position = p
	}
}

// SetOrientation sets the local orientation of h.
func (g *Graph) SetOrientation(h Handle, q mgl64.Quat) {
	if g.Valid(h) {
		g.nodes[h].Orientation = q
	}
}

// SetScale sets the uniform local scale of h.
func (g *Graph) SetScale(h Handle, s float64) {
	if g.Valid(h) {
		g.nodes[h].Scale = s
	}
}

// SetVisible shows or hides h. Hidden nodes hide their subtree.
func (g *Graph) SetVisible(h Handle, v bool) {
	if g.Valid(h) {
		g.nodes[h].Visible = v
	}
}

// Visible reports whether h and all its ancestors are visible.
func (g *Graph) Visible(h Handle) bool {
	for g.Valid(h) {
		if !g.nodes[h].Visible {
			return false
		}
		h = g.nodes[h].parent
	}
	return true
}

func (n *Node) localMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Orientation.Mat4()
	s := mgl64.Scale3D(n.Scale, n.Scale, n.Scale)
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local transforms from the root down to h.
func (g *Graph) WorldMatrix(h Handle) mgl64.Mat4 {
	m := mgl64.Ident4()
	for g.Valid(h) {
		m = g.nodes[h].localMatrix().Mul4(m)
		h = g.nodes[h].parent
	}
	return m
}

// WorldPosition returns the world-space origin of h.
func (g *Graph) WorldPosition(h Handle) mgl64.Vec3 {
	return mgl64.TransformCoordinate(mgl64.Vec3{}, g.WorldMatrix(h))
}

// WorldOrientation composes orientations from the root down to h.
func (g *Graph) WorldOrientation(h Handle) mgl64.Quat {
	q := mgl64.QuatIdent()
	for g.Valid(h) {
		q = g.nodes[h].Orientation.Mul(q)
		h = g.nodes[h].parent
	}
	return q.Normalize()
}

// Walk visits every visible node depth-first with its world matrix.
// Hidden nodes are skipped together with their subtree.
func (g *Graph) Walk(fn func(h Handle, n *Node, world mgl64.Mat4)) {
	g.walk(g.root, mgl64.Ident4(), fn)
}

func (g *Graph) walk(h Handle, parent mgl64.Mat4, fn func(Handle, *Node, mgl64.Mat4)) {
	n := &g.nodes[h]
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.localMatrix())
	fn(h, n, world)
	for _, c := range n.children {
		g.walk(c, world, fn)
	}
}

// Count returns how many live nodes of the given kind are visible.
func (g *Graph) Count(kind Kind) int {
	total := 0
	g.Walk(func(_ Handle, n *Node, _ mgl64.Mat4) {
		if n.Kind == kind {
			total++
		}
	})
	return total
}
