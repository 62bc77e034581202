// Package wireframe holds the buildable structure: nodes (Verlet points),
// sticks between them and triangular faces over them.
package wireframe

import (
	"fmt"
	"math/rand"

	"github.com/Faultbox/wirebox/pkg/math"
)

// Pin weights.
const (
	Pinned = 0.0
	Free   = 1.0
)

// Node is a Verlet point. Velocity is implied by Pos - Old.
type Node struct {
	Pos math.Vec3
	Old math.Vec3

	// W multiplies every displacement the engine applies: 0 pins the node,
	// 1 lets it move.
	W float64
}

// NewNode creates a node at rest.
func NewNode(pos math.Vec3, w float64) *Node {
	return &Node{Pos: pos, Old: pos, W: w}
}

// NewNodeWithVelocity creates a node whose previous position is old, which
// gives it an initial velocity of pos - old.
func NewNodeWithVelocity(pos math.Vec3, w float64, old math.Vec3) *Node {
	return &Node{Pos: pos, Old: old, W: w}
}

// Velocity returns the undamped implied velocity.
func (n *Node) Velocity() math.Vec3 {
	return n.Pos.Sub(n.Old)
}

// IsPinned reports whether the engine leaves this node in place.
func (n *Node) IsPinned() bool {
	return n.W == Pinned
}

func (n *Node) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", n.Pos.X, n.Pos.Y, n.Pos.Z)
}

// RGB is a display colour.
type RGB struct {
	R, G, B uint8
}

// DefaultEdgeColor is used for sticks built without a colour.
var DefaultEdgeColor = RGB{0, 190, 255}

// RandomColor returns a random opaque colour from rng.
func RandomColor(rng *rand.Rand) RGB {
	return RGB{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
}

// Edge is a stick: a distance constraint between two nodes.
type Edge struct {
	First, Second *Node

	// Length is the rest length. It is fixed when the stick is built.
	Length float64
	Color  RGB
}

// NewStick joins two nodes at their current distance.
func NewStick(first, second *Node, color RGB) *Edge {
	return &Edge{
		First:  first,
		Second: second,
		Length: first.Pos.Distance(second.Pos),
		Color:  color,
	}
}

// NewStickWithLength joins two nodes with an explicit rest length.
func NewStickWithLength(first, second *Node, color RGB, length float64) *Edge {
	return &Edge{First: first, Second: second, Length: length, Color: color}
}

// Midpoint returns the centre of the stick.
func (e *Edge) Midpoint() math.Vec3 {
	return e.First.Pos.Add(e.Second.Pos).Scale(0.5)
}

// DistanceSq returns the squared distance from the midpoint to p.
func (e *Edge) DistanceSq(p math.Vec3) float64 {
	return e.Midpoint().DistanceSq(p)
}

func (e *Edge) key() [6]float64 {
	a, b := e.First.Pos, e.Second.Pos
	return [6]float64{a.X, a.Y, a.Z, b.X, b.Y, b.Z}
}

// Face is a triangle over three existing nodes. It has no geometry of its own.
type Face struct {
	First, Second, Third *Node
	Color                RGB
}

// Nodes returns the three corners in order.
func (f *Face) Nodes() [3]*Node {
	return [3]*Node{f.First, f.Second, f.Third}
}

// Centroid returns the mean of the three corners.
func (f *Face) Centroid() math.Vec3 {
	s := f.First.Pos.Add(f.Second.Pos).Add(f.Third.Pos)
	return math.Vec3{X: s.X / 3, Y: s.Y / 3, Z: s.Z / 3}
}

// DistanceSq returns the squared distance from the centroid to p.
func (f *Face) DistanceSq(p math.Vec3) float64 {
	return f.Centroid().DistanceSq(p)
}

func (f *Face) key() [9]float64 {
	a, b, c := f.First.Pos, f.Second.Pos, f.Third.Pos
	return [9]float64{a.X, a.Y, a.Z, b.X, b.Y, b.Z, c.X, c.Y, c.Z}
}
