package scene

import (
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Kind identifies the primitive a Drawable wraps.
type Kind int

const (
	KindNode Kind = iota
	KindEdge
	KindFace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	case KindFace:
		return "face"
	}
	return "unknown"
}

// Drawable is one primitive in a render order together with its hints.
// Exactly one of Node, Edge and Face is set, matching Kind.
type Drawable struct {
	Kind Kind
	Node *wireframe.Node
	Edge *wireframe.Edge
	Face *wireframe.Face

	// Grid marks a selection grid node.
	Grid bool
	// Hidden marks a grid node that coincides with a real node.
	Hidden bool
	// Selected marks a node from the in-progress selection.
	Selected bool
	// Pinned marks a node with zero weight.
	Pinned bool
}

// NodeDrawable wraps a node.
func NodeDrawable(n *wireframe.Node) Drawable {
	return Drawable{Kind: KindNode, Node: n, Pinned: n.IsPinned()}
}

// EdgeDrawable wraps an edge.
func EdgeDrawable(e *wireframe.Edge) Drawable {
	return Drawable{Kind: KindEdge, Edge: e}
}

// FaceDrawable wraps a face.
func FaceDrawable(f *wireframe.Face) Drawable {
	return Drawable{Kind: KindFace, Face: f}
}

// DistanceSq is the squared distance from p to the primitive's reference
// point: the node itself, the edge midpoint or the face centroid.
func (d Drawable) DistanceSq(p math.Vec3) float64 {
	switch d.Kind {
	case KindEdge:
		return d.Edge.DistanceSq(p)
	case KindFace:
		return d.Face.DistanceSq(p)
	default:
		return d.Node.Pos.DistanceSq(p)
	}
}

// Points returns the world positions the primitive is drawn through.
func (d Drawable) Points() []math.Vec3 {
	switch d.Kind {
	case KindEdge:
		return []math.Vec3{d.Edge.First.Pos, d.Edge.Second.Pos}
	case KindFace:
		return []math.Vec3{d.Face.First.Pos, d.Face.Second.Pos, d.Face.Third.Pos}
	default:
		return []math.Vec3{d.Node.Pos}
	}
}

func appendWireframe(out []Drawable, wf *wireframe.Wireframe) []Drawable {
	for _, n := range wf.Nodes {
		out = append(out, NodeDrawable(n))
	}
	for _, e := range wf.Edges {
		out = append(out, EdgeDrawable(e))
	}
	for _, f := range wf.Faces {
		out = append(out, FaceDrawable(f))
	}
	return out
}
