package wireframe

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/logger"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Wireframe owns a set of nodes and the edges and faces built over them.
// No two nodes share a coordinate. Edges and faces reference nodes by
// pointer, so moving a node moves every primitive built on it.
type Wireframe struct {
	Nodes []*Node
	Edges []*Edge
	Faces []*Face

	rng *rand.Rand
}

// New creates an empty wireframe.
func New() *Wireframe {
	return NewWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates an empty wireframe that draws default face colours from rng.
func NewWithRand(rng *rand.Rand) *Wireframe {
	return &Wireframe{rng: rng}
}

// AddNodes appends every node whose coordinate is not already occupied and
// returns how many were added.
func (w *Wireframe) AddNodes(nodes ...*Node) int {
	added := 0
	for _, n := range nodes {
		if w.FindNode(n.Pos) != nil {
			continue
		}
		w.Nodes = append(w.Nodes, n)
		added++
	}
	return added
}

// FindNode returns the first node exactly at p, or nil.
func (w *Wireframe) FindNode(p math.Vec3) *Node {
	for _, n := range w.Nodes {
		if n.Pos == p {
			return n
		}
	}
	return nil
}

// NodeIndex returns the index of n in Nodes, or -1.
func (w *Wireframe) NodeIndex(n *Node) int {
	for i, other := range w.Nodes {
		if other == n {
			return i
		}
	}
	return -1
}

// AddEdges builds sticks between node indices. Pairs with an index out of
// range are skipped. Returns how many sticks were added.
func (w *Wireframe) AddEdges(pairs ...[2]int) int {
	added := 0
	for _, p := range pairs {
		if !w.validIndex(p[0]) || !w.validIndex(p[1]) {
			logger.Debug("edge index out of range", zap.Int("a", p[0]), zap.Int("b", p[1]), zap.Int("nodes", len(w.Nodes)))
			continue
		}
		if w.addEdge(NewStick(w.Nodes[p[0]], w.Nodes[p[1]], DefaultEdgeColor)) {
			added++
		}
	}
	return added
}

// AddEdgesAt builds sticks between the nodes found at the given positions.
// A pair whose endpoint matches no node is dropped without error.
func (w *Wireframe) AddEdgesAt(pairs ...[2]math.Vec3) int {
	added := 0
	for _, p := range pairs {
		a, b := w.FindNode(p[0]), w.FindNode(p[1])
		if a == nil || b == nil {
			logger.Debug("edge endpoint not found, dropped",
				zap.Stringer("a", vecString(p[0])), zap.Stringer("b", vecString(p[1])))
			continue
		}
		if w.addEdge(NewStick(a, b, DefaultEdgeColor)) {
			added++
		}
	}
	return added
}

// AddStick appends a prepared stick unless one with the same endpoint
// coordinates exists. Both endpoints must already belong to w.
func (w *Wireframe) AddStick(e *Edge) bool {
	return w.addEdge(e)
}

func (w *Wireframe) addEdge(e *Edge) bool {
	key := e.key()
	for _, other := range w.Edges {
		if other.key() == key {
			return false
		}
	}
	w.Edges = append(w.Edges, e)
	return true
}

// AddFaces builds faces over node index triples. A nil color picks a random
// colour per face. Returns how many faces were added.
func (w *Wireframe) AddFaces(color *RGB, triples ...[3]int) int {
	added := 0
	for _, t := range triples {
		if !w.validIndex(t[0]) || !w.validIndex(t[1]) || !w.validIndex(t[2]) {
			logger.Debug("face index out of range", zap.Ints("indices", t[:]), zap.Int("nodes", len(w.Nodes)))
			continue
		}
		if w.addFace(w.Nodes[t[0]], w.Nodes[t[1]], w.Nodes[t[2]], color) {
			added++
		}
	}
	return added
}

// AddFacesAt builds faces over the nodes found at the given positions.
// A triple with any unmatched corner is dropped without error.
func (w *Wireframe) AddFacesAt(color *RGB, triples ...[3]math.Vec3) int {
	added := 0
	for _, t := range triples {
		a, b, c := w.FindNode(t[0]), w.FindNode(t[1]), w.FindNode(t[2])
		if a == nil || b == nil || c == nil {
			logger.Debug("face corner not found, dropped",
				zap.Stringer("a", vecString(t[0])), zap.Stringer("b", vecString(t[1])), zap.Stringer("c", vecString(t[2])))
			continue
		}
		if w.addFace(a, b, c, color) {
			added++
		}
	}
	return added
}

func (w *Wireframe) addFace(a, b, c *Node, color *RGB) bool {
	f := &Face{First: a, Second: b, Third: c}
	key := f.key()
	for _, other := range w.Faces {
		if other.key() == key {
			return false
		}
	}
	if color != nil {
		f.Color = *color
	} else {
		f.Color = RandomColor(w.rand())
	}
	w.Faces = append(w.Faces, f)
	return true
}

// Centroid returns the mean node position. ok is false for an empty wireframe.
func (w *Wireframe) Centroid() (c math.Vec3, ok bool) {
	if len(w.Nodes) == 0 {
		return math.Vec3{}, false
	}
	for _, n := range w.Nodes {
		c = c.Add(n.Pos)
	}
	return c.Scale(1 / float64(len(w.Nodes))), true
}

// Distance returns the distance from the centroid to p. ok is false for an
// empty wireframe.
func (w *Wireframe) Distance(p math.Vec3) (float64, bool) {
	c, ok := w.Centroid()
	if !ok {
		return 0, false
	}
	return c.Distance(p), true
}

// Copy returns a deep copy. Edges and faces in the copy point at the copied
// nodes; rest lengths and colours are preserved.
func (w *Wireframe) Copy() *Wireframe {
	dup := &Wireframe{
		Nodes: make([]*Node, len(w.Nodes)),
		Edges: make([]*Edge, 0, len(w.Edges)),
		Faces: make([]*Face, 0, len(w.Faces)),
		rng:   w.rng,
	}

	remap := make(map[*Node]*Node, len(w.Nodes))
	for i, n := range w.Nodes {
		c := *n
		dup.Nodes[i] = &c
		remap[n] = &c
	}
	// Primitives may reference nodes that were never added; clone those too
	// so the copy never shares state with the original.
	clone := func(n *Node) *Node {
		if c, ok := remap[n]; ok {
			return c
		}
		c := *n
		remap[n] = &c
		return &c
	}

	for _, e := range w.Edges {
		dup.Edges = append(dup.Edges, &Edge{
			First:  clone(e.First),
			Second: clone(e.Second),
			Length: e.Length,
			Color:  e.Color,
		})
	}
	for _, f := range w.Faces {
		dup.Faces = append(dup.Faces, &Face{
			First:  clone(f.First),
			Second: clone(f.Second),
			Third:  clone(f.Third),
			Color:  f.Color,
		})
	}
	return dup
}

// Clear removes every node, edge and face. Nodes obtained earlier must not
// be used with this wireframe afterwards.
func (w *Wireframe) Clear() {
	w.Nodes = nil
	w.Edges = nil
	w.Faces = nil
}

// Empty reports whether the wireframe has no nodes.
func (w *Wireframe) Empty() bool {
	return len(w.Nodes) == 0
}

func (w *Wireframe) validIndex(i int) bool {
	return i >= 0 && i < len(w.Nodes)
}

func (w *Wireframe) rand() *rand.Rand {
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return w.rng
}

type vecString math.Vec3

func (v vecString) String() string {
	return (&Node{Pos: math.Vec3(v)}).String()
}
