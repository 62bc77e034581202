// Package scene composes the wireframes, the boundary box and the selection
// grid into spatial queries and back-to-front render orders.
package scene

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/engine/camera"
	"github.com/Faultbox/wirebox/internal/engine/debug"
	"github.com/Faultbox/wirebox/internal/engine/picking"
	"github.com/Faultbox/wirebox/internal/logger"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

const (
	// DefaultGridStep is the spacing between selection grid nodes.
	DefaultGridStep = 20
	// DefaultPickRadius is the pixel radius NearestNode searches within.
	DefaultPickRadius = 10.0
)

// Screen holds the wireframes to render together with the render-only
// boundary box and selection grid. It does not own the item wireframes.
type Screen struct {
	cam      *camera.Camera
	box      math.Vec3
	gridStep int

	boundary *wireframe.Wireframe
	grid     *wireframe.Wireframe
	items    []*wireframe.Wireframe
	extras   []*wireframe.Node
}

// NewScreen builds the boundary and grid for a box of the given size.
// A non-positive gridStep falls back to DefaultGridStep.
func NewScreen(cam *camera.Camera, box math.Vec3, gridStep int) *Screen {
	if gridStep <= 0 {
		gridStep = DefaultGridStep
	}
	s := &Screen{
		cam:      cam,
		box:      box,
		gridStep: gridStep,
		boundary: debug.BoxWireframe(box, false),
		grid:     debug.GridWireframe(box, gridStep),
	}
	logger.Named("scene").Debug("screen created",
		zap.Int("grid_step", gridStep),
		zap.Int("grid_nodes", len(s.grid.Nodes)))
	return s
}

// SetOutline adds or removes the 12 edges of the boundary box.
func (s *Screen) SetOutline(outline bool) {
	s.boundary = debug.BoxWireframe(s.box, outline)
}

// Camera returns the camera the screen projects through.
func (s *Screen) Camera() *camera.Camera { return s.cam }

// Box returns the size of the simulation volume.
func (s *Screen) Box() math.Vec3 { return s.box }

// Boundary returns the boundary box wireframe.
func (s *Screen) Boundary() *wireframe.Wireframe { return s.boundary }

// Grid returns the selection grid wireframe.
func (s *Screen) Grid() *wireframe.Wireframe { return s.grid }

// AddItem appends wireframes to render.
func (s *Screen) AddItem(items ...*wireframe.Wireframe) {
	s.items = append(s.items, items...)
}

// SetItems replaces the wireframes to render.
func (s *Screen) SetItems(items []*wireframe.Wireframe) {
	s.items = items
}

// Items returns the wireframes being rendered.
func (s *Screen) Items() []*wireframe.Wireframe { return s.items }

// SetExtras sets the transient nodes drawn as the current selection.
func (s *Screen) SetExtras(nodes []*wireframe.Node) {
	s.extras = nodes
}

// Extras returns the selection nodes.
func (s *Screen) Extras() []*wireframe.Node { return s.extras }

// NearestNode returns the item node projecting closest to the pointer,
// strictly within maxPixels, or nil.
func (s *Screen) NearestNode(pointer math.Vec2, maxPixels float64) *wireframe.Node {
	return picking.NearestNode(s.cam, pointer, maxPixels, s.items...)
}

// NearestGridPoint maps the pointer back to a 3D point. With a bearing only
// the 27 integer neighbours of the bearing are tried; without one the whole
// selection grid is searched. ok is false when no candidate projects.
func (s *Screen) NearestGridPoint(pointer math.Vec2, bearing *math.Vec3) (math.Vec3, bool) {
	if bearing != nil {
		return picking.NearestPoint(s.cam, pointer, picking.Neighbours(*bearing))
	}
	points := make([]math.Vec3, len(s.grid.Nodes))
	for i, n := range s.grid.Nodes {
		points[i] = n.Pos
	}
	return picking.NearestPoint(s.cam, pointer, points)
}

// RenderOrder collects the boundary, every item, the selection extras and
// others, plus the grid nodes when showGrid is set, sorted farthest first
// from the camera. Ties keep collection order.
func (s *Screen) RenderOrder(showGrid bool, others ...Drawable) []Drawable {
	out := appendWireframe(nil, s.boundary)
	for _, wf := range s.items {
		out = appendWireframe(out, wf)
	}
	for _, n := range s.extras {
		d := NodeDrawable(n)
		d.Selected = true
		out = append(out, d)
	}
	out = append(out, others...)

	if showGrid {
		occupied := make(map[math.Vec3]struct{}, len(out))
		for _, d := range out {
			if d.Kind == KindNode {
				occupied[d.Node.Pos] = struct{}{}
			}
		}
		for _, n := range s.grid.Nodes {
			d := NodeDrawable(n)
			d.Grid = true
			_, d.Hidden = occupied[n.Pos]
			out = append(out, d)
		}
	}

	eye := s.cam.Pos
	dist := make([]float64, len(out))
	for i, d := range out {
		dist[i] = d.DistanceSq(eye)
	}
	sort.Stable(byDistance{out, dist})
	return out
}

type byDistance struct {
	items []Drawable
	dist  []float64
}

func (b byDistance) Len() int           { return len(b.items) }
func (b byDistance) Less(i, j int) bool { return b.dist[i] > b.dist[j] }
func (b byDistance) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
	b.dist[i], b.dist[j] = b.dist[j], b.dist[i]
}
