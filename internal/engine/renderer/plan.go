package renderer

import (
	"github.com/Faultbox/wirebox/internal/engine/scene"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Palette used for nodes.
var (
	ColorBackground = wireframe.RGB{R: 0, G: 0, B: 0}
	ColorGrid       = wireframe.RGB{R: 0, G: 190, B: 255}
	ColorSelected   = wireframe.RGB{R: 255, G: 180, B: 0}
	ColorPinned     = wireframe.RGB{R: 220, G: 55, B: 0}
	ColorFree       = wireframe.RGB{R: 0, G: 55, B: 220}
)

// Node marker radii in pixels.
const (
	GridRadius = 3
	NodeRadius = 4
)

// Projector maps world points to screen coordinates.
type Projector interface {
	Project(p math.Vec3) (math.Vec2, bool)
}

// ShapeKind is what a Shape draws.
type ShapeKind int

const (
	ShapeDot ShapeKind = iota
	ShapeLine
	ShapeTriangle
)

// Shape is a projected primitive ready to draw in screen space.
type Shape struct {
	Kind   ShapeKind
	Points []math.Vec2
	Color  wireframe.RGB
	Radius float64
}

// Plan projects a render order into shapes, keeping its order. Primitives
// with any point that does not project are left out, as are hidden grid
// nodes.
func Plan(order []scene.Drawable, proj Projector) []Shape {
	shapes := make([]Shape, 0, len(order))
	for _, d := range order {
		if d.Hidden {
			continue
		}
		world := d.Points()
		points := make([]math.Vec2, len(world))
		visible := true
		for i, p := range world {
			points[i], visible = proj.Project(p)
			if !visible {
				break
			}
		}
		if !visible {
			continue
		}

		switch d.Kind {
		case scene.KindEdge:
			shapes = append(shapes, Shape{Kind: ShapeLine, Points: points, Color: d.Edge.Color})
		case scene.KindFace:
			shapes = append(shapes, Shape{Kind: ShapeTriangle, Points: points, Color: d.Face.Color})
		default:
			color, radius := nodeStyle(d)
			shapes = append(shapes, Shape{Kind: ShapeDot, Points: points, Color: color, Radius: radius})
		}
	}
	return shapes
}

// nodeStyle picks a node's colour: grid, then selected, then pinned.
func nodeStyle(d scene.Drawable) (wireframe.RGB, float64) {
	switch {
	case d.Grid:
		return ColorGrid, GridRadius
	case d.Selected:
		return ColorSelected, NodeRadius
	case d.Pinned:
		return ColorPinned, NodeRadius
	default:
		return ColorFree, NodeRadius
	}
}
